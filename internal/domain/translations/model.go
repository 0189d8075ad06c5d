package translations

import "time"

// Variant identifica qué camino produjo la traducción.
type Variant string

const (
	VariantLive   Variant = "live"
	VariantCanned Variant = "canned"
)

// Puntos otorgados por traducción.
const (
	LiveAward   = 1
	CannedAward = 10
)

// DefaultPetID es el centinela del cliente para "sin mascota concreta".
const DefaultPetID = "default"

// Confianza guardada según el camino live tenga o no transcripción.
const (
	ConfidenceWithTranscription    = 0.95
	ConfidenceWithoutTranscription = 0.75
)

// Translation es append-only: no hay update ni delete.
type Translation struct {
	ID                string
	UserID            string
	PetID             *string
	OriginalAudioURL  *string
	TranslationText   string
	TranslationMode   *string
	ConfidenceScore   *float64
	TreatPointsEarned int
	CreatedAt         time.Time
}
