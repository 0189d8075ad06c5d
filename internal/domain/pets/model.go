package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, hamster, other
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesRabbit  Species = "rabbit"
	SpeciesHamster Species = "hamster"
	SpeciesOther   Species = "other"
)

// AllSpecies en orden de UI.
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesHamster, SpeciesOther}

// ParseSpecies normaliza y valida contra el enum.
func ParseSpecies(s string) (Species, bool) {
	for _, sp := range AllSpecies {
		if string(sp) == s {
			return sp, true
		}
	}
	return "", false
}

// Pet representa una mascota del usuario. Nunca se borra: se desactiva (IsActive=false).
type Pet struct {
	ID     string
	UserID string

	Name     string
	Type     Species
	Breed    string
	Birthday *time.Time
	PhotoURL string

	IsActive          bool
	FavoriteMode      string
	PersonalityTraits []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
