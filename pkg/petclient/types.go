package petclient

import "time"

type Pet struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	Breed             string     `json:"breed"`
	Birthday          *time.Time `json:"birthday,omitempty"`
	PhotoURL          string     `json:"photo_url"`
	IsActive          bool       `json:"is_active"`
	FavoriteMode      string     `json:"favorite_mode"`
	PersonalityTraits []string   `json:"personality_traits"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewPet es el body de CreatePet. Birthday en formato YYYY-MM-DD.
type NewPet struct {
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	Breed             string   `json:"breed,omitempty"`
	Birthday          string   `json:"birthday,omitempty"`
	PhotoURL          string   `json:"photo_url,omitempty"`
	FavoriteMode      string   `json:"favorite_mode,omitempty"`
	PersonalityTraits []string `json:"personality_traits,omitempty"`
}

// PetUpdate: solo se envían los campos no nil.
type PetUpdate struct {
	Name              *string   `json:"name,omitempty"`
	Type              *string   `json:"type,omitempty"`
	Breed             *string   `json:"breed,omitempty"`
	Birthday          *string   `json:"birthday,omitempty"`
	PhotoURL          *string   `json:"photo_url,omitempty"`
	IsActive          *bool     `json:"is_active,omitempty"`
	FavoriteMode      *string   `json:"favorite_mode,omitempty"`
	PersonalityTraits *[]string `json:"personality_traits,omitempty"`
}

type Profile struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	FullName            string     `json:"full_name"`
	AvatarURL           string     `json:"avatar_url"`
	TreatPoints         int        `json:"treat_points"`
	IsPremium           bool       `json:"is_premium"`
	PremiumExpiresAt    *time.Time `json:"premium_expires_at"`
	DailyStreak         int        `json:"daily_streak"`
	LastTranslationDate *string    `json:"last_translation_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type ProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type Badge struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Category         string    `json:"category"`
	RequirementType  string    `json:"requirement_type"`
	RequirementValue int       `json:"requirement_value"`
	IsPremiumOnly    bool      `json:"is_premium_only"`
	CreatedAt        time.Time `json:"created_at"`
}

type UserBadge struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
	Badge    Badge     `json:"badge"`
}

type Translation struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	PetID             *string   `json:"pet_id"`
	OriginalAudioURL  *string   `json:"original_audio_url"`
	TranslationText   string    `json:"translation_text"`
	TranslationMode   *string   `json:"translation_mode"`
	ConfidenceScore   *float64  `json:"confidence_score"`
	TreatPointsEarned int       `json:"treat_points_earned"`
	CreatedAt         time.Time `json:"created_at"`
}

// TranslateRequest: Audio viaja en base64 como audioData.
type TranslateRequest struct {
	PetType string
	PetID   string
	Mode    string
	Audio   []byte
}

type TranslateResult struct {
	Translation   string  `json:"translation"`
	TreatPoints   int     `json:"treatPoints"`
	TranslationID string  `json:"translationId"`
	AudioURL      *string `json:"audioUrl"`
	Transcription *string `json:"transcription"`
}
