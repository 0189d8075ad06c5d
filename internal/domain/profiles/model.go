package profiles

import "time"

// Profile: uno por usuario autenticado. treat_points solo crece salvo ajuste administrativo.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string

	TreatPoints      int
	IsPremium        bool
	PremiumExpiresAt *time.Time

	DailyStreak         int
	LastTranslationDate *time.Time // fecha (UTC, medianoche)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PremiumActive: premium sin vencimiento o con vencimiento futuro.
func (p Profile) PremiumActive(now time.Time) bool {
	if !p.IsPremium {
		return false
	}
	if p.PremiumExpiresAt == nil {
		return true
	}
	return p.PremiumExpiresAt.After(now)
}
