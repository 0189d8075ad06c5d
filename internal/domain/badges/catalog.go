package badges

import "time"

// DefaultCatalog es el set inicial sembrado en el store in-memory.
func DefaultCatalog(now time.Time) []Badge {
	return []Badge{
		{ID: "first-words", Name: "First Words", Description: "Complete your first translation", Icon: "🐾", Category: "translations", RequirementType: RequirementTranslations, RequirementValue: 1, CreatedAt: now},
		{ID: "chatterbox", Name: "Chatterbox", Description: "Complete 10 translations", Icon: "💬", Category: "translations", RequirementType: RequirementTranslations, RequirementValue: 10, CreatedAt: now},
		{ID: "pet-whisperer", Name: "Pet Whisperer", Description: "Complete 50 translations", Icon: "🧙", Category: "translations", RequirementType: RequirementTranslations, RequirementValue: 50, CreatedAt: now},
		{ID: "on-a-roll", Name: "On a Roll", Description: "Translate 3 days in a row", Icon: "🔥", Category: "streaks", RequirementType: RequirementStreak, RequirementValue: 3, CreatedAt: now},
		{ID: "devoted", Name: "Devoted", Description: "Translate 7 days in a row", Icon: "📅", Category: "streaks", RequirementType: RequirementStreak, RequirementValue: 7, CreatedAt: now},
		{ID: "treat-collector", Name: "Treat Collector", Description: "Earn 100 treat points", Icon: "🦴", Category: "points", RequirementType: RequirementTreatPoints, RequirementValue: 100, CreatedAt: now},
		{ID: "golden-bowl", Name: "Golden Bowl", Description: "Earn 500 treat points as a premium member", Icon: "👑", Category: "points", RequirementType: RequirementTreatPoints, RequirementValue: 500, IsPremiumOnly: true, CreatedAt: now},
	}
}
