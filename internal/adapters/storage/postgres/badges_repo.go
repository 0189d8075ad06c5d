package postgres

import (
	"context"
	"database/sql"

	"pet-translator/internal/domain/badges"
)

type BadgesRepo struct {
	db *sql.DB
}

func NewBadgesRepo(db *sql.DB) *BadgesRepo {
	return &BadgesRepo{db: db}
}

// Seed inserta el catálogo si falta (ON CONFLICT DO NOTHING).
func (r *BadgesRepo) Seed(ctx context.Context, catalog []badges.Badge) error {
	for _, b := range catalog {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO badges (
				id, name, description, icon, category,
				requirement_type, requirement_value, is_premium_only, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO NOTHING
		`, b.ID, b.Name, b.Description, b.Icon, b.Category,
			string(b.RequirementType), b.RequirementValue, b.IsPremiumOnly, b.CreatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

const badgeColumns = `
	b.id, b.name, b.description, b.icon, b.category,
	b.requirement_type, b.requirement_value, b.is_premium_only, b.created_at`

func (r *BadgesRepo) ListBadges(ctx context.Context) ([]badges.Badge, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+badgeColumns+` FROM badges b ORDER BY b.category, b.requirement_value`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badges.Badge, 0)
	for rows.Next() {
		var b badges.Badge
		if err := scanBadge(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BadgesRepo) ListUserBadges(ctx context.Context, userID string) ([]badges.UserBadge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ub.id, ub.user_id, ub.badge_id, ub.earned_at, `+badgeColumns+`
		FROM user_badges ub
		JOIN badges b ON b.id = ub.badge_id
		WHERE ub.user_id = $1
		ORDER BY ub.earned_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badges.UserBadge, 0)
	for rows.Next() {
		var (
			ub  badges.UserBadge
			req string
		)
		if err := rows.Scan(
			&ub.ID, &ub.UserID, &ub.BadgeID, &ub.EarnedAt,
			&ub.Badge.ID, &ub.Badge.Name, &ub.Badge.Description, &ub.Badge.Icon, &ub.Badge.Category,
			&req, &ub.Badge.RequirementValue, &ub.Badge.IsPremiumOnly, &ub.Badge.CreatedAt,
		); err != nil {
			return nil, err
		}
		ub.Badge.RequirementType = badges.RequirementType(req)
		out = append(out, ub)
	}
	return out, rows.Err()
}

// Award depende del UNIQUE (user_id, badge_id): 0 filas => ya lo tenía.
func (r *BadgesRepo) Award(ctx context.Context, ub badges.UserBadge) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO user_badges (id, user_id, badge_id, earned_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`, ub.ID, ub.UserID, ub.BadgeID, ub.EarnedAt)
	return rowsOrNotFound(res, err, badges.ErrAlreadyAwarded)
}

func (r *BadgesRepo) CountAwards(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM user_badges`).Scan(&n)
	return n, err
}

func scanBadge(row rowScanner, b *badges.Badge) error {
	var req string
	if err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.Icon, &b.Category,
		&req, &b.RequirementValue, &b.IsPremiumOnly, &b.CreatedAt,
	); err != nil {
		return err
	}
	b.RequirementType = badges.RequirementType(req)
	return nil
}
