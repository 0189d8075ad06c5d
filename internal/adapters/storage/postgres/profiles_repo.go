package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-translator/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

const profileColumns = `
	id, email, full_name, avatar_url,
	treat_points, is_premium, premium_expires_at,
	daily_streak, last_translation_date,
	created_at, updated_at`

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.Email,
		p.FullName,
		p.AvatarURL,
		p.TreatPoints,
		p.IsPremium,
		toNullDate(p.PremiumExpiresAt),
		p.DailyStreak,
		toNullDate(p.LastTranslationDate),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	var (
		p       profiles.Profile
		premium sql.NullTime
		lastDay sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id).Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.AvatarURL,
		&p.TreatPoints,
		&p.IsPremium,
		&premium,
		&p.DailyStreak,
		&lastDay,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	if premium.Valid {
		t := premium.Time
		p.PremiumExpiresAt = &t
	}
	if lastDay.Valid {
		t := lastDay.Time
		p.LastTranslationDate = &t
	}
	return p, nil
}

// Update toca solo los campos editables; contadores tienen su propio UPDATE.
func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET full_name = $2, avatar_url = $3, updated_at = $4
		WHERE id = $1
	`, p.ID, p.FullName, p.AvatarURL, p.UpdatedAt)
	return rowsOrNotFound(res, err, profiles.ErrNotFound)
}

// AddTreatPoints: un solo UPDATE ... RETURNING, sin read-modify-write.
func (r *ProfilesRepo) AddTreatPoints(ctx context.Context, id string, delta int) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET treat_points = treat_points + $2, updated_at = now()
		WHERE id = $1
		RETURNING treat_points
	`, id, delta).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, profiles.ErrNotFound
	}
	return total, err
}

func (r *ProfilesRepo) SetTreatPoints(ctx context.Context, id string, total int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET treat_points = $2, updated_at = now() WHERE id = $1
	`, id, total)
	return rowsOrNotFound(res, err, profiles.ErrNotFound)
}

func (r *ProfilesRepo) UpdateStreak(ctx context.Context, id string, streak int, day time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET daily_streak = $2, last_translation_date = $3, updated_at = now()
		WHERE id = $1
	`, id, streak, day)
	return rowsOrNotFound(res, err, profiles.ErrNotFound)
}

func (r *ProfilesRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM profiles`).Scan(&n)
	return n, err
}

func rowsOrNotFound(res sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notFound
	}
	return nil
}
