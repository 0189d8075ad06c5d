package postgres

import (
	"context"
	"database/sql"

	"pet-translator/internal/domain/translations"
)

type TranslationsRepo struct {
	db *sql.DB
}

func NewTranslationsRepo(db *sql.DB) *TranslationsRepo {
	return &TranslationsRepo{db: db}
}

func (r *TranslationsRepo) Create(ctx context.Context, t translations.Translation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO translations (
			id, user_id, pet_id,
			original_audio_url, translation_text, translation_mode,
			confidence_score, treat_points_earned, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		t.ID,
		t.UserID,
		t.PetID,
		t.OriginalAudioURL,
		t.TranslationText,
		t.TranslationMode,
		t.ConfidenceScore,
		t.TreatPointsEarned,
		t.CreatedAt,
	)
	return err
}

func (r *TranslationsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]translations.Translation, error) {
	q := `
		SELECT
			id, user_id, pet_id,
			original_audio_url, translation_text, translation_mode,
			confidence_score, treat_points_earned, created_at
		FROM translations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]translations.Translation, 0)
	for rows.Next() {
		var (
			t          translations.Translation
			petID      sql.NullString
			audioURL   sql.NullString
			mode       sql.NullString
			confidence sql.NullFloat64
		)
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&petID,
			&audioURL,
			&t.TranslationText,
			&mode,
			&confidence,
			&t.TreatPointsEarned,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		t.PetID = nullString(petID)
		t.OriginalAudioURL = nullString(audioURL)
		t.TranslationMode = nullString(mode)
		if confidence.Valid {
			v := confidence.Float64
			t.ConfidenceScore = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TranslationsRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM translations WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *TranslationsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM translations`).Scan(&n)
	return n, err
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
