package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-translator/internal/domain/pets"

	"github.com/jackc/pgx/v5/pgtype"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, user_id,
	name, type, breed,
	birthday, photo_url,
	is_active, favorite_mode, personality_traits,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.UserID,
		p.Name,
		string(p.Type),
		p.Breed,
		toNullDate(p.Birthday),
		p.PhotoURL,
		p.IsActive,
		p.FavoriteMode,
		traitsArray(p.PersonalityTraits),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			breed = $4,
			birthday = $5,
			photo_url = $6,
			is_active = $7,
			favorite_mode = $8,
			personality_traits = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Type),
		p.Breed,
		toNullDate(p.Birthday),
		p.PhotoURL,
		p.IsActive,
		p.FavoriteMode,
		traitsArray(p.PersonalityTraits),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListActiveByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		typ    string
		bd     sql.NullTime
		traits []string
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&typ,
		&p.Breed,
		&bd,
		&p.PhotoURL,
		&p.IsActive,
		&p.FavoriteMode,
		pgtype.NewMap().SQLScanner(&traits),
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Type = pets.Species(typ)
	if bd.Valid {
		// birthday es DATE: pgx lo mapea a medianoche UTC
		t := bd.Time
		p.Birthday = &t
	}
	p.PersonalityTraits = traits
	return p, nil
}

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// traitsArray: la columna es NOT NULL, nil se guarda como '{}'.
func traitsArray(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
