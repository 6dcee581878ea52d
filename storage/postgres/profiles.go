package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

const uniqueViolation = "23505"

// ProfileRepository implements storage.ProfileRepository on a profiles
// table with the metadata bag in a JSONB column.
type ProfileRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// Close is a no-op; the owning Store closes the pool.
func (r *ProfileRepository) Close() error {
	return nil
}

// GetProfile retrieves a single profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, int64(id))
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
	}
	return profile, err
}

// QueryProfiles compiles pred to SQL and returns matches ordered by ID.
func (r *ProfileRepository) QueryProfiles(ctx context.Context, pred storage.Predicate) ([]*core.Profile, error) {
	where, args, err := compilePredicate(pred)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + ` ORDER BY id`
	r.logger.Debug("query profiles", "where", where, "args", len(args))
	return r.queryProfiles(ctx, query, args...)
}

// ScanProfiles returns up to limit profiles with ID greater than afterID.
func (r *ProfileRepository) ScanProfiles(ctx context.Context, afterID core.ID, limit int) ([]*core.Profile, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id > $1 ORDER BY id LIMIT $2`
	return r.queryProfiles(ctx, query, int64(afterID), limit)
}

// CountProfiles returns the number of stored profiles.
func (r *ProfileRepository) CountProfiles(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	return count, err
}

// AddProfiles validates and inserts profiles in one transaction.
// Profiles with ID=0 get one from the table's sequence.
func (r *ProfileRepository) AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return nil, err
		}
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		explicitIDs := false
		for _, profile := range profiles {
			if profile.InsertedAt.IsZero() {
				profile.InsertedAt = now
			}
			profile.UpdatedAt = profile.InsertedAt

			cols, err := profileValues(profile)
			if err != nil {
				return err
			}

			if profile.Id != 0 {
				explicitIDs = true
				_, err = tx.ExecContext(ctx, `INSERT INTO profiles (id, name, gender, age, bio, premium, likes_received,
					phone, email, metadata, bio_vector, bio_digest, inserted_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
					append([]any{int64(profile.Id)}, cols...)...)
			} else {
				var id int64
				err = tx.QueryRowContext(ctx, `INSERT INTO profiles (name, gender, age, bio, premium, likes_received,
					phone, email, metadata, bio_vector, bio_digest, inserted_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`,
					cols...).Scan(&id)
				profile.Id = core.ID(id)
			}
			if err != nil {
				return translateError(err, profile.Id)
			}
		}

		if explicitIDs {
			// Keep BIGSERIAL ahead of explicitly numbered rows.
			_, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('profiles', 'id'),
				GREATEST((SELECT MAX(id) FROM profiles), 1))`)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfiles validates and replaces existing profiles.
func (r *ProfileRepository) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return nil, err
		}
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		for _, profile := range profiles {
			profile.UpdatedAt = time.Now().UTC()
			cols, err := profileValues(profile)
			if err != nil {
				return err
			}
			// Everything except inserted_at, then updated_at and the key.
			args := append(cols[:11:11], profile.UpdatedAt, int64(profile.Id))
			var inserted time.Time
			err = tx.QueryRowContext(ctx, `UPDATE profiles SET name = $1, gender = $2, age = $3, bio = $4,
				premium = $5, likes_received = $6, phone = $7, email = $8, metadata = $9,
				bio_vector = $10, bio_digest = $11, updated_at = $12
				WHERE id = $13 RETURNING inserted_at`, args...).Scan(&inserted)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: profile %d", storage.ErrNotFound, profile.Id)
			}
			if err != nil {
				return err
			}
			profile.InsertedAt = inserted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfiles removes profiles by their IDs.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, int64(id))
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
			}
		}
		return nil
	})
}

func (r *ProfileRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warn("rollback failed", "err", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (r *ProfileRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]*core.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*core.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, profile)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*core.Profile, error) {
	var (
		p        core.Profile
		id       int64
		gender   string
		metadata []byte
		vector   pq.Float64Array
		digest   int64
	)
	err := row.Scan(&id, &p.Name, &gender, &p.Age, &p.Bio, &p.Premium, &p.LikesReceived,
		&p.Phone, &p.Email, &metadata, &vector, &digest, &p.InsertedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Id = core.ID(id)
	p.Gender = core.Gender(gender)
	p.BioDigest = core.ID(uint64(digest))
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return nil, fmt.Errorf("%w: profile %d metadata: %w", storage.ErrSerializationFailed, id, err)
		}
	}
	if len(vector) > 0 {
		p.BioVector = make([]float32, len(vector))
		for i, v := range vector {
			p.BioVector[i] = float32(v)
		}
	}
	return &p, nil
}

// profileValues returns the column values shared by INSERT and UPDATE, in
// order: name, gender, age, bio, premium, likes_received, phone, email,
// metadata, bio_vector, bio_digest, inserted_at, updated_at.
func profileValues(p *core.Profile) ([]any, error) {
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	var vector pq.Float64Array
	if len(p.BioVector) > 0 {
		vector = make(pq.Float64Array, len(p.BioVector))
		for i, v := range p.BioVector {
			vector[i] = float64(v)
		}
	}
	return []any{
		p.Name, string(p.Gender), p.Age, p.Bio, p.Premium, p.LikesReceived, p.Phone, p.Email,
		string(metadata), vector, int64(p.BioDigest), p.InsertedAt, p.UpdatedAt,
	}, nil
}

func translateError(err error, id core.ID) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: profile %d", storage.ErrAlreadyExists, id)
	}
	return err
}
