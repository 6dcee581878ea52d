package postgres

import (
	"context"
	"database/sql"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// DismissalStore implements storage.DismissalStore on the
// dismissed_recommendations table.
type DismissalStore struct {
	db *sql.DB
}

var _ storage.DismissalStore = (*DismissalStore)(nil)

// Dismiss hides candidate from seeker's future recommendations.
func (d *DismissalStore) Dismiss(ctx context.Context, seeker, candidate core.ID) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO dismissed_recommendations (user_id, dismissed_user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, dismissed_user_id) DO NOTHING`, int64(seeker), int64(candidate))
	return err
}

// Dismissed returns the set of candidates seeker has dismissed.
func (d *DismissalStore) Dismissed(ctx context.Context, seeker core.ID) (map[core.ID]struct{}, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT dismissed_user_id FROM dismissed_recommendations WHERE user_id = $1`, int64(seeker))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dismissed := make(map[core.ID]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		dismissed[core.ID(id)] = struct{}{}
	}
	return dismissed, rows.Err()
}
