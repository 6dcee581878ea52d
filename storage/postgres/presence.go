package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/lib/pq"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// PresenceTracker implements storage.PresenceTracker on profiles.last_online.
// Concurrent IsOnline calls issued within the batch wait are answered by a
// single query.
type PresenceTracker struct {
	db     *sql.DB
	window time.Duration
	loader *dataloader.Loader[core.ID, bool]
}

var _ storage.PresenceTracker = (*PresenceTracker)(nil)

func newPresenceTracker(db *sql.DB, window, wait time.Duration) *PresenceTracker {
	p := &PresenceTracker{db: db, window: window}
	p.loader = dataloader.NewBatchedLoader(p.batchOnline,
		dataloader.WithWait[core.ID, bool](wait),
		dataloader.WithCache[core.ID, bool](&dataloader.NoCache[core.ID, bool]{}),
	)
	return p
}

// MarkOnline sets last_online to now.
func (p *PresenceTracker) MarkOnline(ctx context.Context, id core.ID) error {
	res, err := p.db.ExecContext(ctx, `UPDATE profiles SET last_online = NOW() WHERE id = $1`, int64(id))
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
	return nil
}

// IsOnline reports whether last_online falls inside the presence window.
// Unknown users are offline.
func (p *PresenceTracker) IsOnline(ctx context.Context, id core.ID) (bool, error) {
	return p.loader.Load(ctx, id)()
}

func (p *PresenceTracker) batchOnline(ctx context.Context, keys []core.ID) []*dataloader.Result[bool] {
	ids := make(pq.Int64Array, len(keys))
	for i, k := range keys {
		ids[i] = int64(k)
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, COALESCE(last_online > NOW() - make_interval(secs => $2), FALSE) AS online
		FROM profiles
		WHERE id = ANY($1)`, ids, p.window.Seconds())
	if err != nil {
		return presenceResults(keys, nil, err)
	}
	defer rows.Close()

	online := make(map[core.ID]bool, len(keys))
	for rows.Next() {
		var (
			id int64
			on bool
		)
		if err := rows.Scan(&id, &on); err != nil {
			return presenceResults(keys, nil, err)
		}
		online[core.ID(id)] = on
	}
	if err := rows.Err(); err != nil {
		return presenceResults(keys, nil, err)
	}
	return presenceResults(keys, online, nil)
}

// presenceResults lines results up with keys. Keys missing from online are
// reported offline; a non-nil err fails every key.
func presenceResults(keys []core.ID, online map[core.ID]bool, err error) []*dataloader.Result[bool] {
	results := make([]*dataloader.Result[bool], len(keys))
	for i, k := range keys {
		if err != nil {
			results[i] = &dataloader.Result[bool]{Error: err}
			continue
		}
		results[i] = &dataloader.Result[bool]{Data: online[k]}
	}
	return results
}
