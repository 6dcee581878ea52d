package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/storage"
)

// DefaultPresenceWindow is how long a user counts as online after a ping.
const DefaultPresenceWindow = 90 * time.Second

// PresenceTracker implements storage.PresenceTracker with TTL entries.
// Each ping stores the time it was seen; the entry expires after the window
// so stale users are garbage collected by badger.
type PresenceTracker struct {
	backend *Backend
	window  time.Duration
	now     func() time.Time
}

var _ storage.PresenceTracker = (*PresenceTracker)(nil)

// NewPresenceTracker creates a tracker with the given online window.
// A non-positive window uses DefaultPresenceWindow.
func NewPresenceTracker(backend *Backend, window time.Duration) *PresenceTracker {
	if window <= 0 {
		window = DefaultPresenceWindow
	}
	return &PresenceTracker{
		backend: backend,
		window:  window,
		now:     time.Now,
	}
}

// MarkOnline records that id was just seen.
func (p *PresenceTracker) MarkOnline(ctx context.Context, id core.ID) error {
	return p.backend.update(func(tx *badger.Txn) error {
		value := binary.BigEndian.AppendUint64(nil, uint64(p.now().UnixMicro()))
		entry := badger.NewEntry(makePresenceKey(id), value).WithTTL(p.window)
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return nil
	})
}

// IsOnline reports whether id was seen within the presence window.
func (p *PresenceTracker) IsOnline(ctx context.Context, id core.ID) (bool, error) {
	var online bool
	err := p.backend.view(func(tx *badger.Txn) error {
		item, err := tx.Get(makePresenceKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return storage.ErrSerializationFailed
			}
			seen := time.UnixMicro(int64(binary.BigEndian.Uint64(val)))
			online = p.now().Sub(seen) <= p.window
			return nil
		})
	})
	return online, err
}
