package postgres

import (
	"errors"
	"testing"

	"github.com/poiesic/matchwell/core"
	"github.com/stretchr/testify/assert"
)

func TestPresenceResults(t *testing.T) {
	keys := []core.ID{3, 1, 2, 3}
	results := presenceResults(keys, map[core.ID]bool{1: true, 3: true}, nil)

	got := make([]bool, len(results))
	for i, r := range results {
		assert.NoError(t, r.Error)
		got[i] = r.Data
	}
	assert.Equal(t, []bool{true, true, false, true}, got)
}

func TestPresenceResults_Error(t *testing.T) {
	boom := errors.New("connection refused")
	results := presenceResults([]core.ID{1, 2}, nil, boom)
	for _, r := range results {
		assert.ErrorIs(t, r.Error, boom)
		assert.False(t, r.Data)
	}
}
