package match

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/poiesic/matchwell/core"
)

// assemble clamps, orders, truncates and annotates the final result list.
// Ties keep a documented order: strict before relaxed, then ascending ID.
func (e *Engine) assemble(ctx context.Context, seeker *core.Profile, candidates []*core.ScoredCandidate, limit int) []*core.ScoredCandidate {
	for _, c := range candidates {
		c.Score = clamp(c.Score)
	}

	slices.SortStableFunc(candidates, compareCandidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if !seeker.Premium {
		for _, c := range candidates {
			c.Profile.Phone = ""
			c.Profile.Email = ""
		}
	}

	e.markOnline(ctx, candidates)
	return candidates
}

func compareCandidates(a, b *core.ScoredCandidate) int {
	if a.Score != b.Score {
		return cmp.Compare(b.Score, a.Score)
	}
	if a.Tier != b.Tier {
		return cmp.Compare(a.Tier, b.Tier)
	}
	return cmp.Compare(a.Profile.Id, b.Profile.Id)
}

// markOnline looks up presence for every candidate concurrently. Lookup
// errors leave the candidate offline.
func (e *Engine) markOnline(ctx context.Context, candidates []*core.ScoredCandidate) {
	if e.presence == nil || len(candidates) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, c := range candidates {
		lookup := func() {
			defer wg.Done()
			online, err := e.presence.IsOnline(ctx, c.Profile.Id)
			if err != nil {
				e.logger.Warn("presence lookup failed", "candidate", c.Profile.Id, "err", err)
				return
			}
			c.Online = online
		}
		wg.Add(1)
		if err := e.pool.Submit(lookup); err != nil {
			lookup()
		}
	}
	wg.Wait()
}
