// Package match ranks candidate profiles for a seeker.
//
// A search runs a fixed pipeline:
//
//  1. Interpretation: free text becomes core.SearchFilters through the
//     configured ai.QueryInterpreter, or the local query.Parser when the
//     interpreter is absent or fails.
//  2. Retrieval: a strict predicate ANDs every supplied filter. When it
//     finds fewer than RelaxedThreshold candidates a relaxed predicate
//     (ages widened by five years, remaining filters ORed) tops the list
//     up. Minimum income is then applied as a hard cut.
//  3. Scoring: rule-based factors from a base of 70, plus the pair's
//     astrological compatibility.
//  4. Re-ranking: when an embedder is configured and the query has text,
//     bio similarity and sentiment adjust scores. Provider failures only
//     skip the adjustment.
//  5. Assembly: scores are clamped to [0, 99], sorted, truncated and
//     annotated with presence.
//
// Recommendations skip interpretation and re-ranking and score from a base
// of 50 with a narrower factor set.
//
// Basic usage:
//
//	engine, err := match.NewEngine(store, provider,
//	    match.WithPresence(presence),
//	    match.WithDismissals(dismissals),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Release()
//
//	result, err := engine.Search(ctx, seekerID, "doctor in Hyderabad 25-30", 20)
package match
