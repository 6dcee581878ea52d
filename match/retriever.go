package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/refdata"
	"github.com/poiesic/matchwell/storage"
)

const (
	// RelaxedThreshold is the strict-tier result count below which the
	// relaxed tier runs.
	RelaxedThreshold = 5

	// relaxedAgeWidening is added to each side of the age bounds in the
	// relaxed tier.
	relaxedAgeWidening = 5
)

// tieredProfile is a retrieved candidate tagged with the tier that found it.
type tieredProfile struct {
	profile *core.Profile
	tier    core.RetrievalTier
}

// retrieval is the outcome of a two-tier retrieval.
type retrieval struct {
	candidates  []tieredProfile
	strict      int
	relaxed     int
	usedRelaxed bool
}

// retriever builds strict and relaxed predicates and runs them against the
// profile store.
type retriever struct {
	store  storage.ProfileStore
	ref    *refdata.ReferenceData
	logger *slog.Logger
}

// basePredicate excludes the seeker and restricts to the opposite gender
// when the seeker's gender is known.
func basePredicate(seeker *core.Profile) storage.Predicate {
	pred := storage.And(storage.IDNot{ID: seeker.Id})
	if opposite := seeker.Gender.Opposite(); opposite != "" {
		pred = pred.With(storage.GenderIs{Gender: opposite})
	}
	return pred
}

// fieldClauses returns one clause per supplied non-age filter field.
// Height, income and keywords are scoring or post-filter concerns.
func (r *retriever) fieldClauses(f *core.SearchFilters) []storage.Clause {
	var clauses []storage.Clause
	contains := func(value string, terms []string, fields ...storage.Field) {
		if strings.TrimSpace(value) == "" {
			return
		}
		clauses = append(clauses, storage.ContainsAny{Fields: fields, Terms: terms})
	}
	equalsAny := func(field storage.Field, terms []string) {
		switch len(terms) {
		case 0:
		case 1:
			clauses = append(clauses, storage.EqualsFold{Field: field, Value: terms[0]})
		default:
			alts := make([]storage.Clause, len(terms))
			for i, t := range terms {
				alts[i] = storage.EqualsFold{Field: field, Value: t}
			}
			clauses = append(clauses, storage.AnyOf{Clauses: alts})
		}
	}

	contains(f.Profession, r.ref.ProfessionTerms(f.Profession), storage.FieldProfession)
	contains(f.Location, r.ref.LocationTerms(f.Location), storage.LocationFields...)
	contains(f.Religion, []string{f.Religion}, storage.FieldReligion)
	contains(f.Caste, []string{f.Caste}, storage.FieldCaste)
	contains(f.Gothra, []string{f.Gothra}, storage.FieldGothra)
	contains(f.Education, []string{f.Education}, storage.FieldEducationLevel, storage.FieldInstitution)
	contains(f.FamilyValues, []string{f.FamilyValues}, storage.FieldFamilyValues)
	equalsAny(storage.FieldDiet, r.ref.DietTerms(f.Diet))
	equalsAny(storage.FieldMaritalStatus, r.ref.MaritalStatusTerms(f.MaritalStatus))
	if isNo(f.Smoking) {
		equalsAny(storage.FieldSmoking, []string{"No"})
	}
	if isNo(f.Drinking) {
		equalsAny(storage.FieldDrinking, []string{"No"})
	}
	return clauses
}

// strictPredicate ANDs every supplied filter onto the base predicate.
func (r *retriever) strictPredicate(seeker *core.Profile, f *core.SearchFilters) storage.Predicate {
	pred := basePredicate(seeker)
	if f.MinAge > 0 || f.MaxAge > 0 {
		pred = pred.With(storage.AgeRange{Min: f.MinAge, Max: f.MaxAge})
	}
	return pred.With(r.fieldClauses(f)...)
}

// relaxedPredicate widens the age bounds and ORs the remaining filters.
// It returns false when there is nothing to relax.
func (r *retriever) relaxedPredicate(seeker *core.Profile, f *core.SearchFilters) (storage.Predicate, bool) {
	fields := r.fieldClauses(f)
	if len(fields) == 0 && f.MinAge == 0 && f.MaxAge == 0 {
		return storage.Predicate{}, false
	}

	pred := basePredicate(seeker)
	if f.MinAge > 0 || f.MaxAge > 0 {
		widened := storage.AgeRange{}
		if f.MinAge > 0 {
			widened.Min = max(f.MinAge-relaxedAgeWidening, 1)
		}
		if f.MaxAge > 0 {
			widened.Max = f.MaxAge + relaxedAgeWidening
		}
		pred = pred.With(widened)
	}
	if len(fields) > 0 {
		pred = pred.With(storage.AnyOf{Clauses: fields})
	}
	return pred, true
}

// retrieve runs the strict tier, falls back to the relaxed tier when the
// strict tier under-populates, merges both without duplicates and applies
// the minimum income as a hard elimination.
func (r *retriever) retrieve(ctx context.Context, seeker *core.Profile, f *core.SearchFilters) (*retrieval, error) {
	strictPred := r.strictPredicate(seeker, f)
	r.logger.Debug("strict retrieval", "predicate", strictPred.String())

	strict, err := r.store.QueryProfiles(ctx, strictPred)
	if err != nil {
		return nil, err
	}

	result := &retrieval{
		candidates: make([]tieredProfile, 0, len(strict)),
		strict:     len(strict),
	}
	seen := make(map[core.ID]struct{}, len(strict))
	for _, p := range strict {
		seen[p.Id] = struct{}{}
		result.candidates = append(result.candidates, tieredProfile{profile: p, tier: core.TierStrict})
	}

	if len(strict) < RelaxedThreshold {
		// With nothing to relax the relaxed tier is the base predicate, which
		// the strict tier already ran, so it cannot add rows.
		result.usedRelaxed = true
		if relaxedPred, ok := r.relaxedPredicate(seeker, f); ok {
			r.logger.Debug("strict tier under-populated, running relaxed retrieval",
				"strict", len(strict), "predicate", relaxedPred.String())

			relaxed, err := r.store.QueryProfiles(ctx, relaxedPred)
			if err != nil {
				return nil, err
			}
			for _, p := range relaxed {
				if _, dup := seen[p.Id]; dup {
					continue
				}
				seen[p.Id] = struct{}{}
				result.candidates = append(result.candidates, tieredProfile{profile: p, tier: core.TierRelaxed})
				result.relaxed++
			}
		}
	}

	if f.MinIncome > 0 {
		kept := result.candidates[:0]
		for _, c := range result.candidates {
			if c.profile.Metadata.Career.AnnualIncome >= f.MinIncome {
				kept = append(kept, c)
			}
		}
		result.candidates = kept
	}

	return result, nil
}

// isNo reports whether a habit filter asks for abstinence.
func isNo(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "no", "never", "none", "non-smoker", "non smoker", "non-drinker", "non drinker":
		return true
	}
	return false
}
