package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/refdata"
	"github.com/poiesic/matchwell/storage"
)

const (
	searchBaseScore         = 70
	recommendationBaseScore = 50
)

const (
	religionBonus        = 10
	casteBonus           = 10
	dietBonus            = 10
	careerBonus          = 20
	locationBonus        = 20
	locationPenalty      = -10
	heightBonus          = 20
	heightPenaltyPerInch = -2
	heightReasonBelow    = 40
	smokerPenalty        = -30
	keywordBonus         = 10
)

// MinScore and MaxScore bound every returned score.
const (
	MinScore = 0
	MaxScore = 99
)

// scorer applies the rule-based factors. Scores are not clamped here;
// the assembler clamps once after re-ranking.
type scorer struct {
	ref *refdata.ReferenceData
}

// newCandidate copies profile into a ScoredCandidate at the given base.
func newCandidate(profile *core.Profile, tier core.RetrievalTier, base int) *core.ScoredCandidate {
	return &core.ScoredCandidate{
		Profile: profile.Clone(),
		Score:   base,
		Reasons: []string{},
		Tier:    tier,
	}
}

// scoreSearch scores a candidate in search mode.
func (s *scorer) scoreSearch(seeker, candidate *core.Profile, f *core.SearchFilters, tier core.RetrievalTier) *core.ScoredCandidate {
	c := newCandidate(candidate, tier, searchBaseScore)
	s.applyAffinity(c, seeker, candidate)

	cm := &candidate.Metadata

	if f.Profession != "" {
		terms := s.ref.ProfessionTerms(f.Profession)
		if (storage.ContainsAny{Fields: []storage.Field{storage.FieldProfession}, Terms: terms}).Matches(candidate) {
			c.Score += careerBonus
			c.AddReason("Career Match")
		}
	}

	if f.Location != "" {
		terms := s.ref.LocationTerms(f.Location)
		if (storage.ContainsAny{Fields: storage.LocationFields, Terms: terms}).Matches(candidate) {
			c.Score += locationBonus
		} else {
			c.Score += locationPenalty
		}
	}

	s.applyHeight(c, cm.Height, f.MinHeightInches, f.MaxHeightInches)

	if isNo(f.Smoking) && smokes(cm.Lifestyle.Smoking) {
		c.Score += smokerPenalty
		c.AddReason("Smoker (Mismatch)")
	}

	if n := keywordMatches(candidate, f.Keywords()); n > 0 {
		c.Score += n * keywordBonus
		if n == 1 {
			c.AddReason("1 Interest Match")
		} else {
			c.AddReason(fmt.Sprintf("%d Interest Matches", n))
		}
	}

	if tier == core.TierRelaxed {
		c.AddReason("Broader Match")
	}
	return c
}

// scoreRecommendation scores a candidate with the narrower recommendation
// factor set.
func (s *scorer) scoreRecommendation(seeker, candidate *core.Profile) *core.ScoredCandidate {
	c := newCandidate(candidate, core.TierStrict, recommendationBaseScore)
	s.applyAffinity(c, seeker, candidate)

	if _, ok := s.ref.SharedCareerKeyword(seeker.Bio, candidate.Bio); ok {
		c.Score += careerBonus
		c.AddReason("Career Match")
	}
	return c
}

// applyAffinity adds the religion, caste and diet factors shared by both modes.
func (s *scorer) applyAffinity(c *core.ScoredCandidate, seeker, candidate *core.Profile) {
	sm, cm := &seeker.Metadata, &candidate.Metadata

	if sameValue(sm.Religion.Religion, cm.Religion.Religion) {
		c.Score += religionBonus
		if sameValue(sm.Religion.Caste, cm.Religion.Caste) {
			c.Score += casteBonus
			c.AddReason("Same Caste")
		}
	}

	if s.ref.SameDiet(sm.Lifestyle.Diet, cm.Lifestyle.Diet) {
		c.Score += dietBonus
		c.AddReason("Same diet")
	}
}

// applyHeight scores the candidate's height against the filter bounds.
// Unparseable heights skip the factor.
func (s *scorer) applyHeight(c *core.ScoredCandidate, height string, minInches, maxInches int) {
	if minInches == 0 && maxInches == 0 {
		return
	}
	inches, ok := core.ParseHeightInches(height)
	if !ok {
		return
	}

	var distance int
	switch {
	case minInches > 0 && inches < minInches:
		distance = minInches - inches
	case maxInches > 0 && inches > maxInches:
		distance = inches - maxInches
	}

	if distance == 0 {
		if minInches > 0 && maxInches > 0 {
			c.Score += heightBonus
			c.AddReason(fmt.Sprintf("Perfect Height (%s)", height))
		}
		return
	}

	c.Score += heightPenaltyPerInch * distance
	if c.Score < heightReasonBelow {
		c.AddReason(fmt.Sprintf("Height Mismatch (%s)", height))
	}
}

// keywordMatches counts keywords found in the candidate's bio or hobbies.
func keywordMatches(candidate *core.Profile, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		if refdata.ContainsPhrase(candidate.Bio, kw) || inHobbies(candidate.Metadata.Hobbies, kw) {
			n++
		}
	}
	return n
}

func inHobbies(hobbies []string, kw string) bool {
	for _, h := range hobbies {
		if refdata.ContainsPhrase(h, kw) {
			return true
		}
	}
	return false
}

// sameValue compares two attribute values ignoring case; blanks never match.
func sameValue(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

// smokes reports whether a lifestyle value describes a smoker.
func smokes(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !isNo(v)
}

// clamp bounds score to [MinScore, MaxScore].
func clamp(score int) int {
	return min(max(score, MinScore), MaxScore)
}
