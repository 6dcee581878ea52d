package core

import "strings"

// SearchFilters is the structured form of a search query. Every field is
// optional; the zero value matches everyone of the opposite gender.
type SearchFilters struct {
	Profession      string   `json:"profession,omitempty"`
	MinIncome       int64    `json:"min_income,omitempty"`
	Location        string   `json:"location,omitempty"`
	MinAge          int      `json:"min_age,omitempty"`
	MaxAge          int      `json:"max_age,omitempty"`
	MaritalStatus   string   `json:"marital_status,omitempty"`
	MinHeightInches int      `json:"min_height_inches,omitempty"`
	MaxHeightInches int      `json:"max_height_inches,omitempty"`
	Smoking         string   `json:"smoking,omitempty"`
	Drinking        string   `json:"drinking,omitempty"`
	Diet            string   `json:"diet,omitempty"`
	Religion        string   `json:"religion,omitempty"`
	Caste           string   `json:"caste,omitempty"`
	Gothra          string   `json:"gothra,omitempty"`
	Education       string   `json:"education,omitempty"`
	FamilyValues    string   `json:"family_values,omitempty"`
	Appearance      []string `json:"appearance,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	UseMyLocation   bool     `json:"use_my_location,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f *SearchFilters) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Profession == "" && f.MinIncome == 0 && f.Location == "" &&
		f.MinAge == 0 && f.MaxAge == 0 && f.MaritalStatus == "" &&
		f.MinHeightInches == 0 && f.MaxHeightInches == 0 &&
		f.Smoking == "" && f.Drinking == "" && f.Diet == "" &&
		f.Religion == "" && f.Caste == "" && f.Gothra == "" &&
		f.Education == "" && f.FamilyValues == "" &&
		len(f.Appearance) == 0 && len(f.Interests) == 0 && !f.UseMyLocation
}

// Keywords returns appearance and interest keywords in that order.
func (f *SearchFilters) Keywords() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.Appearance)+len(f.Interests))
	out = append(out, f.Appearance...)
	out = append(out, f.Interests...)
	return out
}

// RetrievalTier tags which retrieval predicate produced a candidate.
type RetrievalTier int

const (
	TierStrict RetrievalTier = iota
	TierRelaxed
)

func (t RetrievalTier) String() string {
	if t == TierRelaxed {
		return "relaxed"
	}
	return "strict"
}

// KundliDetail is one component of a compatibility breakdown.
// Value1 and Value2 carry category labels where the component has them.
type KundliDetail struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Total  int    `json:"total"`
	Value1 string `json:"value1,omitempty"`
	Value2 string `json:"value2,omitempty"`
}

// KundliResult is the astrological compatibility of a seeker/candidate pair.
type KundliResult struct {
	Score   int            `json:"score"`
	Total   int            `json:"total"`
	Details []KundliDetail `json:"details,omitempty"`
}

// ScoredCandidate is a candidate profile with its ranking annotations.
type ScoredCandidate struct {
	Profile Profile       `json:"profile"`
	Score   int           `json:"score"`
	Reasons []string      `json:"reasons"`
	Kundli  KundliResult  `json:"kundli"`
	Tier    RetrievalTier `json:"tier"`
	Online  bool          `json:"online"`
}

// AddReason appends a match-reason tag.
func (c *ScoredCandidate) AddReason(reason string) {
	c.Reasons = append(c.Reasons, reason)
}

// HasReason reports whether a reason tag with the given prefix is present.
func (c *ScoredCandidate) HasReason(prefix string) bool {
	for _, r := range c.Reasons {
		if strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}
