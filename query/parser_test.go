package query

import (
	"testing"

	"github.com/poiesic/matchwell/core"
	"github.com/stretchr/testify/assert"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser(nil)

	tests := []struct {
		name  string
		query string
		want  core.SearchFilters
	}{
		{
			name:  "narrow strict search",
			query: "Software Engineer in Hyderabad 24-28",
			want: core.SearchFilters{
				Profession: "software engineer",
				Location:   "hyderabad",
				MinAge:     24,
				MaxAge:     28,
			},
		},
		{
			name:  "near me with habits",
			query: "doctor under 30 near me, non smoker, vegetarian",
			want: core.SearchFilters{
				Profession:    "doctor",
				MaxAge:        29,
				UseMyLocation: true,
				Smoking:       "No",
				Diet:          "vegetarian",
			},
		},
		{
			name:  "height range and income range",
			query: `height 5'6" to 5'10" earning 10-15 lpa`,
			want: core.SearchFilters{
				MinHeightInches: 66,
				MaxHeightInches: 70,
				MinIncome:       1_000_000,
			},
		},
		{
			name:  "many attributes",
			query: "between 25 and 30, 5'8 and above, teetotaler, kashyap gothra, brahmin, never married, likes music and travel, fair and tall",
			want: core.SearchFilters{
				MinAge:          25,
				MaxAge:          30,
				MinHeightInches: 68,
				Drinking:        "No",
				Gothra:          "kashyap",
				Caste:           "brahmin",
				MaritalStatus:   "never married",
				Interests:       []string{"music", "travel"},
				Appearance:      []string{"fair", "tall"},
			},
		},
		{
			name:  "crore income and lower age bound",
			query: "1.5 crore income, above 27",
			want: core.SearchFilters{
				MinIncome: 15_000_000,
				MinAge:    28,
			},
		},
		{
			name:  "age plus suffix",
			query: "25+ MBA from Pune",
			want: core.SearchFilters{
				MinAge:    25,
				Education: "mba",
				Location:  "pune",
			},
		},
		{
			name:  "reversed age range is ordered",
			query: "hindu 30 to 26",
			want: core.SearchFilters{
				Religion: "hindu",
				MinAge:   26,
				MaxAge:   30,
			},
		},
		{
			name:  "gothra after label",
			query: "gothra: bharadwaj",
			want:  core.SearchFilters{Gothra: "bharadwaj"},
		},
		{
			name:  "empty",
			query: "   ",
			want:  core.SearchFilters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.query)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParser_OutOfRangeAgesIgnored(t *testing.T) {
	got := NewParser(nil).Parse("10-15 members in family")
	assert.Zero(t, got.MinAge)
	assert.Zero(t, got.MaxAge)
}

func TestParser_SmokingPhrases(t *testing.T) {
	p := NewParser(nil)
	for _, q := range []string{"non-smoker", "nonsmoker", "doesn't smoke", "does not smoke", "not a smoker", "no smoking"} {
		assert.Equal(t, "No", p.Parse(q).Smoking, q)
	}
	assert.Empty(t, p.Parse("smoker is fine").Smoking)
}
