package match

import (
	"log/slog"
	"testing"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/refdata"
	"github.com/stretchr/testify/assert"
)

func newTestRetriever() *retriever {
	return &retriever{ref: refdata.Default(), logger: slog.Default()}
}

func TestBasePredicate(t *testing.T) {
	seeker := person("Seeker", core.GenderMale, 30)
	seeker.Id = 7

	pred := basePredicate(seeker)
	assert.Equal(t, "id != 7 AND gender = female", pred.String())

	self := person("Self", core.GenderFemale, 30)
	self.Id = 7
	assert.False(t, pred.Matches(self))

	woman := person("Woman", core.GenderFemale, 30)
	woman.Id = 8
	assert.True(t, pred.Matches(woman))

	man := person("Man", core.GenderMale, 30)
	man.Id = 9
	assert.False(t, pred.Matches(man))

	unknown := &core.Profile{Id: 3, Name: "Unknown"}
	open := basePredicate(unknown)
	assert.True(t, open.Matches(man))
	assert.True(t, open.Matches(woman))
}

func TestStrictPredicate(t *testing.T) {
	r := newTestRetriever()
	seeker := person("Seeker", core.GenderMale, 30)
	seeker.Id = 1

	f := &core.SearchFilters{
		Profession:    "Software Engineer",
		Location:      "Hyderabad",
		MinAge:        24,
		MaxAge:        28,
		Diet:          "veg",
		MaritalStatus: "never married",
		Smoking:       "No",
	}
	pred := r.strictPredicate(seeker, f)

	match := person("Match", core.GenderFemale, 26,
		withProfession("Senior Software Developer"), withCity("Secunderabad"), withDiet("Vegetarian"), withSmoking("no"))
	match.Metadata.MaritalStatus = "Never Married"
	assert.True(t, pred.Matches(match))

	tests := []struct {
		name   string
		mutate func(p *core.Profile)
	}{
		{name: "too old", mutate: func(p *core.Profile) { p.Age = 29 }},
		{name: "unknown age", mutate: func(p *core.Profile) { p.Age = 0 }},
		{name: "other profession", mutate: func(p *core.Profile) { p.Metadata.Career.Profession = "Teacher" }},
		{name: "other city", mutate: func(p *core.Profile) { p.Metadata.Location.City = "Pune" }},
		{name: "other diet", mutate: func(p *core.Profile) { p.Metadata.Lifestyle.Diet = "Non-Vegetarian" }},
		{name: "smoker", mutate: func(p *core.Profile) { p.Metadata.Lifestyle.Smoking = "Yes" }},
		{name: "divorced", mutate: func(p *core.Profile) { p.Metadata.MaritalStatus = "Divorced" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := match.Clone()
			tt.mutate(&p)
			assert.False(t, pred.Matches(&p))
		})
	}
}

func TestStrictPredicate_HabitsOnlyFilterAbstinence(t *testing.T) {
	r := newTestRetriever()
	seeker := person("Seeker", core.GenderMale, 30)
	seeker.Id = 1

	pred := r.strictPredicate(seeker, &core.SearchFilters{Smoking: "Occasionally", Drinking: "socially"})
	assert.Equal(t, basePredicate(seeker).String(), pred.String())

	pred = r.strictPredicate(seeker, &core.SearchFilters{Drinking: "never"})
	teetotal := person("T", core.GenderFemale, 28)
	teetotal.Id = 2
	teetotal.Metadata.Lifestyle.Drinking = "No"
	drinker := person("D", core.GenderFemale, 28)
	drinker.Id = 3
	drinker.Metadata.Lifestyle.Drinking = "Socially"
	assert.True(t, pred.Matches(teetotal))
	assert.False(t, pred.Matches(drinker))
}

func TestRelaxedPredicate(t *testing.T) {
	r := newTestRetriever()
	seeker := person("Seeker", core.GenderMale, 30)
	seeker.Id = 1

	t.Run("nothing to relax", func(t *testing.T) {
		_, ok := r.relaxedPredicate(seeker, &core.SearchFilters{})
		assert.False(t, ok)

		_, ok = r.relaxedPredicate(seeker, &core.SearchFilters{MinIncome: 100, Interests: []string{"music"}})
		assert.False(t, ok)
	})

	t.Run("ages widen by five", func(t *testing.T) {
		pred, ok := r.relaxedPredicate(seeker, &core.SearchFilters{MinAge: 24, MaxAge: 28})
		assert.True(t, ok)
		for age, want := range map[int]bool{18: false, 19: true, 33: true, 34: false} {
			assert.Equal(t, want, pred.Matches(person("C", core.GenderFemale, age)), "age %d", age)
		}
	})

	t.Run("minimum age floors at one", func(t *testing.T) {
		pred, ok := r.relaxedPredicate(seeker, &core.SearchFilters{MinAge: 3})
		assert.True(t, ok)
		assert.Contains(t, pred.String(), "age >= 1")
	})

	t.Run("any one field suffices", func(t *testing.T) {
		pred, ok := r.relaxedPredicate(seeker, &core.SearchFilters{Profession: "doctor", Location: "Chennai"})
		assert.True(t, ok)

		assert.True(t, pred.Matches(person("A", core.GenderFemale, 28, withProfession("Doctor"), withCity("Delhi"))))
		assert.True(t, pred.Matches(person("B", core.GenderFemale, 28, withProfession("Teacher"), withCity("Madras"))))
		assert.False(t, pred.Matches(person("C", core.GenderFemale, 28, withProfession("Teacher"), withCity("Delhi"))))
		assert.False(t, pred.Matches(person("D", core.GenderMale, 28, withProfession("Doctor"), withCity("Chennai"))))
	})
}

func TestIsNo(t *testing.T) {
	for _, v := range []string{"No", "no", " NEVER ", "none", "Non-Smoker", "non drinker"} {
		assert.True(t, isNo(v), v)
	}
	for _, v := range []string{"", "Yes", "Occasionally", "socially", "nope"} {
		assert.False(t, isNo(v), v)
	}
}
