package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	rd := Default()
	require.NotNil(t, rd)
	assert.Same(t, rd, Default())
	assert.NotEmpty(t, rd.ProfessionSynonyms)
	assert.Contains(t, rd.CareerKeywords, "doctor")
}

func TestProfessionTerms(t *testing.T) {
	rd := Default()

	terms := rd.ProfessionTerms("Software Engineer")
	assert.Equal(t, "Software Engineer", terms[0])
	assert.Contains(t, terms, "software developer")
	assert.Contains(t, terms, "programmer")
	assert.NotContains(t, terms, "software engineer", "input spelling is not repeated")

	assert.Equal(t, []string{"Astronaut"}, rd.ProfessionTerms("Astronaut"))
	assert.Nil(t, rd.ProfessionTerms("  "))

	// A synonym expands to its whole group.
	assert.Contains(t, rd.ProfessionTerms("physician"), "doctor")
}

func TestLocationTerms(t *testing.T) {
	rd := Default()
	assert.Contains(t, rd.LocationTerms("Bengaluru"), "bangalore")
	assert.Equal(t, []string{"Atlantis"}, rd.LocationTerms("Atlantis"))
}

func TestFinders(t *testing.T) {
	rd := Default()
	q := "looking for a vegetarian hindu brahmin software developer in Bengaluru, never married, with an MBA"

	p, ok := rd.FindProfession(q)
	require.True(t, ok)
	assert.Equal(t, "software engineer", p)

	c, ok := rd.FindCity(q)
	require.True(t, ok)
	assert.Equal(t, "bangalore", c)

	d, ok := rd.FindDiet(q)
	require.True(t, ok)
	assert.Equal(t, "vegetarian", d)

	m, ok := rd.FindMaritalStatus(q)
	require.True(t, ok)
	assert.Equal(t, "never married", m)

	r, ok := rd.FindReligion(q)
	require.True(t, ok)
	assert.Equal(t, "hindu", r)

	caste, ok := rd.FindCaste(q)
	require.True(t, ok)
	assert.Equal(t, "brahmin", caste)

	e, ok := rd.FindEducation(q)
	require.True(t, ok)
	assert.Equal(t, "mba", e)

	_, ok = rd.FindCity("somewhere quiet")
	assert.False(t, ok)
}

func TestFindDiet_PrefersLongestSpelling(t *testing.T) {
	d, ok := Default().FindDiet("non veg please")
	require.True(t, ok)
	assert.Equal(t, "non-vegetarian", d)
}

func TestFindInterestsAndAppearance(t *testing.T) {
	rd := Default()
	assert.Equal(t, []string{"music", "trekking"}, rd.FindInterests("likes trekking and music"))
	assert.Equal(t, []string{"fair", "tall"}, rd.FindAppearance("tall and fair"))
	assert.Empty(t, rd.FindInterests("nothing here"))
}

func TestSharedCareerKeyword(t *testing.T) {
	rd := Default()
	k, ok := rd.SharedCareerKeyword("I am a doctor at AIIMS", "Looking for a Doctor, ideally")
	require.True(t, ok)
	assert.Equal(t, "doctor", k)

	_, ok = rd.SharedCareerKeyword("doctorate in history", "doctor")
	assert.False(t, ok)
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("B.Tech from IIT", "b.tech"))
	assert.True(t, ContainsPhrase("Hyderabad, Telangana", "hyderabad"))
	assert.False(t, ContainsPhrase("vegetarian", "veg"))
	assert.False(t, ContainsPhrase("anything", ""))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities:\n  gotham: [gotham, gotham city]\n"), 0o644))

	rd, err := Load(path)
	require.NoError(t, err)
	c, ok := rd.FindCity("lives in Gotham City")
	require.True(t, ok)
	assert.Equal(t, "gotham", c)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("cities: [not, a, map"))
	assert.Error(t, err)

	_, err = Parse([]byte("unrelated: true\n"))
	assert.ErrorIs(t, err, ErrEmptyReferenceData)
}

func TestDietAndMaritalTerms(t *testing.T) {
	rd := Default()

	assert.Contains(t, rd.DietTerms("Veg"), "vegetarian")
	assert.NotContains(t, rd.DietTerms("Veg"), "non-vegetarian")
	assert.Contains(t, rd.MaritalStatusTerms("single"), "never married")

	assert.True(t, rd.SameDiet("Veg", "Vegetarian"))
	assert.True(t, rd.SameDiet("Vegan", "vegan"))
	assert.False(t, rd.SameDiet("Vegetarian", "Non-Vegetarian"))
	assert.False(t, rd.SameDiet("", ""))
	assert.True(t, rd.SameDiet("Paleo", "paleo"), "unknown diets compare by spelling")
}
