package refdata

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrEmptyReferenceData is returned when a document defines no tables at all.
var ErrEmptyReferenceData = errors.New("reference data defines no tables")

// ReferenceData holds the keyword tables used by the fallback query parser
// and by candidate matching. A loaded value is never modified and is safe
// for concurrent use.
type ReferenceData struct {
	ProfessionSynonyms map[string][]string `yaml:"profession_synonyms"`
	Cities             map[string][]string `yaml:"cities"`
	Diets              map[string][]string `yaml:"diets"`
	MaritalStatuses    map[string][]string `yaml:"marital_statuses"`
	Religions          []string            `yaml:"religions"`
	Castes             []string            `yaml:"castes"`
	Education          []string            `yaml:"education"`
	FamilyValues       []string            `yaml:"family_values"`
	Interests          []string            `yaml:"interests"`
	Appearance         []string            `yaml:"appearance"`
	CareerKeywords     []string            `yaml:"career_keywords"`

	professions groupIndex
	cities      groupIndex
	diets       groupIndex
	marital     groupIndex
}

var defaultOnce = sync.OnceValues(func() (*ReferenceData, error) {
	return Parse(defaultYAML)
})

// Default returns the reference data compiled into the binary.
func Default() *ReferenceData {
	rd, err := defaultOnce()
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded default.yaml is invalid: %v", err))
	}
	return rd
}

// Load reads reference data from a YAML file.
func Load(path string) (*ReferenceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}
	rd, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse reference data %s: %w", path, err)
	}
	return rd, nil
}

// Parse decodes reference data from YAML and builds its lookup indexes.
func Parse(data []byte) (*ReferenceData, error) {
	var rd ReferenceData
	if err := yaml.Unmarshal(data, &rd); err != nil {
		return nil, err
	}
	if len(rd.ProfessionSynonyms) == 0 && len(rd.Cities) == 0 && len(rd.Diets) == 0 &&
		len(rd.Religions) == 0 && len(rd.Interests) == 0 && len(rd.CareerKeywords) == 0 {
		return nil, ErrEmptyReferenceData
	}
	rd.professions = newGroupIndex(rd.ProfessionSynonyms)
	rd.cities = newGroupIndex(rd.Cities)
	rd.diets = newGroupIndex(rd.Diets)
	rd.marital = newGroupIndex(rd.MaritalStatuses)
	return &rd, nil
}

// ProfessionTerms returns every spelling in the synonym group of profession,
// starting with profession itself. Unknown professions expand to themselves.
func (rd *ReferenceData) ProfessionTerms(profession string) []string {
	return rd.professions.expand(profession)
}

// LocationTerms returns the known spellings of a city, starting with loc.
func (rd *ReferenceData) LocationTerms(loc string) []string {
	return rd.cities.expand(loc)
}

// DietTerms returns the known spellings of a diet, starting with diet.
func (rd *ReferenceData) DietTerms(diet string) []string {
	return rd.diets.expand(diet)
}

// MaritalStatusTerms returns the known spellings of a marital status.
func (rd *ReferenceData) MaritalStatusTerms(status string) []string {
	return rd.marital.expand(status)
}

// SameDiet reports whether a and b name the same diet, treating spellings
// of one canonical diet as equal. Blank values never match.
func (rd *ReferenceData) SameDiet(a, b string) bool {
	na, nb := rd.diets.canonicalOf(a), rd.diets.canonicalOf(b)
	return na != "" && na == nb
}

// FindProfession returns the canonical profession mentioned in text.
func (rd *ReferenceData) FindProfession(text string) (string, bool) {
	return rd.professions.find(text)
}

// FindCity returns the canonical city mentioned in text.
func (rd *ReferenceData) FindCity(text string) (string, bool) {
	return rd.cities.find(text)
}

// FindDiet returns the canonical diet mentioned in text.
func (rd *ReferenceData) FindDiet(text string) (string, bool) {
	return rd.diets.find(text)
}

// FindMaritalStatus returns the canonical marital status mentioned in text.
func (rd *ReferenceData) FindMaritalStatus(text string) (string, bool) {
	return rd.marital.find(text)
}

// FindReligion returns the first religion mentioned in text.
func (rd *ReferenceData) FindReligion(text string) (string, bool) {
	return findLongest(text, rd.Religions)
}

// FindCaste returns the first caste mentioned in text.
func (rd *ReferenceData) FindCaste(text string) (string, bool) {
	return findLongest(text, rd.Castes)
}

// FindEducation returns the most specific education term mentioned in text.
func (rd *ReferenceData) FindEducation(text string) (string, bool) {
	return findLongest(text, rd.Education)
}

// FindFamilyValues returns the family values term mentioned in text.
func (rd *ReferenceData) FindFamilyValues(text string) (string, bool) {
	return findLongest(text, rd.FamilyValues)
}

// FindInterests returns every interest keyword mentioned in text, in table order.
func (rd *ReferenceData) FindInterests(text string) []string {
	return findAll(text, rd.Interests)
}

// FindAppearance returns every appearance keyword mentioned in text, in table order.
func (rd *ReferenceData) FindAppearance(text string) []string {
	return findAll(text, rd.Appearance)
}

// SharedCareerKeyword returns the first career keyword that appears in both texts.
func (rd *ReferenceData) SharedCareerKeyword(a, b string) (string, bool) {
	for _, k := range rd.CareerKeywords {
		if ContainsPhrase(a, k) && ContainsPhrase(b, k) {
			return k, true
		}
	}
	return "", false
}

// groupIndex maps every spelling in a canonical -> spellings table back to
// its canonical value.
type groupIndex struct {
	canonical map[string]string   // normalized spelling -> canonical
	members   map[string][]string // canonical -> spellings
	byLength  []string            // normalized spellings, longest first
}

func newGroupIndex(groups map[string][]string) groupIndex {
	idx := groupIndex{
		canonical: make(map[string]string),
		members:   make(map[string][]string, len(groups)),
	}
	keys := make([]string, 0, len(groups))
	for canon := range groups {
		keys = append(keys, canon)
	}
	sort.Strings(keys)
	for _, canon := range keys {
		all := append([]string{canon}, groups[canon]...)
		for _, s := range all {
			n := Normalize(s)
			if n == "" {
				continue
			}
			if _, seen := idx.canonical[n]; !seen {
				idx.canonical[n] = canon
				idx.byLength = append(idx.byLength, n)
			}
		}
		idx.members[canon] = dedupe(all)
	}
	sortLongestFirst(idx.byLength)
	return idx
}

func (g groupIndex) expand(term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	canon, ok := g.canonical[Normalize(term)]
	if !ok {
		return []string{term}
	}
	return dedupe(append([]string{term}, g.members[canon]...))
}

// canonicalOf returns the canonical value for an exact spelling, or the
// normalized input when the spelling is unknown.
func (g groupIndex) canonicalOf(term string) string {
	n := Normalize(term)
	if canon, ok := g.canonical[n]; ok {
		return canon
	}
	return n
}

func (g groupIndex) find(text string) (string, bool) {
	for _, s := range g.byLength {
		if ContainsPhrase(text, s) {
			return g.canonical[s], true
		}
	}
	return "", false
}

func findLongest(text string, terms []string) (string, bool) {
	sorted := append([]string(nil), terms...)
	sortLongestFirst(sorted)
	for _, t := range sorted {
		if ContainsPhrase(text, t) {
			return t, true
		}
	}
	return "", false
}

func findAll(text string, terms []string) []string {
	var out []string
	for _, t := range terms {
		if ContainsPhrase(text, t) {
			out = append(out, t)
		}
	}
	return out
}

// Normalize lower-cases s, turns every run of non-alphanumeric characters
// into a single space and trims the result.
func Normalize(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// ContainsPhrase reports whether phrase occurs in text on word boundaries,
// ignoring case and punctuation.
func ContainsPhrase(text, phrase string) bool {
	p := Normalize(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+Normalize(text)+" ", " "+p+" ")
}

func sortLongestFirst(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		if len(s[i]) != len(s[j]) {
			return len(s[i]) > len(s[j])
		}
		return s[i] < s[j]
	})
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		n := Normalize(s)
		if _, dup := seen[n]; dup || n == "" {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, s)
	}
	return out
}
