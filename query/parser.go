package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/refdata"
)

const (
	minAge = 18
	maxAge = 99

	lakh  = 100_000
	crore = 10_000_000
)

var (
	incomeLakhPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:\s*(?:-|to)\s*\d+(?:\.\d+)?)?\s*(?:lakhs?|lacs?|lpa|l)\b`)
	incomeCrorePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:\s*(?:-|to)\s*\d+(?:\.\d+)?)?\s*(?:crores?|cr)\b`)

	heightToken        = `(\d\s*(?:'|ft\.?|feet|foot)\s*(?:\d{1,2}\s*(?:"|''|in\b|inch\b|inches\b)?)?|\d{3}\s*cm)`
	heightRangePattern = regexp.MustCompile(heightToken + `\s*(?:-|to|and)\s*` + heightToken)
	heightMinPattern   = regexp.MustCompile(`(?:taller than|above|over|at least|min(?:imum)?|atleast)\s*(?:height\s*)?` + heightToken)
	heightPlusPattern  = regexp.MustCompile(heightToken + `\s*(?:\+|plus|and above|or above|or taller)`)
	heightMaxPattern   = regexp.MustCompile(`(?:shorter than|below|under|at most|upto|up to|max(?:imum)?)\s*(?:height\s*)?` + heightToken)

	ageRangePattern   = regexp.MustCompile(`\b(\d{2})\s*(?:-|to|–)\s*(\d{2})\b`)
	ageBetweenPattern = regexp.MustCompile(`\bbetween\s+(\d{2})\s+and\s+(\d{2})\b`)
	ageBelowPattern   = regexp.MustCompile(`\b(?:under|below|less than|younger than)\s+(\d{2})\b`)
	ageAtMostPattern  = regexp.MustCompile(`\b(?:upto|up to|at most|max(?:imum)?(?: age)?)\s+(\d{2})\b`)
	ageAbovePattern   = regexp.MustCompile(`\b(?:above|over|older than|more than)\s+(\d{2})\b`)
	ageAtLeastPattern = regexp.MustCompile(`\b(?:at least|atleast|min(?:imum)?(?: age)?)\s+(\d{2})\b|\b(\d{2})\s*\+`)

	nearMePattern      = regexp.MustCompile(`\b(?:near me|nearby|near by|close to me|around me|in my city|my location)\b`)
	nonSmokerPattern   = regexp.MustCompile(`\b(?:non[\s-]?smok(?:er|ing)|(?:does ?n[o']?t|never|no|not(?: a)?)\s+smok(?:e|es|er|ing))\b`)
	nonDrinkerPattern  = regexp.MustCompile(`\b(?:non[\s-]?(?:drinker|drinking|alcoholic)|teetotal(?:er|ler)?|(?:does ?n[o']?t|never|no|not(?: a)?)\s+drink(?:s|er|ing)?)\b`)
	gothraAfterPattern = regexp.MustCompile(`\b([a-z]+)\s+go(?:th|t)ra?m?\b`)
	gothraPattern      = regexp.MustCompile(`\bgo(?:th|t)ra?m?\s*[:\-]?\s*([a-z]+)\b`)
)

// Words that can sit next to "gothra" without naming one.
var gothraStopWords = map[string]bool{
	"same": true, "different": true, "any": true, "no": true, "other": true,
	"my": true, "the": true, "a": true, "and": true, "with": true, "of": true, "is": true,
	"not": true, "only": true, "preferred": true, "please": true, "should": true, "must": true, "be": true,
}

// Parser is the deterministic fallback used when no query interpreter is
// configured or the interpreter fails. It is safe for concurrent use.
type Parser struct {
	ref *refdata.ReferenceData
}

// NewParser creates a parser over the given reference data. A nil argument
// selects refdata.Default.
func NewParser(ref *refdata.ReferenceData) *Parser {
	if ref == nil {
		ref = refdata.Default()
	}
	return &Parser{ref: ref}
}

// Parse extracts search filters from free text. Text it does not
// understand is ignored; the result is never nil.
func (p *Parser) Parse(text string) *core.SearchFilters {
	f := &core.SearchFilters{}
	s := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	if strings.TrimSpace(s) == "" {
		return f
	}

	// Numeric spans are consumed in order so later patterns cannot reread them.
	s = p.parseIncome(s, f)
	s = p.parseHeight(s, f)
	s = p.parseAge(s, f)

	if nearMePattern.MatchString(s) {
		f.UseMyLocation = true
	}
	if nonSmokerPattern.MatchString(s) {
		f.Smoking = "No"
	}
	if nonDrinkerPattern.MatchString(s) {
		f.Drinking = "No"
	}

	if v, ok := p.ref.FindProfession(s); ok {
		f.Profession = v
	}
	if v, ok := p.ref.FindCity(s); ok {
		f.Location = v
	}
	if v, ok := p.ref.FindDiet(s); ok {
		f.Diet = v
	}
	if v, ok := p.ref.FindMaritalStatus(s); ok {
		f.MaritalStatus = v
	}
	if v, ok := p.ref.FindReligion(s); ok {
		f.Religion = v
	}
	if v, ok := p.ref.FindCaste(s); ok {
		f.Caste = v
	}
	if v, ok := p.ref.FindEducation(s); ok {
		f.Education = v
	}
	if v, ok := p.ref.FindFamilyValues(s); ok {
		f.FamilyValues = v
	}
	f.Gothra = findGothra(s)
	f.Interests = p.ref.FindInterests(s)
	f.Appearance = p.ref.FindAppearance(s)

	return f
}

func (p *Parser) parseIncome(s string, f *core.SearchFilters) string {
	if m := incomeCrorePattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MinIncome = int64(v * crore)
		}
		return incomeCrorePattern.ReplaceAllString(s, " ")
	}
	if m := incomeLakhPattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MinIncome = int64(v * lakh)
		}
		return incomeLakhPattern.ReplaceAllString(s, " ")
	}
	return s
}

func (p *Parser) parseHeight(s string, f *core.SearchFilters) string {
	if m := heightRangePattern.FindStringSubmatch(s); m != nil {
		lo, okLo := core.ParseHeightInches(m[1])
		hi, okHi := core.ParseHeightInches(m[2])
		if okLo && okHi {
			f.MinHeightInches, f.MaxHeightInches = min(lo, hi), max(lo, hi)
		}
		return heightRangePattern.ReplaceAllString(s, " ")
	}
	for _, re := range []*regexp.Regexp{heightPlusPattern, heightMinPattern} {
		if m := re.FindStringSubmatch(s); m != nil {
			if h, ok := core.ParseHeightInches(m[1]); ok {
				f.MinHeightInches = h
			}
			s = re.ReplaceAllString(s, " ")
			break
		}
	}
	if m := heightMaxPattern.FindStringSubmatch(s); m != nil {
		if h, ok := core.ParseHeightInches(m[1]); ok {
			f.MaxHeightInches = h
		}
		s = heightMaxPattern.ReplaceAllString(s, " ")
	}
	return s
}

func (p *Parser) parseAge(s string, f *core.SearchFilters) string {
	for _, re := range []*regexp.Regexp{ageBetweenPattern, ageRangePattern} {
		if m := re.FindStringSubmatch(s); m != nil {
			lo, okLo := age(m[1])
			hi, okHi := age(m[2])
			if okLo && okHi {
				f.MinAge, f.MaxAge = min(lo, hi), max(lo, hi)
				return re.ReplaceAllString(s, " ")
			}
		}
	}

	if m := ageBelowPattern.FindStringSubmatch(s); m != nil {
		if n, ok := age(m[1]); ok {
			f.MaxAge = n - 1
		}
	} else if m := ageAtMostPattern.FindStringSubmatch(s); m != nil {
		if n, ok := age(m[1]); ok {
			f.MaxAge = n
		}
	}

	if m := ageAbovePattern.FindStringSubmatch(s); m != nil {
		if n, ok := age(m[1]); ok {
			f.MinAge = n + 1
		}
	} else if m := ageAtLeastPattern.FindStringSubmatch(s); m != nil {
		if n, ok := age(m[1] + m[2]); ok {
			f.MinAge = n
		}
	}
	return s
}

func age(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < minAge || n > maxAge {
		return 0, false
	}
	return n, true
}

func findGothra(s string) string {
	for _, re := range []*regexp.Regexp{gothraAfterPattern, gothraPattern} {
		for _, m := range re.FindAllStringSubmatch(s, -1) {
			if !gothraStopWords[m[1]] && !strings.HasPrefix(m[1], "got") {
				return m[1]
			}
		}
	}
	return ""
}
