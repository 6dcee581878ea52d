package storage

import (
	"fmt"
	"strings"

	"github.com/poiesic/matchwell/core"
)

// Field names a profile attribute that predicates can test.
type Field int

const (
	FieldProfession Field = iota + 1
	FieldCity
	FieldDistrict
	FieldState
	FieldAddress
	FieldReligion
	FieldCaste
	FieldGothra
	FieldSmoking
	FieldDrinking
	FieldDiet
	FieldEducationLevel
	FieldInstitution
	FieldMaritalStatus
	FieldFamilyValues
)

var fieldNames = map[Field]string{
	FieldProfession:     "profession",
	FieldCity:           "city",
	FieldDistrict:       "district",
	FieldState:          "state",
	FieldAddress:        "address",
	FieldReligion:       "religion",
	FieldCaste:          "caste",
	FieldGothra:         "gothra",
	FieldSmoking:        "smoking",
	FieldDrinking:       "drinking",
	FieldDiet:           "diet",
	FieldEducationLevel: "education_level",
	FieldInstitution:    "institution",
	FieldMaritalStatus:  "marital_status",
	FieldFamilyValues:   "family_values",
}

// LocationFields are the fields a location filter is matched against.
var LocationFields = []Field{FieldCity, FieldDistrict, FieldState, FieldAddress}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Value returns the attribute of p named by f.
func (f Field) Value(p *core.Profile) string {
	m := &p.Metadata
	switch f {
	case FieldProfession:
		return m.Career.Profession
	case FieldCity:
		return m.Location.City
	case FieldDistrict:
		return m.Location.District
	case FieldState:
		return m.Location.State
	case FieldAddress:
		return m.Location.Address
	case FieldReligion:
		return m.Religion.Religion
	case FieldCaste:
		return m.Religion.Caste
	case FieldGothra:
		return m.Religion.Gothra
	case FieldSmoking:
		return m.Lifestyle.Smoking
	case FieldDrinking:
		return m.Lifestyle.Drinking
	case FieldDiet:
		return m.Lifestyle.Diet
	case FieldEducationLevel:
		return m.Career.Education.Level
	case FieldInstitution:
		return m.Career.Education.Institution
	case FieldMaritalStatus:
		return m.MaritalStatus
	case FieldFamilyValues:
		return m.FamilyValues
	}
	return ""
}

// Clause is one typed condition of a Predicate. Backends either evaluate
// clauses in process with Matches or translate them into their own query
// language.
type Clause interface {
	Matches(p *core.Profile) bool
	String() string
}

// IDNot excludes a single profile.
type IDNot struct{ ID core.ID }

func (c IDNot) Matches(p *core.Profile) bool { return p.Id != c.ID }
func (c IDNot) String() string               { return fmt.Sprintf("id != %d", c.ID) }

// GenderIs restricts profiles to one gender.
type GenderIs struct{ Gender core.Gender }

func (c GenderIs) Matches(p *core.Profile) bool { return p.Gender == c.Gender }
func (c GenderIs) String() string               { return fmt.Sprintf("gender = %s", c.Gender) }

// AgeRange bounds age inclusively. A zero bound is open.
type AgeRange struct{ Min, Max int }

func (c AgeRange) Matches(p *core.Profile) bool {
	if c.Min > 0 && p.Age < c.Min {
		return false
	}
	if c.Max > 0 && p.Age > c.Max {
		return false
	}
	return true
}

func (c AgeRange) String() string {
	switch {
	case c.Min > 0 && c.Max > 0:
		return fmt.Sprintf("age BETWEEN %d AND %d", c.Min, c.Max)
	case c.Min > 0:
		return fmt.Sprintf("age >= %d", c.Min)
	case c.Max > 0:
		return fmt.Sprintf("age <= %d", c.Max)
	}
	return "TRUE"
}

// ContainsAny matches when any of Fields contains any of Terms as a
// case-insensitive substring. No terms matches nothing.
type ContainsAny struct {
	Fields []Field
	Terms  []string
}

func (c ContainsAny) Matches(p *core.Profile) bool {
	for _, f := range c.Fields {
		v := strings.ToLower(f.Value(p))
		if v == "" {
			continue
		}
		for _, t := range c.Terms {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" && strings.Contains(v, t) {
				return true
			}
		}
	}
	return false
}

func (c ContainsAny) String() string {
	fields := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = f.String()
	}
	return fmt.Sprintf("[%s] CONTAINS ANY %q", strings.Join(fields, ","), c.Terms)
}

// EqualsFold matches a field equal to Value ignoring case and surrounding space.
type EqualsFold struct {
	Field Field
	Value string
}

func (c EqualsFold) Matches(p *core.Profile) bool {
	return strings.EqualFold(strings.TrimSpace(c.Field.Value(p)), strings.TrimSpace(c.Value))
}

func (c EqualsFold) String() string { return fmt.Sprintf("%s =~ %q", c.Field, c.Value) }

// AnyOf is a disjunction. An empty AnyOf matches everything.
type AnyOf struct{ Clauses []Clause }

func (c AnyOf) Matches(p *core.Profile) bool {
	if len(c.Clauses) == 0 {
		return true
	}
	for _, cl := range c.Clauses {
		if cl.Matches(p) {
			return true
		}
	}
	return false
}

func (c AnyOf) String() string {
	if len(c.Clauses) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(c.Clauses))
	for i, cl := range c.Clauses {
		parts[i] = cl.String()
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// Predicate is a conjunction of clauses. The zero value matches everything.
type Predicate struct {
	Clauses []Clause
}

// And builds a predicate from clauses.
func And(clauses ...Clause) Predicate {
	return Predicate{Clauses: clauses}
}

// With returns a new predicate with clauses appended; p is not modified.
func (p Predicate) With(clauses ...Clause) Predicate {
	out := make([]Clause, 0, len(p.Clauses)+len(clauses))
	out = append(out, p.Clauses...)
	out = append(out, clauses...)
	return Predicate{Clauses: out}
}

// Matches reports whether profile satisfies every clause.
func (p Predicate) Matches(profile *core.Profile) bool {
	for _, c := range p.Clauses {
		if !c.Matches(profile) {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	if len(p.Clauses) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(p.Clauses))
	for i, c := range p.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}
