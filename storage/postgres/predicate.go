package postgres

import (
	"fmt"
	"strings"

	"github.com/poiesic/matchwell/storage"
)

// fieldPaths maps predicate fields to JSONB text extraction expressions.
var fieldPaths = map[storage.Field]string{
	storage.FieldProfession:     `metadata->'career'->>'profession'`,
	storage.FieldCity:           `metadata->'location'->>'city'`,
	storage.FieldDistrict:       `metadata->'location'->>'district'`,
	storage.FieldState:          `metadata->'location'->>'state'`,
	storage.FieldAddress:        `metadata->'location'->>'address'`,
	storage.FieldReligion:       `metadata->'religion'->>'religion'`,
	storage.FieldCaste:          `metadata->'religion'->>'caste'`,
	storage.FieldGothra:         `metadata->'religion'->>'gothra'`,
	storage.FieldSmoking:        `metadata->'lifestyle'->>'smoking'`,
	storage.FieldDrinking:       `metadata->'lifestyle'->>'drinking'`,
	storage.FieldDiet:           `metadata->'lifestyle'->>'diet'`,
	storage.FieldEducationLevel: `metadata->'career'->'education'->>'level'`,
	storage.FieldInstitution:    `metadata->'career'->'education'->>'institution'`,
	storage.FieldMaritalStatus:  `metadata->>'marital_status'`,
	storage.FieldFamilyValues:   `metadata->>'family_values'`,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// queryBuilder accumulates positional arguments while clauses compile.
type queryBuilder struct {
	args []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// compilePredicate turns pred into a WHERE expression and its arguments.
// Argument numbering starts at $1.
func compilePredicate(pred storage.Predicate) (string, []any, error) {
	b := &queryBuilder{}
	where, err := b.conjunction(pred.Clauses)
	if err != nil {
		return "", nil, err
	}
	return where, b.args, nil
}

func (b *queryBuilder) conjunction(clauses []storage.Clause) (string, error) {
	if len(clauses) == 0 {
		return "TRUE", nil
	}
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		sql, err := b.clause(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return strings.Join(parts, " AND "), nil
}

func (b *queryBuilder) clause(c storage.Clause) (string, error) {
	switch c := c.(type) {
	case storage.IDNot:
		return "id <> " + b.arg(int64(c.ID)), nil

	case storage.GenderIs:
		return "gender = " + b.arg(string(c.Gender)), nil

	case storage.AgeRange:
		var parts []string
		if c.Min > 0 {
			parts = append(parts, "age >= "+b.arg(c.Min))
		}
		if c.Max > 0 {
			parts = append(parts, "age <= "+b.arg(c.Max))
		}
		if len(parts) == 0 {
			return "TRUE", nil
		}
		return "(" + strings.Join(parts, " AND ") + ")", nil

	case storage.ContainsAny:
		var parts []string
		for _, f := range c.Fields {
			path, err := fieldPath(f)
			if err != nil {
				return "", err
			}
			for _, term := range c.Terms {
				term = strings.TrimSpace(term)
				if term == "" {
					continue
				}
				parts = append(parts, fmt.Sprintf("COALESCE(%s, '') ILIKE %s", path, b.arg("%"+likeEscaper.Replace(term)+"%")))
			}
		}
		if len(parts) == 0 {
			return "FALSE", nil
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil

	case storage.EqualsFold:
		path, err := fieldPath(c.Field)
		if err != nil {
			return "", err
		}
		value := strings.ToLower(strings.TrimSpace(c.Value))
		return fmt.Sprintf("LOWER(TRIM(COALESCE(%s, ''))) = %s", path, b.arg(value)), nil

	case storage.AnyOf:
		if len(c.Clauses) == 0 {
			return "TRUE", nil
		}
		parts := make([]string, 0, len(c.Clauses))
		for _, inner := range c.Clauses {
			sql, err := b.clause(inner)
			if err != nil {
				return "", err
			}
			parts = append(parts, sql)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}
	return "", fmt.Errorf("%w: unsupported clause %T", storage.ErrInvalidQuery, c)
}

func fieldPath(f storage.Field) (string, error) {
	path, ok := fieldPaths[f]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %s", storage.ErrInvalidQuery, f)
	}
	return path, nil
}
