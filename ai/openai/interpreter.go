package openai

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/core"
)

// QueryInterpreter implements ai.QueryInterpreter with a chat model in JSON mode.
type QueryInterpreter struct {
	chat   *chatJSON
	prompt string
	logger *slog.Logger
}

// interpretation is the wire shape requested from the model.
type interpretation struct {
	Profession    string   `json:"profession"`
	MinIncome     flexInt  `json:"min_income"`
	Location      string   `json:"location"`
	MinAge        flexInt  `json:"min_age"`
	MaxAge        flexInt  `json:"max_age"`
	MaritalStatus string   `json:"marital_status"`
	MinHeight     string   `json:"min_height"`
	MaxHeight     string   `json:"max_height"`
	Smoking       string   `json:"smoking"`
	Drinking      string   `json:"drinking"`
	Diet          string   `json:"diet"`
	Religion      string   `json:"religion"`
	Caste         string   `json:"caste"`
	Gothra        string   `json:"gothra"`
	Education     string   `json:"education"`
	FamilyValues  string   `json:"family_values"`
	Appearance    []string `json:"appearance"`
	Interests     []string `json:"interests"`
	UseMyLocation bool     `json:"use_my_location"`
}

// flexInt accepts integers, floats, numeric strings and null.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func newQueryInterpreter(config *ai.Config) (*QueryInterpreter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("component", "openai-interpreter")
	return &QueryInterpreter{
		chat:   &chatJSON{client: client, maxAttempts: config.MaxAttempts, logger: logger},
		prompt: buildInterpretationPrompt(),
		logger: logger,
	}, nil
}

// NewQueryInterpreter creates a query interpreter using the provided configuration.
//
// Returns ai.QueryInterpreter interface to enforce abstraction.
func NewQueryInterpreter(config *ai.Config) (ai.QueryInterpreter, error) {
	return newQueryInterpreter(config)
}

// Interpret asks the model for structured filters describing text.
func (q *QueryInterpreter) Interpret(ctx context.Context, text string) (*core.SearchFilters, error) {
	if strings.TrimSpace(text) == "" {
		return &core.SearchFilters{}, nil
	}

	var resp interpretation
	if err := q.chat.complete(ctx, q.prompt, text, &resp); err != nil {
		return nil, err
	}

	filters := resp.toFilters()
	q.logger.Debug("interpreted query", "query", text, "empty", filters.IsEmpty())
	return filters, nil
}

func (r *interpretation) toFilters() *core.SearchFilters {
	f := &core.SearchFilters{
		Profession:    strings.TrimSpace(r.Profession),
		MinIncome:     int64(max(r.MinIncome, 0)),
		Location:      strings.TrimSpace(r.Location),
		MinAge:        int(max(r.MinAge, 0)),
		MaxAge:        int(max(r.MaxAge, 0)),
		MaritalStatus: strings.TrimSpace(r.MaritalStatus),
		Smoking:       normalizeHabit(r.Smoking),
		Drinking:      normalizeHabit(r.Drinking),
		Diet:          strings.TrimSpace(r.Diet),
		Religion:      strings.TrimSpace(r.Religion),
		Caste:         strings.TrimSpace(r.Caste),
		Gothra:        strings.TrimSpace(r.Gothra),
		Education:     strings.TrimSpace(r.Education),
		FamilyValues:  strings.TrimSpace(r.FamilyValues),
		Appearance:    cleanKeywords(r.Appearance),
		Interests:     cleanKeywords(r.Interests),
		UseMyLocation: r.UseMyLocation,
	}
	if h, ok := core.ParseHeightInches(r.MinHeight); ok {
		f.MinHeightInches = h
	}
	if h, ok := core.ParseHeightInches(r.MaxHeight); ok {
		f.MaxHeightInches = h
	}
	return f
}

// normalizeHabit folds the many ways a model says "no" into "No".
func normalizeHabit(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ""
	case "no", "never", "none", "false", "non-smoker", "non smoker", "non-drinker", "non drinker", "teetotaler":
		return "No"
	case "yes", "true":
		return "Yes"
	}
	return strings.TrimSpace(s)
}

func cleanKeywords(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
