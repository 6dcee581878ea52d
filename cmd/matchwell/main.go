// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/poiesic/matchwell"
	"github.com/poiesic/matchwell/ai"
	"github.com/poiesic/matchwell/match"
	"github.com/poiesic/matchwell/refdata"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "matchwell",
		Usage: "Candidate matching and ranking for matchmaking profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./matchwell_db",
				EnvVars: []string{"MATCHWELL_DB"},
			},
			&cli.StringFlag{
				Name:    "postgres",
				Usage:   "PostgreSQL connection string; overrides --db when set",
				EnvVars: []string{"MATCHWELL_POSTGRES_DSN"},
			},
			&cli.StringFlag{
				Name:  "refdata",
				Usage: "YAML file replacing the built-in reference tables",
			},
			&cli.BoolFlag{
				Name:  "no-ai",
				Usage: "Run without an AI provider (local query parser, no re-ranking)",
			},
			&cli.StringFlag{
				Name:    "ai-config",
				Usage:   "YAML file with AI hosts, models and credentials",
				EnvVars: []string{"MATCHWELL_AI_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "ai-api-key",
				Usage:   "Bearer token for hosted OpenAI-compatible services",
				EnvVars: []string{"MATCHWELL_AI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   ai.DefaultHost,
				EnvVars: []string{"MATCHWELL_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL (defaults to --ai-host)",
				EnvVars: []string{"MATCHWELL_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   ai.DefaultEmbeddingModel,
				EnvVars: []string{"MATCHWELL_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "classifier-model",
				Usage:   "Chat model used for sentiment and query interpretation",
				Value:   ai.DefaultClassifierModel,
				EnvVars: []string{"MATCHWELL_CLASSIFIER_MODEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "seed",
				Usage:     "Load profiles from a file or generate synthetic ones",
				Action:    seedCommand,
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "YAML or JSON file holding a list of profiles",
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of synthetic profiles to generate when no file is given",
						Value: 100,
					},
					&cli.Uint64Flag{
						Name:  "seed",
						Usage: "Random seed for synthetic profiles",
						Value: 1,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search candidates for a seeker with a free-text query",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: append(resultFlags(match.DefaultSearchLimit),
					&cli.StringFlag{Name: "profession", Usage: "Structured filter: profession"},
					&cli.StringFlag{Name: "location", Usage: "Structured filter: city, district or state"},
					&cli.IntFlag{Name: "min-age", Usage: "Structured filter: minimum age"},
					&cli.IntFlag{Name: "max-age", Usage: "Structured filter: maximum age"},
				),
			},
			{
				Name:      "recommend",
				Usage:     "Recommend candidates for a seeker",
				Action:    recommendCommand,
				ArgsUsage: " ",
				Flags:     resultFlags(match.DefaultRecommendationLimit),
			},
			{
				Name:      "kundli",
				Usage:     "Score the astrological compatibility of two birth stars",
				Action:    kundliCommand,
				ArgsUsage: "<nakshatra> <nakshatra>",
			},
			{
				Name:   "backfill",
				Usage:  "Compute bio embeddings for stored profiles",
				Action: backfillCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of profiles to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N profiles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per embedding call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Recompute vectors that are already current",
					},
				},
			},
			{
				Name:      "ping",
				Usage:     "Mark profiles as online now",
				Action:    pingCommand,
				ArgsUsage: "<id>...",
			},
			{
				Name:      "dismiss",
				Usage:     "Hide candidates from a seeker's recommendations",
				Action:    dismissCommand,
				ArgsUsage: "<candidate-id>...",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "seeker",
						Aliases:  []string{"s"},
						Usage:    "Seeker profile ID",
						Required: true,
					},
				},
			},
		},
	}
}

// resultFlags are shared by commands that print ranked candidates.
func resultFlags(defaultLimit int) []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:     "seeker",
			Aliases:  []string{"s"},
			Usage:    "Seeker profile ID",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of candidates to return",
			Value: defaultLimit,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print results as JSON",
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// aiConfig builds the provider configuration. An --ai-config file replaces
// the defaults, and flags given explicitly override both.
func aiConfig(c *cli.Context) (*ai.Config, error) {
	var opts []ai.ConfigOption
	path := c.String("ai-config")
	fromFlag := func(name string, opt func(string) ai.ConfigOption) {
		if path == "" || c.IsSet(name) {
			opts = append(opts, opt(c.String(name)))
		}
	}
	fromFlag("ai-host", ai.WithHost)
	fromFlag("embedding-model", ai.WithEmbeddingModel)
	fromFlag("classifier-model", ai.WithClassifierModel)
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if key := c.String("ai-api-key"); key != "" {
		opts = append(opts, ai.WithAPIKey(key))
	}

	if path != "" {
		return ai.LoadConfig(path, opts...)
	}
	return ai.NewConfig(opts...), nil
}

// openDatabase opens the store selected by the global flags.
func openDatabase(c *cli.Context) (*matchwell.Database, error) {
	opts := []matchwell.DatabaseOption{matchwell.WithLogger(slog.Default())}

	if path := c.String("refdata"); path != "" {
		ref, err := refdata.Load(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, matchwell.WithReferenceData(ref))
	}

	if c.Bool("no-ai") {
		opts = append(opts, matchwell.WithoutAI())
	} else {
		cfg, err := aiConfig(c)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, matchwell.WithAIConfig(cfg))
	}

	if dsn := c.String("postgres"); dsn != "" {
		db, err := matchwell.NewPostgresDatabase(c.Context, dsn, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	}

	db, err := matchwell.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
