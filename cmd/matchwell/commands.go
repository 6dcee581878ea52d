package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/poiesic/matchwell/astro"
	"github.com/poiesic/matchwell/backfill"
	"github.com/poiesic/matchwell/core"
	"github.com/urfave/cli/v2"
)

func seedCommand(c *cli.Context) error {
	var profiles []*core.Profile
	if path := c.String("file"); path != "" {
		var err error
		profiles, err = loadProfiles(path)
		if err != nil {
			return err
		}
	} else {
		count := c.Int("count")
		if count <= 0 {
			return errors.New("count must be greater than 0")
		}
		profiles = generateProfiles(count, c.Uint64("seed"))
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.Profiles().AddProfiles(c.Context, profiles...)
	if err != nil {
		return fmt.Errorf("failed to store profiles: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Seeded %d profiles (IDs %d-%d)\n", len(added), added[0].Id, added[len(added)-1].Id)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := c.Args().First()
	filters := &core.SearchFilters{
		Profession: c.String("profession"),
		Location:   c.String("location"),
		MinAge:     c.Int("min-age"),
		MaxAge:     c.Int("max-age"),
	}
	if query == "" && filters.IsEmpty() {
		return errors.New("a query or at least one filter flag is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Release()

	seeker := core.ID(c.Uint64("seeker"))
	if !filters.IsEmpty() {
		result, err := engine.SearchWithFilters(c.Context, seeker, filters, query, c.Int("limit"))
		if err != nil {
			return err
		}
		return printSearch(c, result)
	}

	result, err := engine.Search(c.Context, seeker, query, c.Int("limit"))
	if err != nil {
		return err
	}
	return printSearch(c, result)
}

func recommendCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Release()

	recs, err := engine.Recommend(c.Context, core.ID(c.Uint64("seeker")), c.Int("limit"))
	if err != nil {
		return err
	}
	return printCandidates(c, recs)
}

func kundliCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("kundli takes exactly two birth stars")
	}
	a, b := c.Args().Get(0), c.Args().Get(1)
	for _, star := range []string{a, b} {
		if _, ok := astro.Resolve(star); !ok {
			return fmt.Errorf("unknown nakshatra %q", star)
		}
	}
	return printKundli(c, astro.Compatibility(a, b))
}

func backfillCommand(c *cli.Context) error {
	config := &backfill.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Force:          c.Bool("force"),
	}
	if config.BatchSize <= 0 {
		return errors.New("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return errors.New("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return errors.New("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	b, err := db.NewBackfiller(config, c.App.ErrWriter)
	if err != nil {
		return err
	}
	if _, err := b.Run(c.Context); err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}
	return nil
}

func pingCommand(c *cli.Context) error {
	ids, err := parseIDs(c.Args().Slice())
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, id := range ids {
		if err := db.Presence().MarkOnline(c.Context, id); err != nil {
			return fmt.Errorf("ping %d: %w", id, err)
		}
	}
	fmt.Fprintf(c.App.Writer, "Marked %d profiles online\n", len(ids))
	return nil
}

func dismissCommand(c *cli.Context) error {
	ids, err := parseIDs(c.Args().Slice())
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	seeker := core.ID(c.Uint64("seeker"))
	for _, id := range ids {
		if err := db.Dismissals().Dismiss(c.Context, seeker, id); err != nil {
			return fmt.Errorf("dismiss %d: %w", id, err)
		}
	}
	fmt.Fprintf(c.App.Writer, "Dismissed %d candidates for seeker %d\n", len(ids), seeker)
	return nil
}

// parseIDs parses at least one positional profile ID.
func parseIDs(args []string) ([]core.ID, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one profile ID is required")
	}
	ids := make([]core.ID, len(args))
	for i, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid profile ID %q", arg)
		}
		ids[i] = core.ID(n)
	}
	return ids, nil
}
