package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/poiesic/matchwell/core"
	"github.com/poiesic/matchwell/match"
	"github.com/urfave/cli/v2"
)

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSearch(c *cli.Context, result *match.SearchResult) error {
	if c.Bool("json") {
		return printJSON(c, result)
	}
	if result.UsedRelaxed {
		fmt.Fprintln(c.App.Writer, "Few exact matches; broader matches included.")
	}
	return printCandidates(c, result.Candidates)
}

func printCandidates(c *cli.Context, candidates []*core.ScoredCandidate) error {
	if c.Bool("json") {
		return printJSON(c, candidates)
	}
	if len(candidates) == 0 {
		fmt.Fprintln(c.App.Writer, "No candidates found.")
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tCITY\tPROFESSION\tSCORE\tKUNDLI\tONLINE\tREASONS")
	for _, cand := range candidates {
		p := &cand.Profile
		online := ""
		if cand.Online {
			online = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%d\t%d/%d\t%s\t%s\n",
			p.Id, p.Name, p.Age, p.Metadata.Location.City, p.Metadata.Career.Profession,
			cand.Score, cand.Kundli.Score, cand.Kundli.Total, online, strings.Join(cand.Reasons, ", "))
	}
	return w.Flush()
}

func printKundli(c *cli.Context, result core.KundliResult) error {
	if c.Bool("json") {
		return printJSON(c, result)
	}
	fmt.Fprintf(c.App.Writer, "Score: %d/%d\n", result.Score, result.Total)

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, d := range result.Details {
		values := ""
		if d.Value1 != "" || d.Value2 != "" {
			values = d.Value1 + " / " + d.Value2
		}
		fmt.Fprintf(w, "  %s\t%d/%d\t%s\n", d.Name, d.Score, d.Total, values)
	}
	return w.Flush()
}
