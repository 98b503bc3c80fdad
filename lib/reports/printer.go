package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"

	"github.com/pescuma/dailyloc/lib/model"
)

const unknown = "unknown"

func PrintDaily(w io.Writer, records []*model.DailyRecord) {
	total := model.Stats{}

	for _, r := range records {
		fmt.Fprintf(w, "date: %v\n", r.DayText())
		fmt.Fprintf(w, "  additions: %v\n", r.Additions)
		fmt.Fprintf(w, "  deletions: %v\n", r.Deletions)
		fmt.Fprintf(w, "  net: %v\n", r.Net())
		fmt.Fprintf(w, "  commits: %v\n", r.Commits)

		total.Add(r.Stats())
	}

	if len(records) == 0 {
		fmt.Fprintf(w, "No days processed yet\n")
		return
	}

	fmt.Fprintf(w, "\n%v from %v to %v: +%v / -%v (net %v) in %v\n",
		pluralize.NewClient().Pluralize("day", len(records), true),
		records[0].DayText(), records[len(records)-1].DayText(),
		humanize.Comma(int64(total.Additions)), humanize.Comma(int64(total.Deletions)),
		humanize.Comma(int64(total.Net())),
		pluralize.NewClient().Pluralize("commit", total.Commits, true))
}

func PrintRepositories(w io.Writer, summary *RepositoriesSummary) {
	fmt.Fprintf(w, "=== Per-repo summary (author-filtered) ===\n")

	for _, r := range summary.Repositories {
		fmt.Fprintf(w, "\nrepo: %v\n", r.Name)
		fmt.Fprintf(w, "  path: %v\n", r.Path)
		fmt.Fprintf(w, "  url: %v\n", orUnknown(r.URL))
		fmt.Fprintf(w, "  created: %v\n", formatCreated(r.Created))
		fmt.Fprintf(w, "  commits: %v\n", r.Commits)
		fmt.Fprintf(w, "  additions: %v\n", r.Additions)
		fmt.Fprintf(w, "  deletions: %v\n", r.Deletions)
		fmt.Fprintf(w, "  net: %v\n", r.Net())
		if r.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", r.Err)
		}
	}

	if len(summary.WithoutURL) > 0 {
		fmt.Fprintf(w, "\n=== Repositories without remote url ===\n")
		for _, r := range summary.WithoutURL {
			fmt.Fprintf(w, "%v (%v)\n", r.Name, r.Path)
		}
	}

	if len(summary.Skipped) > 0 {
		fmt.Fprintf(w, "\n=== Skipped (not a git repository) ===\n")
		for _, p := range summary.Skipped {
			fmt.Fprintf(w, "%v\n", p)
		}
	}

	fmt.Fprintf(w, "\n=== Total ===\n")
	fmt.Fprintf(w, "  repositories: %v\n", len(summary.Repositories))
	fmt.Fprintf(w, "  commits: %v\n", humanize.Comma(int64(summary.Total.Commits)))
	fmt.Fprintf(w, "  additions: %v\n", humanize.Comma(int64(summary.Total.Additions)))
	fmt.Fprintf(w, "  deletions: %v\n", humanize.Comma(int64(summary.Total.Deletions)))
	fmt.Fprintf(w, "  net: %v\n", humanize.Comma(int64(summary.Total.Net())))
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

func formatCreated(t *time.Time) string {
	if t == nil {
		return unknown
	}

	return fmt.Sprintf("%v (%v)", t.Format(time.RFC3339), humanize.Time(*t))
}
