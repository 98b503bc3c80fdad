package reports

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pescuma/dailyloc/lib/authors"
	"github.com/pescuma/dailyloc/lib/consoles"
	"github.com/pescuma/dailyloc/lib/gitstats"
	"github.com/pescuma/dailyloc/lib/importers/daily"
	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/repos"
	"github.com/pescuma/dailyloc/lib/utils"
)

type RepositorySummary struct {
	Name    string
	Path    string
	URL     string
	Created *time.Time
	model.Stats

	// Err is set when a git query failed. Stats hold what was read before it.
	Err error
}

type RepositoriesSummary struct {
	Repositories []*RepositorySummary
	Total        model.Stats
	WithoutURL   []*RepositorySummary
	Skipped      []string
}

type Summarizer struct {
	console   consoles.Console
	extractor daily.StatsExtractor
	inspector gitstats.Inspector

	// ShowProgress controls the progress bar on stderr.
	ShowProgress bool
}

func NewSummarizer(console consoles.Console, extractor daily.StatsExtractor, inspector gitstats.Inspector) *Summarizer {
	return &Summarizer{
		console:      console,
		extractor:    extractor,
		inspector:    inspector,
		ShowProgress: true,
	}
}

// Summarize computes all time totals per repository. Paths that are no longer
// git repositories are skipped.
func (s *Summarizer) Summarize(ctx context.Context, paths []string, matcher *authors.Matcher) (*RepositoriesSummary, error) {
	result := &RepositoriesSummary{}

	out := utils.IIf[io.Writer](s.ShowProgress, os.Stderr, io.Discard)
	bar := utils.NewProgressBarTo(out, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := filepath.Base(path)
		bar.Describe(name)

		if !repos.IsRepository(path) {
			s.console.Printf("%v: not a git repository anymore, skipping\n", path)
			result.Skipped = append(result.Skipped, path)
		} else {
			rs := s.summarize(ctx, name, path, matcher)

			result.Repositories = append(result.Repositories, rs)
			result.Total.Add(rs.Stats)
			if rs.URL == "" {
				result.WithoutURL = append(result.WithoutURL, rs)
			}
		}

		_ = bar.Add(1)
	}

	_ = bar.Finish()

	return result, nil
}

func (s *Summarizer) summarize(ctx context.Context, name string, path string, matcher *authors.Matcher) *RepositorySummary {
	result := &RepositorySummary{
		Name: name,
		Path: path,
	}

	url, err := s.inspector.RemoteURL(path)
	if err != nil {
		s.console.Printf("%v: error reading remote url: %v\n", name, err)
	}
	result.URL = url

	created, err := s.inspector.FirstCommit(path)
	if err != nil {
		s.console.Printf("%v: error reading first commit: %v\n", name, err)
	}
	result.Created = created

	r := s.extractor.Extract(ctx, gitstats.Query{
		Repository:    path,
		AuthorPattern: matcher.Pattern(),
		CountCommits:  true,
	})
	if r.Unreachable() {
		if r.IsEmpty() {
			s.console.Printf("%v: unreachable, counting as zero: %v\n", name, r.Err)
		} else {
			s.console.Printf("%v: commit count failed, keeping +%v / -%v: %v\n", name, r.Additions, r.Deletions, r.Err)
		}
		result.Err = r.Err
	}
	result.Stats = r.Stats

	return result
}
