package daily

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gertd/go-pluralize"

	"github.com/pescuma/dailyloc/lib/authors"
	"github.com/pescuma/dailyloc/lib/consoles"
	"github.com/pescuma/dailyloc/lib/gitstats"
	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/storages"
)

type StatsExtractor interface {
	Extract(ctx context.Context, q gitstats.Query) gitstats.Result
}

type Importer struct {
	console   consoles.Console
	storage   storages.Storage
	extractor StatsExtractor

	now func() time.Time
}

type Options struct {
	Repositories []string
	Authors      *authors.Matcher
	StartDate    func() (time.Time, error)
	CountCommits bool

	// Today is the last day to process. Zero means the current day when Import starts.
	Today time.Time
}

type Summary struct {
	Days        int
	First       *time.Time
	Last        *time.Time
	Total       model.Stats
	Unreachable int
}

func NewImporter(console consoles.Console, storage storages.Storage, extractor StatsExtractor) *Importer {
	return &Importer{
		console:   console,
		storage:   storage,
		extractor: extractor,
		now:       time.Now,
	}
}

func (i *Importer) Import(ctx context.Context, opts *Options) (*Summary, error) {
	today := opts.Today
	if today.IsZero() {
		today = i.now()
	}
	today = model.DayOf(today)

	start, err := ResumeDay(i.storage, opts.StartDate)
	if err != nil {
		return nil, err
	}

	result := &Summary{}

	if start.After(today) {
		i.console.Printf("Up to date: last processed day is %v\n", model.FormatDay(start.AddDate(0, 0, -1)))
		return result, nil
	}

	pc := pluralize.NewClient()
	i.console.Printf("Processing %v from %v to %v in %v...\n",
		pc.Pluralize("day", countDays(start, today), true),
		model.FormatDay(start), model.FormatDay(today),
		pc.Pluralize("repository", len(opts.Repositories), true))

	for day := start; !day.After(today); day = model.NextDay(day) {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		stats, unreachable := i.processDay(ctx, day, opts)

		err = i.storage.WriteDailyRecord(model.NewDailyRecord(day, stats, i.now()))
		if err != nil {
			return result, err
		}

		if unreachable > 0 {
			i.console.Printf("%v → +%v / -%v | commits %v | %v unreachable\n",
				model.FormatDay(day), stats.Additions, stats.Deletions, stats.Commits, unreachable)
		} else {
			i.console.Printf("%v → +%v / -%v | commits %v\n",
				model.FormatDay(day), stats.Additions, stats.Deletions, stats.Commits)
		}

		processed := day
		if result.First == nil {
			result.First = &processed
		}
		result.Last = &processed
		result.Days++
		result.Total.Add(stats)
		result.Unreachable += unreachable
	}

	return result, nil
}

func (i *Importer) processDay(ctx context.Context, day time.Time, opts *Options) (model.Stats, int) {
	stats := model.Stats{}
	unreachable := 0

	for _, repo := range opts.Repositories {
		r := i.extractor.Extract(ctx, gitstats.Query{
			Repository:    repo,
			AuthorPattern: opts.Authors.Pattern(),
			Day:           &day,
			CountCommits:  opts.CountCommits,
		})

		if r.Unreachable() {
			logFailure(i.console, filepath.Base(repo), r)
			unreachable++
		}

		stats.Add(r.Stats)
	}

	return stats, unreachable
}

func logFailure(console consoles.Console, name string, r gitstats.Result) {
	if r.IsEmpty() {
		console.Printf("%v: unreachable, counting as zero: %v\n", name, r.Err)
	} else {
		console.Printf("%v: commit count failed, keeping +%v / -%v: %v\n", name, r.Additions, r.Deletions, r.Err)
	}
}

func countDays(from, to time.Time) int {
	result := 0
	for d := model.DayOf(from); !d.After(to); d = model.NextDay(d) {
		result++
	}
	return result
}
