package main

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/workspace"
)

type IndexCmd struct {
	CountCommits bool   `help:"Also count the commits of each day. Needs one more git call per repository and day."`
	Today        string `help:"Last day to process, as YYYY-MM-DD. Default is today."`
}

func (c *IndexCmd) Run(ctx *appContext) error {
	today, err := parseOptionalDay(c.Today)
	if err != nil {
		return err
	}

	opts := &workspace.IndexOptions{
		CountCommits: c.CountCommits,
	}
	if today != nil {
		opts.Today = *today
	}

	summary, err := ctx.ws.Index(ctx.ctx, opts)
	if err != nil {
		return err
	}

	if summary.Days > 0 {
		ctx.ws.Console().Printf("Done: %v to %v, +%v / -%v\n",
			model.FormatDay(*summary.First), model.FormatDay(*summary.Last),
			humanize.Comma(int64(summary.Total.Additions)), humanize.Comma(int64(summary.Total.Deletions)))
	}

	return nil
}

func parseOptionalDay(text string) (*time.Time, error) {
	if text == "" {
		return nil, nil
	}

	day, err := model.ParseDay(text)
	if err != nil {
		return nil, err
	}

	return &day, nil
}
