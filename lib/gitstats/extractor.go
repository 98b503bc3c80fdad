package gitstats

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/dailyloc/lib/model"
)

// Query selects the commits of one repository. A nil Day means all time.
type Query struct {
	Repository    string
	AuthorPattern string
	Day           *time.Time
	CountCommits  bool
}

// Result always carries usable (possibly zero) stats. Err is set when a git
// query failed, so a failure can be told apart from a day without commits.
// Stats hold whatever was read before the failure.
type Result struct {
	model.Stats
	Err error
}

func (r Result) Unreachable() bool {
	return r.Err != nil
}

type Extractor struct {
	executor Executor
}

func NewExtractor(executor Executor) *Extractor {
	return &Extractor{
		executor: executor,
	}
}

func (e *Extractor) Extract(ctx context.Context, q Query) Result {
	output, err := e.executor.Run(ctx, q.Repository, logArgs(q)...)
	if err != nil {
		return Result{Err: err}
	}

	result := Result{
		Stats: SumNumstat(output),
	}

	// A failed count keeps the line totals already read, with zero commits
	if q.CountCommits {
		output, err = e.executor.Run(ctx, q.Repository, countArgs(q)...)
		if err != nil {
			result.Err = err
			return result
		}

		commits, err := strconv.Atoi(strings.TrimSpace(output))
		if err != nil {
			result.Err = errors.Wrapf(err, "%v: invalid commit count", q.Repository)
			return result
		}

		result.Commits = commits
	}

	return result
}

func logArgs(q Query) []string {
	args := []string{
		"log",
		"--numstat",
		"--pretty=tformat:",
		"--no-color",
	}
	args = append(args, filterArgs(q)...)
	return args
}

func countArgs(q Query) []string {
	args := []string{
		"rev-list",
		"--count",
	}
	args = append(args, filterArgs(q)...)
	args = append(args, "HEAD")
	return args
}

func filterArgs(q Query) []string {
	args := []string{
		"--author=" + q.AuthorPattern,
		"--extended-regexp",
		"--regexp-ignore-case",
	}

	if q.Day != nil {
		day := model.FormatDay(*q.Day)
		args = append(args,
			"--since="+day+" 00:00:00",
			"--until="+day+" 23:59:59",
		)
	}

	return args
}
