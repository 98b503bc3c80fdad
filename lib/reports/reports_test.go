package reports

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/dailyloc/lib/authors"
	"github.com/pescuma/dailyloc/lib/consoles"
	"github.com/pescuma/dailyloc/lib/gitstats"
	"github.com/pescuma/dailyloc/lib/model"
)

type fakeExtractor struct {
	stats   map[string]model.Stats
	failing map[string]bool
	queries []gitstats.Query
}

func (f *fakeExtractor) Extract(_ context.Context, q gitstats.Query) gitstats.Result {
	f.queries = append(f.queries, q)
	if f.failing[q.Repository] {
		return gitstats.Result{Stats: f.stats[q.Repository], Err: errors.New("exit status 128")}
	}
	return gitstats.Result{Stats: f.stats[q.Repository]}
}

type fakeInspector struct {
	urls    map[string]string
	created map[string]time.Time
}

func (f *fakeInspector) RemoteURL(dir string) (string, error) {
	return f.urls[dir], nil
}

func (f *fakeInspector) FirstCommit(dir string) (*time.Time, error) {
	c, ok := f.created[dir]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func createRepo(t *testing.T, root string, name string) string {
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	api := createRepo(t, root, "api")
	web := createRepo(t, root, "web")
	gone := filepath.Join(root, "gone")
	created := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

	extractor := &fakeExtractor{
		stats: map[string]model.Stats{
			api: {Additions: 100, Deletions: 40, Commits: 7},
			web: {Additions: 5, Deletions: 1, Commits: 1},
		},
	}
	inspector := &fakeInspector{
		urls:    map[string]string{api: "git@github.com:me/api.git"},
		created: map[string]time.Time{api: created},
	}
	matcher, err := authors.New([]string{"me@example.com"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	s := NewSummarizer(consoles.NewWriterConsole(out), extractor, inspector)
	s.ShowProgress = false

	summary, err := s.Summarize(context.Background(), []string{api, gone, web}, matcher)
	require.NoError(t, err)

	require.Len(t, summary.Repositories, 2)
	assert.Equal(t, "api", summary.Repositories[0].Name)
	assert.Equal(t, "git@github.com:me/api.git", summary.Repositories[0].URL)
	assert.Equal(t, created, *summary.Repositories[0].Created)
	assert.Equal(t, 60, summary.Repositories[0].Net())
	assert.Nil(t, summary.Repositories[1].Created)

	assert.Equal(t, model.Stats{Additions: 105, Deletions: 41, Commits: 8}, summary.Total)
	require.Len(t, summary.WithoutURL, 1)
	assert.Equal(t, "web", summary.WithoutURL[0].Name)
	assert.Equal(t, []string{gone}, summary.Skipped)

	for _, q := range extractor.queries {
		assert.Nil(t, q.Day)
		assert.True(t, q.CountCommits)
		assert.Equal(t, `me@example\.com`, q.AuthorPattern)
	}
}

func TestSummarizeUnreachableCountsAsZero(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	broken := createRepo(t, root, "broken")

	extractor := &fakeExtractor{failing: map[string]bool{broken: true}}
	matcher, err := authors.New(nil)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	s := NewSummarizer(consoles.NewWriterConsole(out), extractor, &fakeInspector{})
	s.ShowProgress = false

	summary, err := s.Summarize(context.Background(), []string{broken}, matcher)
	require.NoError(t, err)

	require.Len(t, summary.Repositories, 1)
	assert.Error(t, summary.Repositories[0].Err)
	assert.True(t, summary.Total.IsEmpty())
	assert.Contains(t, out.String(), "broken: unreachable, counting as zero")
}

func TestSummarizeKeepsLineTotalsWhenCommitCountFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	api := createRepo(t, root, "api")

	extractor := &fakeExtractor{
		stats:   map[string]model.Stats{api: {Additions: 12, Deletions: 5}},
		failing: map[string]bool{api: true},
	}
	matcher, err := authors.New(nil)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	s := NewSummarizer(consoles.NewWriterConsole(out), extractor, &fakeInspector{})
	s.ShowProgress = false

	summary, err := s.Summarize(context.Background(), []string{api}, matcher)
	require.NoError(t, err)

	require.Len(t, summary.Repositories, 1)
	assert.Error(t, summary.Repositories[0].Err)
	assert.Equal(t, model.Stats{Additions: 12, Deletions: 5}, summary.Repositories[0].Stats)
	assert.Equal(t, model.Stats{Additions: 12, Deletions: 5}, summary.Total)
	assert.Contains(t, out.String(), "api: commit count failed, keeping +12 / -5: exit status 128")
}

func TestPrintRepositories(t *testing.T) {
	t.Parallel()

	created := time.Now().AddDate(-2, -1, 0)
	api := &RepositorySummary{
		Name:    "api",
		Path:    "/code/api",
		URL:     "https://example.com/api.git",
		Created: &created,
		Stats:   model.Stats{Additions: 1500, Deletions: 200, Commits: 12},
	}
	local := &RepositorySummary{
		Name:  "local",
		Path:  "/code/local",
		Stats: model.Stats{Additions: 10, Deletions: 20, Commits: 1},
	}

	out := &bytes.Buffer{}
	PrintRepositories(out, &RepositoriesSummary{
		Repositories: []*RepositorySummary{api, local},
		Total:        model.Stats{Additions: 1510, Deletions: 220, Commits: 13},
		WithoutURL:   []*RepositorySummary{local},
	})
	text := out.String()

	assert.Contains(t, text, "repo: api\n  path: /code/api\n  url: https://example.com/api.git\n")
	assert.Contains(t, text, "2 years ago")
	assert.Contains(t, text, "  commits: 12\n  additions: 1500\n  deletions: 200\n  net: 1300\n")
	assert.Contains(t, text, "repo: local\n  path: /code/local\n  url: unknown\n  created: unknown\n")
	assert.Contains(t, text, "  net: -10\n")
	assert.Contains(t, text, "=== Repositories without remote url ===\nlocal (/code/local)\n")
	assert.Contains(t, text, "  additions: 1,510\n")
	assert.Contains(t, text, "  net: 1,290\n")
	assert.NotContains(t, text, "Skipped")
}

func TestPrintDaily(t *testing.T) {
	t.Parallel()

	d1, err := model.ParseDay("2024-01-01")
	require.NoError(t, err)
	d2, err := model.ParseDay("2024-01-02")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	PrintDaily(out, []*model.DailyRecord{
		model.NewDailyRecord(d1, model.Stats{Additions: 10, Deletions: 2, Commits: 3}, time.Now()),
		model.NewDailyRecord(d2, model.Stats{Additions: 1, Deletions: 4}, time.Now()),
	})
	text := out.String()

	assert.Contains(t, text, "date: 2024-01-01\n  additions: 10\n  deletions: 2\n  net: 8\n  commits: 3\n")
	assert.Contains(t, text, "date: 2024-01-02\n  additions: 1\n  deletions: 4\n  net: -3\n")
	assert.Contains(t, text, "2 days from 2024-01-01 to 2024-01-02: +11 / -6 (net 5) in 3 commits\n")
}

func TestPrintDailyEmpty(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	PrintDaily(out, nil)

	assert.Equal(t, "No days processed yet\n", out.String())
}
