package workspace

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/abiosoft/lineprefix"
	"github.com/gertd/go-pluralize"
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"github.com/pescuma/dailyloc/lib/config"
	"github.com/pescuma/dailyloc/lib/consoles"
	"github.com/pescuma/dailyloc/lib/gitstats"
	"github.com/pescuma/dailyloc/lib/importers/daily"
	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/reports"
	"github.com/pescuma/dailyloc/lib/repos"
	"github.com/pescuma/dailyloc/lib/storages"
	"github.com/pescuma/dailyloc/lib/storages/orm"
	"github.com/pescuma/dailyloc/lib/utils"
)

type Workspace struct {
	config    *config.Config
	console   consoles.Console
	out       io.Writer
	executor  gitstats.Executor
	inspector gitstats.Inspector

	storage storages.Storage
}

func NewWorkspace(cfg *config.Config) (*Workspace, error) {
	err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	console := consoles.NewStdOutConsole()

	executor := gitstats.NewExecExecutor(cfg.GitTimeout)
	if cfg.Verbose {
		executor = gitstats.NewVerboseExecutor(executor, console)
	}

	return newWorkspace(cfg, console, os.Stdout, executor), nil
}

func newWorkspace(cfg *config.Config, console consoles.Console, out io.Writer, executor gitstats.Executor) *Workspace {
	return &Workspace{
		config:    cfg,
		console:   console,
		out:       out,
		executor:  executor,
		inspector: gitstats.NewGoGitInspector(),
	}
}

func (w *Workspace) Close() error {
	if w.storage == nil {
		return nil
	}

	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Config() *config.Config {
	return w.config
}

// openStorage opens the database on first use, so commands that only touch
// the config files never create it.
func (w *Workspace) openStorage() (storages.Storage, error) {
	if w.storage != nil {
		return w.storage, nil
	}

	file := w.config.DBFile

	var storage storages.Storage
	var err error
	switch {
	case file == ":memory:":
		storage, err = orm.NewGormStorage(orm.WithSqliteInMemory(), w.console)

	default:
		err = createDataDir(w.console, file)
		if err != nil {
			return nil, err
		}

		storage, err = orm.NewGormStorage(orm.WithSqlite(file), w.console)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error opening database %v", file)
	}

	w.storage = storage
	return storage, nil
}

func createDataDir(console consoles.Console, file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		console.Printf("Creating data dir at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}

// Discover finds the git repositories under roots and writes them to the
// repositories file. The configured root is used when roots is empty.
// Relative ignore entries are resolved against each root being walked.
func (w *Workspace) Discover(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{w.config.Root}
	}

	pc := pluralize.NewClient()
	w.console.Printf("Searching for git repositories in %v...\n", strings.Join(roots, ", "))

	all := set.New[string](100)
	for _, root := range roots {
		root, err := utils.PathCanonical("", root)
		if err != nil {
			return nil, err
		}

		ignore, err := w.config.LoadIgnoreSet(root)
		if err != nil {
			return nil, err
		}

		if ignore.Len() > 0 {
			w.console.Printf("%v: ignoring %v\n", root, pc.Pluralize("path", ignore.Len(), true))
		}

		finder := &repos.Finder{Ignore: ignore}
		found, err := finder.Find([]string{root})
		if err != nil {
			return nil, err
		}

		all.InsertSlice(found)
	}

	found := all.Slice()
	sort.Strings(found)

	err := repos.WriteList(w.config.ReposFile, found)
	if err != nil {
		return nil, errors.Wrapf(err, "error writing %v", w.config.ReposFile)
	}

	w.console.Printf("Found %v git %v\n", len(found), pc.Pluralize("repository", len(found), false))
	w.console.Printf("Saved to %v\n", w.config.ReposFile)

	return found, nil
}

type IndexOptions struct {
	CountCommits bool

	// Today overrides the last day to process.
	Today time.Time
}

func (w *Workspace) Index(ctx context.Context, opts *IndexOptions) (*daily.Summary, error) {
	list, err := w.config.LoadRepositories()
	if err != nil {
		return nil, err
	}

	matcher, err := w.config.LoadAuthors()
	if err != nil {
		return nil, err
	}
	if matcher.Empty() {
		w.console.Printf("No author identities in %v: every day will be zero\n", w.config.EmailsFile)
	}

	storage, err := w.openStorage()
	if err != nil {
		return nil, err
	}

	importer := daily.NewImporter(w.console, storage, gitstats.NewExtractor(w.executor))
	return importer.Import(ctx, &daily.Options{
		Repositories: list,
		Authors:      matcher,
		StartDate:    w.config.LoadStartDate,
		CountCommits: opts.CountCommits,
		Today:        opts.Today,
	})
}

func (w *Workspace) ReportDaily(from, to *time.Time) error {
	storage, err := w.openStorage()
	if err != nil {
		return err
	}

	records, err := storage.LoadDailyRecords(from, to)
	if err != nil {
		return err
	}

	reports.PrintDaily(w.out, records)
	return nil
}

func (w *Workspace) ReportRepositories(ctx context.Context) error {
	list, err := w.config.LoadRepositories()
	if err != nil {
		return err
	}

	matcher, err := w.config.LoadAuthors()
	if err != nil {
		return err
	}

	summarizer := reports.NewSummarizer(w.console, gitstats.NewExtractor(w.executor), w.inspector)
	summarizer.ShowProgress = w.out == os.Stdout

	summary, err := summarizer.Summarize(ctx, list, matcher)
	if err != nil {
		return err
	}

	reports.PrintRepositories(w.out, summary)
	return nil
}

// Reset deletes the records from day on, so the next index recomputes them.
func (w *Workspace) Reset(day time.Time) (int64, error) {
	storage, err := w.openStorage()
	if err != nil {
		return 0, err
	}

	deleted, err := storage.DeleteDailyRecordsFrom(day)
	if err != nil {
		return 0, err
	}

	w.console.Printf("Deleted %v from %v on\n",
		pluralize.NewClient().Pluralize("day", int(deleted), true), model.FormatDay(day))

	return deleted, nil
}

func (w *Workspace) RunGit(ctx context.Context, args ...string) error {
	list, err := w.config.LoadRepositories()
	if err != nil {
		return err
	}

	for _, dir := range list {
		if err = ctx.Err(); err != nil {
			return err
		}

		name := filepath.Base(dir)

		if !repos.IsRepository(dir) {
			w.console.Printf("%v: not a git repository anymore, skipping\n", dir)
			continue
		}

		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir

		w.console.Printf("%v: Executing '%v'\n", name, strings.Join(cmd.Args, "' '"))
		w.console.PushPrefix("%v: ", name)

		prefix := lineprefix.PrefixFunc(func() string {
			return w.console.Prepare("")
		})

		cmd.Stdin = os.Stdin
		cmd.Stdout = lineprefix.New(lineprefix.Writer(w.out), prefix)
		cmd.Stderr = lineprefix.New(lineprefix.Writer(utils.IIf[io.Writer](w.out == os.Stdout, os.Stderr, w.out)), prefix)

		err = cmd.Run()
		if err != nil {
			w.console.Printf("failed: %v\n", err)
		}

		w.console.PopPrefix()
	}

	return nil
}
