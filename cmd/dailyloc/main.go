package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/pescuma/dailyloc/lib/config"
	"github.com/pescuma/dailyloc/lib/workspace"
)

var cli struct {
	Workspace     string        `short:"w" default:"." env:"DAILYLOC_WORKSPACE" help:"Folder with the config and data dirs." type:"path"`
	Root          string        `env:"DAILYLOC_ROOT" help:"Folder to search for git repositories. Default is ~/code."`
	ReposFile     string        `env:"DAILYLOC_REPOS_FILE" help:"List of repositories. Default is config/repos.txt."`
	IgnoreFile    string        `env:"DAILYLOC_IGNORE_FILE" help:"Paths to ignore while discovering. Default is config/ignore.txt."`
	EmailsFile    string        `env:"DAILYLOC_EMAILS_FILE" help:"Author identities. Default is config/emails.txt."`
	StartDateFile string        `env:"DAILYLOC_START_DATE_FILE" help:"First day to index. Default is config/start-date.txt."`
	Db            string        `env:"DAILYLOC_DB" help:"Sqlite database. Default is data/contributions.db. Use :memory: for a temporary one."`
	GitTimeout    time.Duration `default:"5m" env:"DAILYLOC_GIT_TIMEOUT" help:"Timeout of each git command, 0 to disable."`
	Verbose       bool          `short:"v" help:"Print every git command executed."`

	Discover DiscoverCmd `cmd:"" help:"Find git repositories and write the repositories file."`
	Index    IndexCmd    `cmd:"" help:"Compute daily totals from the last processed day until today."`

	Report struct {
		Daily ReportDailyCmd `cmd:"" help:"Show the stored daily totals."`
		Repos ReportReposCmd `cmd:"" help:"Show all time totals per repository."`
	} `cmd:""`

	Reset ResetCmd  `cmd:"" help:"Delete the daily totals from a day on, so they are computed again."`
	Git   RunGitCmd `cmd:"" help:"Run a git command in all repositories."`
}

type appContext struct {
	ctx context.Context
	ws  *workspace.Workspace
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Description("Daily lines of code added and deleted by you across your git repositories."),
		kong.ShortUsageOnError(),
	)

	cfg, err := createConfig()
	kctx.FatalIfErrorf(err)

	ws, err := workspace.NewWorkspace(cfg)
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = kctx.Run(&appContext{
		ctx: ctx,
		ws:  ws,
	})

	stop()
	_ = ws.Close()

	kctx.FatalIfErrorf(err)
}

func createConfig() (*config.Config, error) {
	cfg, err := config.New(cli.Workspace)
	if err != nil {
		return nil, err
	}

	override := func(target *string, value string) {
		if value != "" {
			*target = value
		}
	}
	override(&cfg.Root, cli.Root)
	override(&cfg.ReposFile, cli.ReposFile)
	override(&cfg.IgnoreFile, cli.IgnoreFile)
	override(&cfg.EmailsFile, cli.EmailsFile)
	override(&cfg.StartDateFile, cli.StartDateFile)
	override(&cfg.DBFile, cli.Db)

	cfg.GitTimeout = cli.GitTimeout
	cfg.Verbose = cli.Verbose

	return cfg, nil
}
