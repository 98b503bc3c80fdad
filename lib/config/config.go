package config

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/dailyloc/lib/authors"
	"github.com/pescuma/dailyloc/lib/model"
	"github.com/pescuma/dailyloc/lib/repos"
	"github.com/pescuma/dailyloc/lib/utils"
)

const (
	DefaultRoot       = "~/code"
	DefaultGitTimeout = 5 * time.Minute
)

// Config holds the absolute paths of every file used by the tool. Relative
// values are resolved against Workspace.
type Config struct {
	Workspace     string
	Root          string
	ReposFile     string
	IgnoreFile    string
	EmailsFile    string
	StartDateFile string
	DBFile        string
	GitTimeout    time.Duration

	// Verbose prints every git command executed.
	Verbose bool
}

// New returns the default layout inside workspace.
func New(workspace string) (*Config, error) {
	if workspace == "" {
		workspace = "."
	}

	workspace, err := utils.PathAbs("", workspace)
	if err != nil {
		return nil, err
	}

	root, err := utils.PathAbs("", DefaultRoot)
	if err != nil {
		return nil, err
	}

	return &Config{
		Workspace:     workspace,
		Root:          root,
		ReposFile:     filepath.Join(workspace, "config", "repos.txt"),
		IgnoreFile:    filepath.Join(workspace, "config", "ignore.txt"),
		EmailsFile:    filepath.Join(workspace, "config", "emails.txt"),
		StartDateFile: filepath.Join(workspace, "config", "start-date.txt"),
		DBFile:        filepath.Join(workspace, "data", "contributions.db"),
		GitTimeout:    DefaultGitTimeout,
	}, nil
}

// Resolve makes every path absolute. Relative paths are taken from the workspace.
func (c *Config) Resolve() error {
	fields := []*string{&c.Root, &c.ReposFile, &c.IgnoreFile, &c.EmailsFile, &c.StartDateFile}
	if c.DBFile != ":memory:" {
		fields = append(fields, &c.DBFile)
	}

	for _, f := range fields {
		if *f == "" {
			continue
		}

		p, err := utils.PathAbs(c.Workspace, *f)
		if err != nil {
			return err
		}
		*f = p
	}

	return nil
}

func (c *Config) LoadRepositories() ([]string, error) {
	exists, err := utils.FileExists(c.ReposFile)
	if err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Errorf("repositories file not found: %v (run discover first)", c.ReposFile)
	}

	return repos.ReadList(c.ReposFile)
}

func (c *Config) LoadAuthors() (*authors.Matcher, error) {
	exists, err := utils.FileExists(c.EmailsFile)
	if err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Errorf("emails file not found: %v", c.EmailsFile)
	}

	lines, err := utils.ReadLines(c.EmailsFile)
	if err != nil {
		return nil, err
	}

	return authors.New(lines)
}

// LoadIgnoreSet resolves the relative entries against root. It returns an
// empty set when the ignore file does not exist.
func (c *Config) LoadIgnoreSet(root string) (*repos.IgnoreSet, error) {
	exists, err := utils.FileExists(c.IgnoreFile)
	if err != nil {
		return nil, err
	} else if !exists {
		return repos.NewIgnoreSet(nil, root)
	}

	lines, err := utils.ReadLines(c.IgnoreFile)
	if err != nil {
		return nil, err
	}

	return repos.NewIgnoreSet(lines, root)
}

func (c *Config) LoadStartDate() (time.Time, error) {
	exists, err := utils.FileExists(c.StartDateFile)
	if err != nil {
		return time.Time{}, err
	} else if !exists {
		return time.Time{}, errors.Errorf("start date file not found: %v", c.StartDateFile)
	}

	lines, err := utils.ReadLines(c.StartDateFile)
	if err != nil {
		return time.Time{}, err
	}

	if len(lines) == 0 {
		return time.Time{}, errors.Errorf("start date file is empty: %v", c.StartDateFile)
	}

	return model.ParseDay(lines[0])
}
