package gitstats

import (
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

// Inspector reads repository metadata that doesn't depend on the author.
type Inspector interface {
	// RemoteURL returns the url of the origin remote, or "" if there is none.
	RemoteURL(dir string) (string, error)

	// FirstCommit returns the author date of the oldest commit reachable from
	// HEAD, or nil if the repository has no commits.
	FirstCommit(dir string) (*time.Time, error)
}

type goGitInspector struct {
}

func NewGoGitInspector() Inspector {
	return &goGitInspector{}
}

func (i *goGitInspector) RemoteURL(dir string) (string, error) {
	gitRepo, err := git.PlainOpen(dir)
	if err != nil {
		return "", errors.Wrapf(err, "%v: error opening repository", dir)
	}

	remote, err := gitRepo.Remote(git.DefaultRemoteName)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}

	return urls[0], nil
}

func (i *goGitInspector) FirstCommit(dir string) (*time.Time, error) {
	gitRepo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "%v: error opening repository", dir)
	}

	gitHead, err := gitRepo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	commitsIter, err := gitRepo.Log(&git.LogOptions{
		From:  gitHead.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}

	var result *time.Time
	err = commitsIter.ForEach(func(gitCommit *object.Commit) error {
		when := gitCommit.Author.When
		if result == nil || when.Before(*result) {
			result = &when
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
