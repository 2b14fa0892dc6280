// Package provenance records which commit of the renderer produced a set of
// benchmark results.
package provenance

import (
	"errors"
	"fmt"

	git "gopkg.in/src-d/go-git.v4"
)

type Source struct {
	Commit string
	Dirty  bool
}

func (s *Source) String() string {
	if s == nil {
		return ""
	}
	if s.Dirty {
		return s.Commit + " (dirty)"
	}
	return s.Commit
}

// Describe looks for a git repository containing dir. It returns nil, nil
// when dir is not inside a repository.
func Describe(dir string) (*Source, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open the git repository: %w", err)
	}

	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("unable to get the reference where HEAD is pointing to: %w", err)
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("unable to get a worktree based on the given fs: %w", err)
	}

	s, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("unable to get the working tree status: %w", err)
	}

	return &Source{
		Commit: head.Hash().String()[:7],
		Dirty:  !s.IsClean(),
	}, nil
}
