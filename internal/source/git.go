package source

import (
	"fmt"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RangeSource derives the patch between two revisions of a repository.
type RangeSource struct {
	Repo string
	From string
	To   string
}

func (s RangeSource) Load() (string, error) {
	repo, err := openRepo(s.Repo)
	if err != nil {
		return "", err
	}
	fromCommit, err := commitForRevision(repo, s.From)
	if err != nil {
		return "", err
	}
	toCommit, err := commitForRevision(repo, s.To)
	if err != nil {
		return "", err
	}
	patch, err := fromCommit.Patch(toCommit)
	if err != nil {
		return "", fmt.Errorf("diff %s..%s: %w", s.From, s.To, err)
	}
	return patch.String(), nil
}

func (s RangeSource) Describe() string {
	return fmt.Sprintf("%s (%s..%s)", s.Repo, s.From, s.To)
}

// WatchPaths is nil: the endpoints are fixed commits, there is nothing to
// observe.
func (s RangeSource) WatchPaths() []string { return nil }

func openRepo(path string) (*gitlib.Repository, error) {
	repo, err := gitlib.PlainOpenWithOptions(path, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return repo, nil
}

func commitForRevision(repo *gitlib.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}
	return commit, nil
}

func gitDirFor(root string) string {
	return filepath.Join(root, ".git")
}
