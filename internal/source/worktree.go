package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pmezard/go-difflib/difflib"
)

// WorktreeSource derives the patch for a repository's local changes:
// worktree vs HEAD, or index vs HEAD when Staged is set.
type WorktreeSource struct {
	Repo   string
	Staged bool
}

func (s WorktreeSource) Load() (string, error) {
	repo, err := openRepo(s.Repo)
	if err != nil {
		return "", err
	}
	changes, err := collectLocalChanges(repo, s.Repo, s.Staged)
	if err != nil {
		return "", err
	}
	return renderUnifiedDiff(changes), nil
}

func (s WorktreeSource) Describe() string {
	if s.Staged {
		return fmt.Sprintf("%s (staged)", s.Repo)
	}
	return fmt.Sprintf("%s (worktree)", s.Repo)
}

func (s WorktreeSource) WatchPaths() []string {
	paths := []string{gitDirFor(s.Repo)}
	if !s.Staged {
		paths = append(paths, s.Repo)
	}
	return paths
}

// localChange is one changed path with both file versions resolved to text.
// An absent side (nil Text pointer semantics via Present) marks an addition
// or a deletion.
type localChange struct {
	Path   string
	From   fileVersion
	To     fileVersion
	Binary bool
}

type fileVersion struct {
	Present bool
	Text    string
}

func collectLocalChanges(repo *gitlib.Repository, root string, staged bool) ([]localChange, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}
	headTree, err := headTree(repo)
	if err != nil {
		return nil, err
	}
	var idx *gitindex.Index
	if staged {
		idx, err = repo.Storer.Index()
		if err != nil {
			return nil, err
		}
	}
	var paths []string
	for path, st := range status {
		include := false
		if staged {
			include = st.Staging != gitlib.Unmodified && st.Staging != gitlib.Untracked
		} else {
			include = st.Worktree != gitlib.Unmodified && st.Worktree != gitlib.Untracked
		}
		if include {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var changes []localChange
	for _, path := range paths {
		fromFile, err := fileFromTree(headTree, path)
		if err != nil {
			return nil, err
		}
		var toFile *object.File
		if staged {
			toFile, err = fileFromIndex(idx, repo, path)
		} else {
			toFile, err = fileFromDisk(root, path)
		}
		if err != nil {
			return nil, err
		}
		if fromFile == nil && toFile == nil {
			continue
		}
		change := localChange{Path: path}
		change.Binary, err = binaryChange(fromFile, toFile)
		if err != nil {
			return nil, err
		}
		if !change.Binary {
			if change.From, err = versionOf(fromFile); err != nil {
				return nil, err
			}
			if change.To, err = versionOf(toFile); err != nil {
				return nil, err
			}
		} else {
			change.From = fileVersion{Present: fromFile != nil}
			change.To = fileVersion{Present: toFile != nil}
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// renderUnifiedDiff emits the changes as "diff --git" sections, including
// the file mode marker lines the parser derives statuses from.
func renderUnifiedDiff(changes []localChange) string {
	var b strings.Builder
	for _, change := range changes {
		if change.Path == "" {
			continue
		}
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", change.Path, change.Path)
		switch {
		case !change.From.Present:
			b.WriteString("new file mode 100644\n")
		case !change.To.Present:
			b.WriteString("deleted file mode 100644\n")
		}
		if change.Binary {
			b.WriteString("(binary files differ)\n")
			continue
		}
		ud := difflib.UnifiedDiff{
			A:        splitDiffLines(change.From.Text),
			B:        splitDiffLines(change.To.Text),
			FromFile: fromLabel(change),
			ToFile:   toLabel(change),
			Context:  3,
		}
		if !change.From.Present {
			ud.A = nil
		}
		if !change.To.Present {
			ud.B = nil
		}
		diffText, err := difflib.GetUnifiedDiffString(ud)
		if err != nil || diffText == "" {
			b.WriteString("(no textual changes)\n")
			continue
		}
		b.WriteString(diffText)
		if !strings.HasSuffix(diffText, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// splitDiffLines splits text into newline-terminated lines for difflib
// without the synthetic empty trailing line difflib.SplitLines adds,
// which would otherwise show up as a bogus context line in the hunks.
func splitDiffLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n"
	return lines
}

func fromLabel(change localChange) string {
	if !change.From.Present {
		return "/dev/null"
	}
	return "a/" + change.Path
}

func toLabel(change localChange) string {
	if !change.To.Present {
		return "/dev/null"
	}
	return "b/" + change.Path
}

func versionOf(f *object.File) (fileVersion, error) {
	if f == nil {
		return fileVersion{}, nil
	}
	text, err := f.Contents()
	if err != nil {
		return fileVersion{}, err
	}
	return fileVersion{Present: true, Text: text}, nil
}

func headTree(repo *gitlib.Repository) (*object.Tree, error) {
	head, err := repo.Head()
	if err == plumbing.ErrReferenceNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

func fileFromTree(tree *object.Tree, path string) (*object.File, error) {
	if tree == nil {
		return nil, nil
	}
	f, err := tree.File(path)
	if err == object.ErrFileNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func fileFromIndex(idx *gitindex.Index, repo *gitlib.Repository, path string) (*object.File, error) {
	if idx == nil || repo == nil {
		return nil, nil
	}
	entry, err := idx.Entry(path)
	if err == gitindex.ErrEntryNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	blob, err := object.GetBlob(repo.Storer, entry.Hash)
	if err != nil {
		return nil, err
	}
	return object.NewFile(entry.Name, entry.Mode, blob), nil
}

func fileFromDisk(root, path string) (*object.File, error) {
	if root == "" {
		return nil, fmt.Errorf("repository root not set")
	}
	file, err := os.Open(filepath.Join(root, path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	mem := &plumbing.MemoryObject{}
	mem.SetType(plumbing.BlobObject)
	if _, err := mem.Write(data); err != nil {
		return nil, err
	}
	blob, err := object.DecodeBlob(mem)
	if err != nil {
		return nil, err
	}
	mode := filemode.Regular
	if info, err := file.Stat(); err == nil {
		if m, err := filemode.NewFromOSFileMode(info.Mode()); err == nil {
			mode = m
		}
	}
	return object.NewFile(path, mode, blob), nil
}

func binaryChange(from, to *object.File) (bool, error) {
	for _, f := range []*object.File{from, to} {
		if f == nil {
			continue
		}
		bin, err := f.IsBinary()
		if err != nil {
			return false, err
		}
		if bin {
			return true, nil
		}
	}
	return false, nil
}
