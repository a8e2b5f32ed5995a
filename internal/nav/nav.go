// Package nav owns the navigation state over a parsed patch: the current
// selection, the set of expanded directories, search filtering, and the
// display toggles. Every transition replaces the whole State value, so an
// observer never sees a half-applied transition.
package nav

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hexbee/git-diff-viewer/internal/patch"
	"github.com/hexbee/git-diff-viewer/internal/tree"
)

// ViewMode selects how the diff renderer lays out a file's two sides.
type ViewMode int

const (
	ViewUnified ViewMode = iota
	ViewSplit
)

func (m ViewMode) String() string {
	if m == ViewSplit {
		return "split"
	}
	return "unified"
}

// Theme is the effective light/dark choice, after any auto detection.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// State is one immutable snapshot of the navigation state. Transitions on
// Machine never mutate a published State; maps and slices are cloned before
// being changed.
type State struct {
	SelectedPath  string
	ExpandedDirs  map[string]struct{}
	SearchQuery   string
	SearchResults []patch.FileChange

	TreeVisible     bool
	ViewMode        ViewMode
	Theme           Theme
	ShowWhitespace  bool
	IndentGuides    bool
	SyntaxHighlight bool
}

// Machine applies transitions over the current file collection. It is
// confined to the UI event loop and therefore unsynchronized.
type Machine struct {
	files []patch.FileChange
	index map[string]int
	root  *tree.Node
	dirs  map[string]struct{}
	state State
}

// New returns a machine with no files loaded and the given initial display
// flags.
func New(initial State) *Machine {
	initial.SelectedPath = ""
	initial.ExpandedDirs = nil
	initial.SearchQuery = ""
	initial.SearchResults = nil
	return &Machine{
		index: map[string]int{},
		dirs:  map[string]struct{}{},
		root:  tree.Build(nil),
		state: initial,
	}
}

// State returns the current snapshot. Callers must treat it as read-only.
func (m *Machine) State() State { return m.state }

// Files returns the file collection as of the most recent Load.
func (m *Machine) Files() []patch.FileChange { return m.files }

// Root returns the directory tree as of the most recent Load.
func (m *Machine) Root() *tree.Node { return m.root }

// Load replaces the file collection, rebuilds the tree, selects the first
// file and expands its ancestors. Any prior search and any expanded
// directories from the previous collection are discarded.
func (m *Machine) Load(files []patch.FileChange) {
	m.files = slices.Clone(files)
	m.index = make(map[string]int, len(files))
	for i, fc := range files {
		if _, ok := m.index[fc.Path]; !ok {
			m.index[fc.Path] = i
		}
	}
	m.root = tree.Build(m.files)
	m.dirs = make(map[string]struct{})
	for _, dir := range m.root.DirPaths() {
		m.dirs[dir] = struct{}{}
	}

	st := m.state
	st.SelectedPath = ""
	st.ExpandedDirs = map[string]struct{}{}
	st.SearchQuery = ""
	st.SearchResults = nil
	if len(m.files) > 0 {
		st.SelectedPath = m.files[0].Path
		for _, dir := range tree.Ancestors(st.SelectedPath) {
			st.ExpandedDirs[dir] = struct{}{}
		}
	}
	m.state = st
}

// Selected returns the currently selected file change.
func (m *Machine) Selected() (patch.FileChange, bool) {
	i, ok := m.index[m.state.SelectedPath]
	if m.state.SelectedPath == "" || !ok {
		return patch.FileChange{}, false
	}
	return m.files[i], true
}

// Select makes path the current selection. The path must belong to the
// loaded collection; anything else is a caller bug, not a user-reachable
// condition.
func (m *Machine) Select(path string) error {
	if _, ok := m.index[path]; !ok {
		return fmt.Errorf("select %q: not a file in the current patch", path)
	}
	st := m.state
	st.SelectedPath = path
	m.state = st
	return nil
}

// ExpandToFile expands every proper ancestor directory of path. Applying it
// twice is the same as applying it once.
func (m *Machine) ExpandToFile(path string) {
	ancestors := tree.Ancestors(path)
	if len(ancestors) == 0 {
		return
	}
	st := m.state
	st.ExpandedDirs = maps.Clone(st.ExpandedDirs)
	for _, dir := range ancestors {
		if _, ok := m.dirs[dir]; ok {
			st.ExpandedDirs[dir] = struct{}{}
		}
	}
	m.state = st
}

// ToggleDir flips the expanded state of a directory. Unknown paths are
// ignored so ExpandedDirs only ever holds directories of the current tree.
func (m *Machine) ToggleDir(path string) {
	if _, ok := m.dirs[path]; !ok {
		return
	}
	st := m.state
	st.ExpandedDirs = maps.Clone(st.ExpandedDirs)
	if _, ok := st.ExpandedDirs[path]; ok {
		delete(st.ExpandedDirs, path)
	} else {
		st.ExpandedDirs[path] = struct{}{}
	}
	m.state = st
}

// ExpandAll expands every directory in the tree.
func (m *Machine) ExpandAll() {
	st := m.state
	st.ExpandedDirs = maps.Clone(m.dirs)
	m.state = st
}

// CollapseAll collapses every directory.
func (m *Machine) CollapseAll() {
	st := m.state
	st.ExpandedDirs = map[string]struct{}{}
	m.state = st
}

// Search recomputes the result list as the files whose path contains query
// as a case-insensitive substring. An empty query yields no results rather
// than all files. When the query actually changed and matched something,
// the first match becomes the selection and its ancestors are expanded.
func (m *Machine) Search(query string) {
	changed := query != m.state.SearchQuery
	var results []patch.FileChange
	if query != "" {
		needle := strings.ToLower(query)
		for _, fc := range m.files {
			if strings.Contains(strings.ToLower(fc.Path), needle) {
				results = append(results, fc)
			}
		}
	}
	st := m.state
	st.SearchQuery = query
	st.SearchResults = results
	m.state = st
	if changed && len(results) > 0 {
		if err := m.Select(results[0].Path); err == nil {
			m.ExpandToFile(results[0].Path)
		}
	}
}

// ActiveList is the list Next and Previous walk: the search results while a
// query is active, the full collection otherwise.
func (m *Machine) ActiveList() []patch.FileChange {
	if m.state.SearchQuery != "" {
		return m.state.SearchResults
	}
	return m.files
}

// Next moves the selection to the following entry of the active list. At
// the end of the list it is a no-op.
func (m *Machine) Next() { m.move(1) }

// Previous moves the selection to the preceding entry of the active list.
// At the start of the list it is a no-op.
func (m *Machine) Previous() { m.move(-1) }

func (m *Machine) move(delta int) {
	if m.state.SelectedPath == "" {
		return
	}
	list := m.ActiveList()
	if len(list) < 2 {
		return
	}
	idx := -1
	for i, fc := range list {
		if fc.Path == m.state.SelectedPath {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	idx += delta
	if idx < 0 || idx >= len(list) {
		return
	}
	if err := m.Select(list[idx].Path); err != nil {
		return
	}
	m.ExpandToFile(list[idx].Path)
}

// SelectionPosition reports the 1-based index of the selection within the
// active list, and that list's length. ok is false when nothing is
// selected or the selection is not part of the active list.
func (m *Machine) SelectionPosition() (index, total int, ok bool) {
	list := m.ActiveList()
	for i, fc := range list {
		if fc.Path != "" && fc.Path == m.state.SelectedPath {
			return i + 1, len(list), true
		}
	}
	return 0, len(list), false
}

func (m *Machine) ToggleTreeVisible() {
	st := m.state
	st.TreeVisible = !st.TreeVisible
	m.state = st
}

func (m *Machine) ToggleViewMode() {
	st := m.state
	if st.ViewMode == ViewUnified {
		st.ViewMode = ViewSplit
	} else {
		st.ViewMode = ViewUnified
	}
	m.state = st
}

func (m *Machine) ToggleTheme() {
	st := m.state
	if st.Theme == ThemeLight {
		st.Theme = ThemeDark
	} else {
		st.Theme = ThemeLight
	}
	m.state = st
}

func (m *Machine) ToggleWhitespace() {
	st := m.state
	st.ShowWhitespace = !st.ShowWhitespace
	m.state = st
}

func (m *Machine) ToggleIndentGuides() {
	st := m.state
	st.IndentGuides = !st.IndentGuides
	m.state = st
}

// ToggleSyntaxHighlight flips the flag; the presentation layer re-derives
// the effective language for the current selection from the new state.
func (m *Machine) ToggleSyntaxHighlight() {
	st := m.state
	st.SyntaxHighlight = !st.SyntaxHighlight
	m.state = st
}
