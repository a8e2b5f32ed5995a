package nav

import (
	"reflect"
	"testing"

	"github.com/hexbee/git-diff-viewer/internal/patch"
)

func testFiles() []patch.FileChange {
	return []patch.FileChange{
		{Path: "src/app.ts", Status: patch.StatusModified, Language: "typescript"},
		{Path: "src/util/b.py", Status: patch.StatusAdded, Language: "python"},
		{Path: "docs/readme.md", Status: patch.StatusDeleted, Language: "markdown"},
	}
}

func loadedMachine() *Machine {
	m := New(State{TreeVisible: true, SyntaxHighlight: true})
	m.Load(testFiles())
	return m
}

func expanded(m *Machine) []string {
	st := m.State()
	dirs := make([]string, 0, len(st.ExpandedDirs))
	for dir := range st.ExpandedDirs {
		dirs = append(dirs, dir)
	}
	return dirs
}

func hasExpanded(m *Machine, dir string) bool {
	_, ok := m.State().ExpandedDirs[dir]
	return ok
}

func TestLoadSelectsFirstFileAndExpandsAncestors(t *testing.T) {
	m := loadedMachine()
	st := m.State()
	if st.SelectedPath != "src/app.ts" {
		t.Fatalf("unexpected initial selection %q", st.SelectedPath)
	}
	if !hasExpanded(m, "src") {
		t.Fatalf("expected src to be expanded, got %v", expanded(m))
	}
	if st.SearchQuery != "" || st.SearchResults != nil {
		t.Fatalf("expected cleared search, got %q / %v", st.SearchQuery, st.SearchResults)
	}
}

func TestLoadDiscardsStaleExpandedDirs(t *testing.T) {
	m := loadedMachine()
	m.ExpandAll()
	m.Load([]patch.FileChange{{Path: "other/file.go"}})
	if hasExpanded(m, "src") || hasExpanded(m, "src/util") {
		t.Fatalf("stale dirs survived reload: %v", expanded(m))
	}
	if !hasExpanded(m, "other") {
		t.Fatalf("expected ancestors of new selection expanded, got %v", expanded(m))
	}
}

func TestLoadEmptyCollection(t *testing.T) {
	m := loadedMachine()
	m.Load(nil)
	st := m.State()
	if st.SelectedPath != "" {
		t.Fatalf("expected no selection, got %q", st.SelectedPath)
	}
	if len(st.ExpandedDirs) != 0 {
		t.Fatalf("expected no expanded dirs, got %v", expanded(m))
	}
	m.Next()
	m.Previous()
	if st := m.State(); st.SelectedPath != "" {
		t.Fatalf("navigation on empty collection changed selection to %q", st.SelectedPath)
	}
}

func TestSelectUnknownPathRejected(t *testing.T) {
	m := loadedMachine()
	if err := m.Select("nope.go"); err == nil {
		t.Fatalf("expected error for unknown path")
	}
	if st := m.State(); st.SelectedPath != "src/app.ts" {
		t.Fatalf("rejected transition altered selection to %q", st.SelectedPath)
	}
	if err := m.Select("docs/readme.md"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExpandToFileIdempotent(t *testing.T) {
	m := loadedMachine()
	m.ExpandToFile("src/util/b.py")
	once := m.State().ExpandedDirs
	m.ExpandToFile("src/util/b.py")
	twice := m.State().ExpandedDirs
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("ExpandToFile not idempotent: %v then %v", once, twice)
	}
	if !hasExpanded(m, "src") || !hasExpanded(m, "src/util") {
		t.Fatalf("missing ancestors: %v", expanded(m))
	}
}

func TestToggleDir(t *testing.T) {
	m := loadedMachine()
	m.ToggleDir("docs")
	if !hasExpanded(m, "docs") {
		t.Fatalf("expected docs expanded")
	}
	m.ToggleDir("docs")
	if hasExpanded(m, "docs") {
		t.Fatalf("expected docs collapsed")
	}
	before := m.State().ExpandedDirs
	m.ToggleDir("src/app.ts") // a file, not a directory
	if !reflect.DeepEqual(before, m.State().ExpandedDirs) {
		t.Fatalf("toggling a non-directory changed expansion state")
	}
}

func TestExpandAllCollapseAll(t *testing.T) {
	m := loadedMachine()
	m.ExpandAll()
	for _, dir := range []string{"src", "src/util", "docs"} {
		if !hasExpanded(m, dir) {
			t.Fatalf("expected %s expanded after ExpandAll, got %v", dir, expanded(m))
		}
	}
	m.CollapseAll()
	if len(m.State().ExpandedDirs) != 0 {
		t.Fatalf("expected empty set after CollapseAll, got %v", expanded(m))
	}
}

func TestSearchAutoNavigates(t *testing.T) {
	m := loadedMachine()
	m.Search("b.py")
	st := m.State()
	if len(st.SearchResults) != 1 || st.SearchResults[0].Path != "src/util/b.py" {
		t.Fatalf("unexpected results %v", st.SearchResults)
	}
	if st.SelectedPath != "src/util/b.py" {
		t.Fatalf("expected auto-navigate to match, got %q", st.SelectedPath)
	}
	if !hasExpanded(m, "src/util") {
		t.Fatalf("expected ancestors expanded, got %v", expanded(m))
	}
}

func TestSearchReEvaluationKeepsSelection(t *testing.T) {
	m := loadedMachine()
	m.Search("src")
	if err := m.Select("src/util/b.py"); err != nil {
		t.Fatalf("select: %v", err)
	}
	// Same query again: re-evaluation, not a change, so no auto-navigate.
	m.Search("src")
	if st := m.State(); st.SelectedPath != "src/util/b.py" {
		t.Fatalf("re-evaluated search moved selection to %q", st.SelectedPath)
	}
}

func TestSearchEmptyQueryYieldsNoResults(t *testing.T) {
	m := loadedMachine()
	m.Search("src")
	m.Search("")
	st := m.State()
	if st.SearchResults != nil {
		t.Fatalf("expected no results for empty query, got %v", st.SearchResults)
	}
	if got := len(m.ActiveList()); got != 3 {
		t.Fatalf("expected active list to fall back to full collection, got %d entries", got)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	m := loadedMachine()
	m.Search("README")
	if st := m.State(); len(st.SearchResults) != 1 || st.SearchResults[0].Path != "docs/readme.md" {
		t.Fatalf("unexpected results %v", st.SearchResults)
	}
}

func TestNextPreviousBoundaries(t *testing.T) {
	m := loadedMachine()
	m.Previous()
	if st := m.State(); st.SelectedPath != "src/app.ts" {
		t.Fatalf("Previous at index 0 moved selection to %q", st.SelectedPath)
	}
	m.Next()
	if st := m.State(); st.SelectedPath != "src/util/b.py" {
		t.Fatalf("Next moved to %q", st.SelectedPath)
	}
	m.Next()
	m.Next() // already at the last entry
	if st := m.State(); st.SelectedPath != "docs/readme.md" {
		t.Fatalf("Next at last index moved selection to %q", st.SelectedPath)
	}
}

func TestNextWalksSearchResultsWhenActive(t *testing.T) {
	m := loadedMachine()
	m.Search("src")
	if st := m.State(); st.SelectedPath != "src/app.ts" {
		t.Fatalf("unexpected selection %q", st.SelectedPath)
	}
	m.Next()
	if st := m.State(); st.SelectedPath != "src/util/b.py" {
		t.Fatalf("expected next search result, got %q", st.SelectedPath)
	}
	m.Next() // boundary of the two-entry result list
	if st := m.State(); st.SelectedPath != "src/util/b.py" {
		t.Fatalf("boundary Next moved selection to %q", st.SelectedPath)
	}
}

func TestNextExpandsAncestorsOfNewSelection(t *testing.T) {
	m := loadedMachine()
	m.CollapseAll()
	m.Next()
	if !hasExpanded(m, "src") || !hasExpanded(m, "src/util") {
		t.Fatalf("expected ancestors of new selection expanded, got %v", expanded(m))
	}
}

func TestSelectionPosition(t *testing.T) {
	m := loadedMachine()
	index, total, ok := m.SelectionPosition()
	if !ok || index != 1 || total != 3 {
		t.Fatalf("unexpected position %d/%d ok=%v", index, total, ok)
	}
	m.Search("b.py")
	index, total, ok = m.SelectionPosition()
	if !ok || index != 1 || total != 1 {
		t.Fatalf("unexpected position within results: %d/%d ok=%v", index, total, ok)
	}
}

func TestToggles(t *testing.T) {
	m := loadedMachine()
	st := m.State()
	m.ToggleTreeVisible()
	if m.State().TreeVisible == st.TreeVisible {
		t.Fatalf("tree visibility did not flip")
	}
	m.ToggleViewMode()
	if m.State().ViewMode != ViewSplit {
		t.Fatalf("expected split view, got %v", m.State().ViewMode)
	}
	m.ToggleTheme()
	if m.State().Theme != ThemeDark {
		t.Fatalf("expected dark theme, got %v", m.State().Theme)
	}
	m.ToggleWhitespace()
	m.ToggleIndentGuides()
	if !m.State().ShowWhitespace || !m.State().IndentGuides {
		t.Fatalf("expected whitespace and indent guides enabled")
	}
}

func TestToggleSyntaxHighlightKeepsSelection(t *testing.T) {
	m := loadedMachine()
	if err := m.Select("src/app.ts"); err != nil {
		t.Fatalf("select: %v", err)
	}
	m.ToggleSyntaxHighlight()
	st := m.State()
	if st.SyntaxHighlight {
		t.Fatalf("expected syntax highlight off")
	}
	if st.SelectedPath != "src/app.ts" {
		t.Fatalf("toggle changed selection to %q", st.SelectedPath)
	}
	m.ToggleSyntaxHighlight()
	if !m.State().SyntaxHighlight {
		t.Fatalf("expected syntax highlight back on")
	}
}

func TestStateSnapshotUnaffectedByLaterTransitions(t *testing.T) {
	m := loadedMachine()
	snap := m.State()
	m.ExpandAll()
	m.ToggleTheme()
	if _, ok := snap.ExpandedDirs["docs"]; ok {
		t.Fatalf("earlier snapshot observed a later transition")
	}
	if snap.Theme != ThemeLight {
		t.Fatalf("earlier snapshot observed theme change")
	}
}
