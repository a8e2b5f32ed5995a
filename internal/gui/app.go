// Package gui is the Tk frontend: it renders the file tree, the diff panes,
// breadcrumbs and transient notices, and feeds user events into the
// navigation state machine. All state transitions run on the Tk event loop;
// background work posts its results back with PostEvent.
package gui

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	. "modernc.org/tk9.0"
	_ "modernc.org/tk9.0/themes/azure" // load theme

	"github.com/hexbee/git-diff-viewer/internal/debounce"
	"github.com/hexbee/git-diff-viewer/internal/nav"
	"github.com/hexbee/git-diff-viewer/internal/patch"
	"github.com/hexbee/git-diff-viewer/internal/source"
	"github.com/hexbee/git-diff-viewer/internal/view"
)

const (
	searchDebounceDelay    = 240 * time.Millisecond
	autoReloadDebounceTime = 350 * time.Millisecond
)

// RunConfig describes the parameters that control the GUI runtime.
type RunConfig struct {
	Source          source.Source
	ThemePreference ThemePreference
	ViewMode        nav.ViewMode
	TreeVisible     bool
	SyntaxHighlight bool
	ShowWhitespace  bool
	IndentGuides    bool
	AutoReload      bool
	Verbose         bool
}

type controllerConfig struct {
	autoReload bool
	verbose    bool
}

type controllerTheme struct {
	pref    ThemePreference
	palette colorPalette
}

type searchState struct {
	entry *TEntryWidget

	mu        sync.Mutex
	debouncer *debounce.Debouncer
	pending   string
}

type noticeState struct {
	watermark *view.Notice
	copied    *view.Notice
}

type Controller struct {
	src     source.Source
	cfg     controllerConfig
	machine *nav.Machine

	theme     controllerTheme
	ui        uiState
	tree      treeState
	search    searchState
	shortcuts shortcutsUIState
	watch     autoReloadState
	notices   noticeState
	renderer  view.Renderer
	loading   bool
}

func Run(cfg RunConfig) error {
	if cfg.Source == nil {
		return fmt.Errorf("patch source not specified")
	}
	pref := cfg.ThemePreference
	if pref < ThemeAuto || pref > ThemeDark {
		pref = ThemeAuto
	}
	machine := nav.New(nav.State{
		TreeVisible:     cfg.TreeVisible,
		ViewMode:        cfg.ViewMode,
		Theme:           resolveTheme(pref),
		ShowWhitespace:  cfg.ShowWhitespace,
		IndentGuides:    cfg.IndentGuides,
		SyntaxHighlight: cfg.SyntaxHighlight,
	})
	app := &Controller{
		src: cfg.Source,
		cfg: controllerConfig{
			autoReload: cfg.AutoReload,
			verbose:    cfg.Verbose,
		},
		machine: machine,
		theme: controllerTheme{
			pref: pref,
		},
	}
	return app.run()
}

func (a *Controller) run() error {
	defer a.shutdown()
	level := slog.LevelInfo
	if a.cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	a.theme.palette = paletteForTheme(a.machine.State().Theme)
	if err := ActivateTheme(a.theme.palette.ThemeName); err != nil {
		slog.Error(
			"activate theme",
			slog.String("theme", a.theme.palette.ThemeName),
			slog.Any("error", err),
		)
	}
	a.buildUI()
	a.initMenubar()
	a.notices.watermark = view.NewNotice(view.WatermarkDelay, func() {
		PostEvent(a.clearWatermark, false)
	})
	a.notices.copied = view.NewNotice(view.CopyNoticeDelay, func() {
		PostEvent(a.clearCopyNotice, false)
	})
	a.initAutoReload(a.cfg.autoReload)
	a.setStatus("Loading patch...")
	a.reloadPatchAsync()
	App.WmTitle(fmt.Sprintf("git-diff-viewer: %s", a.src.Describe()))
	App.SetResizable(true, true)
	App.Center().Wait()
	return nil
}

func (a *Controller) shutdown() {
	a.disableAutoReload()
	if a.notices.watermark != nil {
		a.notices.watermark.Cancel()
	}
	if a.notices.copied != nil {
		a.notices.copied.Cancel()
	}
}

func (a *Controller) reloadPatchAsync() {
	if a.loading {
		return
	}
	a.loading = true
	slog.Debug("reloadPatchAsync start", slog.String("source", a.src.Describe()))
	go func() {
		text, err := a.src.Load()
		PostEvent(func() {
			a.loading = false
			if err != nil {
				slog.Error("load patch", slog.Any("error", err))
				a.setStatus(fmt.Sprintf("Failed to load patch: %v", err))
				return
			}
			a.applyPatchText(text)
		}, false)
	}()
}

// applyPatchText replaces the file collection. An empty result leaves the
// existing view untouched; "0 files found" is the only symptom of a patch
// made entirely of unparsable segments.
func (a *Controller) applyPatchText(text string) {
	files := patch.Parse(text)
	slog.Debug("patch parsed", slog.Int("files", len(files)))
	if len(files) == 0 {
		a.setStatus("0 files found in patch.")
		return
	}
	a.machine.Load(files)
	a.resetSearchEntry()
	a.rebuildTree()
	a.rebuildRenderer(false)
	a.renderSelection(true)
	a.setStatus(a.statusSummary())
}

// renderSelection pushes the current selection into the tree widget, the
// breadcrumb bar, and the diff renderer.
func (a *Controller) renderSelection(showWatermark bool) {
	st := a.machine.State()
	a.syncTreeSelection()
	a.rebuildBreadcrumbs(st.SelectedPath)
	fc, ok := a.machine.Selected()
	if !ok {
		if a.renderer != nil {
			a.renderer.SetContent(view.RenderRequest{})
		}
		a.clearWatermark()
		return
	}
	if a.renderer != nil {
		a.renderer.SetContent(view.RequestFor(fc, view.ConfigFrom(st)))
	}
	if showWatermark {
		a.showWatermark()
	}
}

// refreshRenderer rebuilds the diff renderer after a display toggle: view
// state is saved, the old instance disposed, and the state restored into
// the replacement since the displayed file is unchanged.
func (a *Controller) refreshRenderer() {
	a.rebuildRenderer(true)
}

func (a *Controller) rebuildRenderer(sameContent bool) {
	cfg := view.ConfigFrom(a.machine.State())
	a.renderer = view.Reconfigure(a.renderer, cfg, a.newDiffRenderer, sameContent)
	if fc, ok := a.machine.Selected(); ok {
		a.renderer.SetContent(view.RequestFor(fc, cfg))
	}
}

func (a *Controller) nextFile() {
	a.machine.Next()
	a.renderSelection(true)
}

func (a *Controller) previousFile() {
	a.machine.Previous()
	a.renderSelection(true)
}

func (a *Controller) selectPath(path string) {
	if err := a.machine.Select(path); err != nil {
		slog.Error("select file", slog.Any("error", err))
		return
	}
	a.renderSelection(true)
}

func (a *Controller) toggleViewMode() {
	a.machine.ToggleViewMode()
	a.applyPaneLayout()
	a.refreshRenderer()
}

func (a *Controller) toggleTheme() {
	a.machine.ToggleTheme()
	a.theme.palette = paletteForTheme(a.machine.State().Theme)
	if err := ActivateTheme(a.theme.palette.ThemeName); err != nil {
		slog.Error("activate theme", slog.Any("error", err))
	}
	a.applyTreeRowColors()
	a.refreshRenderer()
}

func (a *Controller) toggleWhitespace() {
	a.machine.ToggleWhitespace()
	a.refreshRenderer()
}

func (a *Controller) toggleIndentGuides() {
	a.machine.ToggleIndentGuides()
	a.refreshRenderer()
}

// toggleSyntaxHighlight re-derives the language sent to the renderer for
// the current selection; selection and scroll position stay put.
func (a *Controller) toggleSyntaxHighlight() {
	a.machine.ToggleSyntaxHighlight()
	a.refreshRenderer()
}

func (a *Controller) toggleTreeVisible() {
	a.machine.ToggleTreeVisible()
	a.applyTreeVisibility()
}

func (a *Controller) statusSummary() string {
	st := a.machine.State()
	total := len(a.machine.Files())
	if st.SearchQuery != "" {
		return fmt.Sprintf("%d of %d files match %q.", len(st.SearchResults), total, st.SearchQuery)
	}
	if total == 1 {
		return "1 file."
	}
	return fmt.Sprintf("%d files.", total)
}

func (a *Controller) setStatus(msg string) {
	if a.ui.status == nil {
		return
	}
	a.ui.status.Configure(Txt(msg))
}
