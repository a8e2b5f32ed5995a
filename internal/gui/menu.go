package gui

import (
	"fmt"
	"strings"

	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/buildinfo"
	"github.com/hexbee/git-diff-viewer/internal/gui/tkutil"
	"github.com/hexbee/git-diff-viewer/internal/source"
)

func (a *Controller) initMenubar() {
	menubar := Menu(Tearoff(false))

	fileMenu := menubar.Menu(Tearoff(false))
	fileMenu.AddCommand(Lbl("Open Patch..."), Command(a.promptPatchSwitch))
	fileMenu.AddCommand(Lbl("Reload"), Command(a.reloadPatchAsync))
	fileMenu.AddSeparator()
	fileMenu.AddCommand(Lbl("Quit"), Command(a.quitRequested))
	menubar.AddCascade(Lbl("File"), Mnu(fileMenu))

	viewMenu := menubar.Menu(Tearoff(false))
	viewMenu.AddCommand(Lbl("Unified / Side by Side"), Command(a.toggleViewMode))
	viewMenu.AddCommand(Lbl("Light / Dark Theme"), Command(a.toggleTheme))
	viewMenu.AddCommand(Lbl("Show File Tree"), Command(a.toggleTreeVisible))
	viewMenu.AddSeparator()
	viewMenu.AddCommand(Lbl("Syntax Highlighting"), Command(a.toggleSyntaxHighlight))
	viewMenu.AddCommand(Lbl("Whitespace Markers"), Command(a.toggleWhitespace))
	viewMenu.AddCommand(Lbl("Indent Guides"), Command(a.toggleIndentGuides))
	viewMenu.AddSeparator()
	viewMenu.AddCommand(Lbl("Expand All Directories"), Command(a.expandAllDirs))
	viewMenu.AddCommand(Lbl("Collapse All Directories"), Command(a.collapseAllDirs))
	menubar.AddCascade(Lbl("View"), Mnu(viewMenu))

	helpMenu := menubar.Menu(Tearoff(false))
	helpMenu.AddCommand(Lbl("Keyboard Shortcuts"), Command(a.showShortcutsDialog))
	helpMenu.AddCommand(Lbl("About git-diff-viewer"), Command(a.showAboutDialog))
	menubar.AddCascade(Lbl("Help"), Mnu(helpMenu))

	App.Configure(Mnu(menubar))
}

func (a *Controller) promptPatchSwitch() {
	path := strings.TrimSpace(tkutil.EvalOrEmpty(
		"tk_getOpenFile -parent . -title {Open patch file}"))
	if path == "" {
		return
	}
	a.switchSource(source.FileSource{Path: path})
}

func (a *Controller) showAboutDialog() {
	message := fmt.Sprintf("git-diff-viewer %s", buildinfo.String())
	MessageBox(
		Parent(App),
		Title("About git-diff-viewer"),
		Icon("info"),
		Msg(message),
		Type("ok"),
	)
}

// switchSource swaps the patch source at runtime, carrying the auto reload
// setting over to the new source's watch paths.
func (a *Controller) switchSource(src source.Source) {
	a.watch.mu.Lock()
	wasConfigured := a.watch.configured
	wasEnabled := a.watch.enabled
	a.watch.mu.Unlock()

	a.disableAutoReload()
	a.src = src
	a.resetSearchEntry()
	a.setStatus("Loading patch...")

	a.watch.mu.Lock()
	a.watch.configured = wasConfigured && len(src.WatchPaths()) > 0
	stillConfigured := a.watch.configured
	a.watch.mu.Unlock()
	if stillConfigured && wasEnabled {
		if err := a.enableAutoReload(); err != nil {
			a.setStatus(fmt.Sprintf("Auto reload unavailable: %v", err))
		}
	}
	a.updateReloadButtonLabel()
	App.WmTitle(fmt.Sprintf("git-diff-viewer: %s", src.Describe()))
	a.reloadPatchAsync()
}
