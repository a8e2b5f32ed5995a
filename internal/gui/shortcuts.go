package gui

import (
	"fmt"
	"log/slog"
	"strings"

	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/gui/tkutil"
)

type shortcutsUIState struct {
	window *ToplevelWidget
}

func (a *Controller) bindShortcuts() {
	bindNav := func(sequence string, handler func()) {
		Bind(App, sequence, Command(func() {
			if a.searchHasFocus() {
				return
			}
			handler()
		}))
	}
	bindAny := func(sequence string, handler func()) {
		Bind(App, sequence, Command(handler))
	}
	for _, sc := range a.shortcutBindings() {
		if sc.handler == nil {
			continue
		}
		for _, seq := range sc.sequences {
			if seq == "" {
				continue
			}
			if sc.navigation {
				bindNav(seq, sc.handler)
			} else {
				bindAny(seq, sc.handler)
			}
		}
	}
}

type shortcutBinding struct {
	sequences   []string
	display     string
	description string
	category    string
	navigation  bool
	handler     func()
}

func (a *Controller) shortcutBindings() []shortcutBinding {
	return []shortcutBinding{
		{
			category:    "Files",
			display:     "p / k",
			description: "Select the previous file",
			sequences:   []string{"<KeyPress-p>", "<KeyPress-k>"},
			navigation:  true,
			handler:     a.previousFile,
		},
		{
			category:    "Files",
			display:     "n / j",
			description: "Select the next file",
			sequences:   []string{"<KeyPress-n>", "<KeyPress-j>"},
			navigation:  true,
			handler:     a.nextFile,
		},
		{
			category:    "Files",
			display:     "E",
			description: "Expand every directory",
			sequences:   []string{"<KeyPress-E>"},
			navigation:  true,
			handler:     a.expandAllDirs,
		},
		{
			category:    "Files",
			display:     "C",
			description: "Collapse every directory",
			sequences:   []string{"<KeyPress-C>"},
			navigation:  true,
			handler:     a.collapseAllDirs,
		},
		{
			category:    "Files",
			display:     "c",
			description: "Copy the selected file path",
			sequences:   []string{"<KeyPress-c>"},
			navigation:  true,
			handler:     a.copySelectedPath,
		},
		{
			category:    "Diff view",
			display:     "Space",
			description: "Scroll the diff down one page",
			sequences:   []string{"<KeyPress-space>"},
			navigation:  true,
			handler:     func() { a.scrollDiffPages(1) },
		},
		{
			category:    "Diff view",
			display:     "Backspace / b",
			description: "Scroll the diff up one page",
			sequences:   []string{"<KeyPress-BackSpace>", "<KeyPress-b>"},
			navigation:  true,
			handler:     func() { a.scrollDiffPages(-1) },
		},
		{
			category:    "Display",
			display:     "v",
			description: "Switch between unified and side by side",
			sequences:   []string{"<KeyPress-v>"},
			navigation:  true,
			handler:     a.toggleViewMode,
		},
		{
			category:    "Display",
			display:     "t",
			description: "Show or hide the file tree",
			sequences:   []string{"<KeyPress-t>"},
			navigation:  true,
			handler:     a.toggleTreeVisible,
		},
		{
			category:    "Display",
			display:     "d",
			description: "Switch between light and dark theme",
			sequences:   []string{"<KeyPress-d>"},
			navigation:  true,
			handler:     a.toggleTheme,
		},
		{
			category:    "Display",
			display:     "s",
			description: "Toggle syntax highlighting",
			sequences:   []string{"<KeyPress-s>"},
			navigation:  true,
			handler:     a.toggleSyntaxHighlight,
		},
		{
			category:    "Display",
			display:     "w",
			description: "Toggle whitespace markers",
			sequences:   []string{"<KeyPress-w>"},
			navigation:  true,
			handler:     a.toggleWhitespace,
		},
		{
			category:    "Display",
			display:     "i",
			description: "Toggle indent guides",
			sequences:   []string{"<KeyPress-i>"},
			navigation:  true,
			handler:     a.toggleIndentGuides,
		},
		{
			category:    "General",
			display:     "/",
			description: "Focus the search box",
			sequences:   []string{"<KeyPress-/>"},
			navigation:  false,
			handler:     a.focusSearchEntry,
		},
		{
			category:    "General",
			display:     "Escape",
			description: "Leave the search box",
			sequences:   []string{"<KeyPress-Escape>"},
			navigation:  false,
			handler:     a.blurSearchEntry,
		},
		{
			category:    "General",
			display:     "F5",
			description: "Reload the patch",
			sequences:   []string{"<F5>"},
			navigation:  false,
			handler:     a.reloadPatchAsync,
		},
		{
			category:    "General",
			display:     "F1",
			description: "Show shortcut list",
			sequences:   []string{"<F1>"},
			navigation:  false,
			handler:     a.showShortcutsDialog,
		},
		{
			category:    "General",
			display:     "Ctrl+Q",
			description: "Quit git-diff-viewer",
			sequences:   []string{"<Control-KeyPress-q>"},
			navigation:  false,
			handler:     a.quitRequested,
		},
	}
}

func (a *Controller) searchHasFocus() bool {
	if a.search.entry == nil {
		return false
	}
	return Focus() == a.search.entry.String()
}

func (a *Controller) showShortcutsDialog() {
	if a.shortcuts.window != nil {
		Destroy(a.shortcuts.window.Window)
		a.shortcuts.window = nil
	}
	dialog := App.Toplevel()
	a.shortcuts.window = dialog
	dialog.Window.WmTitle("Keyboard Shortcuts")
	WmTransient(dialog.Window, App)
	WmAttributes(dialog.Window, "-topmost", 1)

	frame := dialog.TFrame(Padding("12p"))
	Grid(frame, Row(0), Column(0), Sticky(NEWS))
	GridColumnConfigure(frame.Window, 0, Weight(1))
	GridRowConfigure(frame.Window, 1, Weight(1))

	header := frame.TLabel(Txt("Keyboard Shortcuts"), Anchor(W))
	Grid(header, Row(0), Column(0), Sticky(W), Pady("0 8p"))

	text := frame.Text(Width(62), Height(20), Wrap(WORD), Exportselection(false))
	text.Insert("1.0", a.shortcutsHelpText())
	text.Configure(State("disabled"))
	Grid(text, Row(1), Column(0), Sticky(NEWS))

	closeBtn := frame.TButton(Txt("Close"), Command(func() { Destroy(dialog.Window) }))
	Grid(closeBtn, Row(2), Column(0), Sticky(E), Pady("8p 0"))

	Bind(dialog.Window, "<Destroy>", Command(func() {
		if a.shortcuts.window == dialog {
			a.shortcuts.window = nil
		}
	}))
	dialog.Window.Center()
}

func (a *Controller) scrollDiffPages(delta int) {
	if a.ui.rightText == nil || delta == 0 {
		return
	}
	if _, err := tkutil.Eval("%s yview scroll %d pages", a.ui.rightText, delta); err != nil {
		slog.Error("diff scroll", slog.Any("error", err))
	}
	if a.ui.splitShown && a.ui.leftText != nil {
		if _, err := tkutil.Eval("%s yview scroll %d pages", a.ui.leftText, delta); err != nil {
			slog.Error("diff scroll", slog.Any("error", err))
		}
	}
}

func (a *Controller) focusSearchEntry() {
	if a.search.entry == nil || a.searchHasFocus() {
		return
	}
	if _, err := tkutil.Eval("focus %s", a.search.entry); err != nil {
		slog.Error("focus search", slog.Any("error", err))
	}
	if _, err := tkutil.Eval("%s selection range 0 end", a.search.entry); err != nil {
		slog.Error("select search", slog.Any("error", err))
	}
	if _, err := tkutil.Eval("%s icursor end", a.search.entry); err != nil {
		slog.Error("cursor search", slog.Any("error", err))
	}
}

func (a *Controller) blurSearchEntry() {
	if !a.searchHasFocus() {
		return
	}
	target := App.String()
	if a.tree.widget != nil {
		target = a.tree.widget.String()
	}
	if target == "" {
		target = "."
	}
	if _, err := tkutil.Eval("focus %s", target); err != nil {
		slog.Error("blur search", slog.Any("error", err))
	}
}

func (a *Controller) shortcutsHelpText() string {
	var b strings.Builder
	currentCategory := ""
	for _, sc := range a.shortcutBindings() {
		if sc.category == "" || sc.display == "" || sc.description == "" {
			continue
		}
		if sc.category != currentCategory {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			currentCategory = sc.category
			b.WriteString(currentCategory)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s: %s\n", sc.display, sc.description)
	}
	return strings.TrimRight(b.String(), "\n")
}
