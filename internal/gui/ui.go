package gui

import (
	"log/slog"

	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/gui/tkutil"
	"github.com/hexbee/git-diff-viewer/internal/nav"
)

type uiState struct {
	mainPane   *TPanedwindowWidget
	treeFrame  *TFrameWidget
	diffPane   *TPanedwindowWidget
	leftFrame  *TFrameWidget
	rightFrame *TFrameWidget
	leftText   *TextWidget
	rightText  *TextWidget

	breadcrumb *TFrameWidget
	crumbs     []*TLabelWidget
	watermark  *TLabelWidget
	status     *TLabelWidget

	treeShown  bool
	splitShown bool
}

func (a *Controller) buildUI() {
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 2, Weight(1))

	controls := App.TFrame(Padding("8p"))
	Grid(controls, Row(0), Column(0), Sticky(WE))
	GridColumnConfigure(controls.Window, 1, Weight(1))

	Grid(controls.TLabel(Txt("Search:"), Anchor(E)), Row(0), Column(0), Sticky(E))
	a.search.entry = controls.TEntry(Width(40), Textvariable(""))
	Grid(a.search.entry, Row(0), Column(1), Sticky(WE), Padx("4p"))

	Bind(a.search.entry, "<KeyRelease>", Command(func() {
		a.scheduleSearch(a.search.entry.Textvariable())
	}))

	clearBtn := controls.TButton(Txt("Clear"), Command(a.clearSearch))
	Grid(clearBtn, Row(0), Column(2), Sticky(E), Padx("4p"))
	a.watch.button = controls.TButton(Txt("Reload"), Command(a.onReloadButton))
	Grid(a.watch.button, Row(0), Column(3), Sticky(E))

	header := App.TFrame(Padding("4p"))
	Grid(header, Row(1), Column(0), Sticky(WE))
	GridColumnConfigure(header.Window, 0, Weight(1))
	a.ui.breadcrumb = header.TFrame()
	Grid(a.ui.breadcrumb, Row(0), Column(0), Sticky(W))
	a.ui.watermark = header.TLabel(Anchor(E), Foreground(a.theme.palette.WatermarkFg))
	Grid(a.ui.watermark, Row(0), Column(1), Sticky(E))

	a.ui.mainPane = App.TPanedwindow(Orient(HORIZONTAL))
	Grid(a.ui.mainPane, Row(2), Column(0), Sticky(NEWS), Padx("4p"), Pady("4p"))

	a.ui.treeFrame = a.ui.mainPane.TFrame()
	diffArea := a.ui.mainPane.TFrame()
	a.ui.mainPane.Add(a.ui.treeFrame.Window)
	a.ui.mainPane.Add(diffArea.Window)
	a.ui.treeShown = true
	a.configurePane(a.ui.mainPane, a.ui.treeFrame.Window, "-weight 1")
	a.configurePane(a.ui.mainPane, diffArea.Window, "-weight 4")

	GridRowConfigure(a.ui.treeFrame.Window, 0, Weight(1))
	GridColumnConfigure(a.ui.treeFrame.Window, 0, Weight(1))
	GridRowConfigure(diffArea.Window, 0, Weight(1))
	GridColumnConfigure(diffArea.Window, 0, Weight(1))

	treeScroll := a.ui.treeFrame.TScrollbar()
	a.tree.widget = a.ui.treeFrame.TTreeview(
		Show("tree"),
		Selectmode("browse"),
		Height(24),
		Yscrollcommand(func(e *Event) { e.ScrollSet(treeScroll) }),
	)
	Grid(a.tree.widget, Row(0), Column(0), Sticky(NEWS))
	Grid(treeScroll, Row(0), Column(1), Sticky(NS))
	treeScroll.Configure(Command(func(e *Event) { e.Yview(a.tree.widget) }))
	a.applyTreeRowColors()

	Bind(a.tree.widget, "<<TreeviewSelect>>", Command(a.onTreeSelectionChanged))
	Bind(a.tree.widget, "<<TreeviewOpen>>", Command(func() { a.onTreeToggled(true) }))
	Bind(a.tree.widget, "<<TreeviewClose>>", Command(func() { a.onTreeToggled(false) }))

	a.ui.diffPane = diffArea.TPanedwindow(Orient(HORIZONTAL))
	Grid(a.ui.diffPane, Row(0), Column(0), Sticky(NEWS))

	a.ui.leftFrame = a.ui.diffPane.TFrame()
	a.ui.rightFrame = a.ui.diffPane.TFrame()
	a.ui.leftText = a.buildDiffText(a.ui.leftFrame)
	a.ui.rightText = a.buildDiffText(a.ui.rightFrame)
	a.ui.diffPane.Add(a.ui.rightFrame.Window)
	a.configurePane(a.ui.diffPane, a.ui.rightFrame.Window, "-weight 1")
	a.ui.splitShown = false
	a.applyPaneLayout()

	a.ui.status = App.TLabel(Anchor(W), Relief(SUNKEN), Padding("4p"))
	Grid(a.ui.status, Row(3), Column(0), Sticky(WE))

	a.applyTreeVisibility()
	a.bindShortcuts()
}

func (a *Controller) buildDiffText(frame *TFrameWidget) *TextWidget {
	GridRowConfigure(frame.Window, 0, Weight(1))
	GridColumnConfigure(frame.Window, 0, Weight(1))
	var text *TextWidget
	yScroll := frame.TScrollbar(Command(func(e *Event) { e.Yview(text) }))
	xScroll := frame.TScrollbar(Orient(HORIZONTAL), Command(func(e *Event) { e.Xview(text) }))
	text = frame.Text(Wrap(NONE), Font(CourierFont(), 11), Exportselection(false), Tabs("1c"))
	text.Configure(Yscrollcommand(func(e *Event) { e.ScrollSet(yScroll) }))
	text.Configure(Xscrollcommand(func(e *Event) { e.ScrollSet(xScroll) }))
	Grid(text, Row(0), Column(0), Sticky(NEWS))
	Grid(yScroll, Row(0), Column(1), Sticky(NS))
	Grid(xScroll, Row(1), Column(0), Sticky(WE))
	text.Configure(State("disabled"))
	return text
}

func (a *Controller) configurePane(pane *TPanedwindowWidget, window *Window, options string) {
	if _, err := tkutil.Eval("%s pane %s %s", pane, window, options); err != nil {
		slog.Error("configure pane", slog.Any("error", err))
	}
}

// applyPaneLayout shows or hides the original-side pane so the diff area
// matches the current view mode.
func (a *Controller) applyPaneLayout() {
	split := a.machine.State().ViewMode == nav.ViewSplit
	if split == a.ui.splitShown {
		return
	}
	if split {
		if _, err := tkutil.Eval("%s insert 0 %s -weight 1", a.ui.diffPane, a.ui.leftFrame.Window); err != nil {
			slog.Error("show original pane", slog.Any("error", err))
			return
		}
	} else {
		if _, err := tkutil.Eval("%s forget %s", a.ui.diffPane, a.ui.leftFrame.Window); err != nil {
			slog.Error("hide original pane", slog.Any("error", err))
			return
		}
	}
	a.ui.splitShown = split
}

func (a *Controller) applyTreeVisibility() {
	visible := a.machine.State().TreeVisible
	if visible == a.ui.treeShown {
		return
	}
	if visible {
		if _, err := tkutil.Eval("%s insert 0 %s -weight 1", a.ui.mainPane, a.ui.treeFrame.Window); err != nil {
			slog.Error("show tree pane", slog.Any("error", err))
			return
		}
	} else {
		if _, err := tkutil.Eval("%s forget %s", a.ui.mainPane, a.ui.treeFrame.Window); err != nil {
			slog.Error("hide tree pane", slog.Any("error", err))
			return
		}
	}
	a.ui.treeShown = visible
}

// applyTreeRowColors reapplies the added/deleted row tags. Called once at
// startup and again after a theme switch.
func (a *Controller) applyTreeRowColors() {
	if a.tree.widget == nil {
		return
	}
	addedColor := a.theme.palette.AddedFileRow
	if addedColor == "" {
		addedColor = lightPalette.AddedFileRow
	}
	deletedColor := a.theme.palette.DeletedRow
	if deletedColor == "" {
		deletedColor = lightPalette.DeletedRow
	}
	a.tree.widget.TagConfigure("fileAdded", Foreground(addedColor))
	a.tree.widget.TagConfigure("fileDeleted", Foreground(deletedColor))
	if a.ui.watermark != nil {
		a.ui.watermark.Configure(Foreground(a.theme.palette.WatermarkFg))
	}
}

func (a *Controller) resetSearchEntry() {
	a.stopSearchDebounce()
	if a.search.entry != nil {
		a.search.entry.Configure(Textvariable(""))
	}
}

func (a *Controller) clearSearch() {
	a.resetSearchEntry()
	a.applySearch("")
}

func (a *Controller) quitRequested() {
	Destroy(App)
}
