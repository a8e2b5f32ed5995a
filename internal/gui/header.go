package gui

import (
	"fmt"
	"log/slog"

	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/gui/tkutil"
	"github.com/hexbee/git-diff-viewer/internal/view"
)

// rebuildBreadcrumbs replaces the breadcrumb trail for the selected path.
// Clicking a segment copies the path up to and including that segment.
func (a *Controller) rebuildBreadcrumbs(path string) {
	if a.ui.breadcrumb == nil {
		return
	}
	for _, w := range a.ui.crumbs {
		Destroy(w.Window)
	}
	a.ui.crumbs = nil

	segments := view.Breadcrumbs(path)
	col := 0
	for i, seg := range segments {
		if i > 0 {
			sep := a.ui.breadcrumb.TLabel(Txt("/"), Foreground(a.theme.palette.BreadcrumbSep))
			Grid(sep, Row(0), Column(col), Sticky(W))
			a.ui.crumbs = append(a.ui.crumbs, sep)
			col++
		}
		crumb := a.ui.breadcrumb.TLabel(Txt(seg.Name))
		prefix := seg.Path
		Bind(crumb, "<Button-1>", Command(func() {
			a.copyPath(prefix)
		}))
		Grid(crumb, Row(0), Column(col), Sticky(W))
		a.ui.crumbs = append(a.ui.crumbs, crumb)
		col++
	}
}

func (a *Controller) showWatermark() {
	if a.ui.watermark == nil || a.notices.watermark == nil {
		return
	}
	idx, total, ok := a.machine.SelectionPosition()
	if !ok {
		a.clearWatermark()
		return
	}
	w := view.Watermark{
		Path:  a.machine.State().SelectedPath,
		Index: idx,
		Total: total,
	}
	a.ui.watermark.Configure(Txt(fmt.Sprintf("%s (%d/%d)", w.Path, w.Index, w.Total)))
	a.notices.watermark.Show()
}

func (a *Controller) clearWatermark() {
	if a.ui.watermark == nil {
		return
	}
	a.ui.watermark.Configure(Txt(""))
}

func (a *Controller) copySelectedPath() {
	st := a.machine.State()
	if st.SelectedPath == "" {
		return
	}
	a.copyPath(st.SelectedPath)
}

// copyPath puts path on the system clipboard and confirms with a transient
// status message. Clipboard failures are surfaced the same way.
func (a *Controller) copyPath(path string) {
	if path == "" {
		return
	}
	err := func() error {
		if _, err := tkutil.Eval("clipboard clear"); err != nil {
			return err
		}
		_, err := tkutil.Eval("clipboard append -- {%s}", escapeTclString(path))
		return err
	}()
	if err != nil {
		slog.Error("clipboard", slog.Any("error", err))
		a.setStatus(fmt.Sprintf("Copy failed: %v", err))
	} else {
		a.setStatus(fmt.Sprintf("Copied %s to clipboard.", path))
	}
	if a.notices.copied != nil {
		a.notices.copied.Show()
	}
}

func (a *Controller) clearCopyNotice() {
	a.setStatus(a.statusSummary())
}
