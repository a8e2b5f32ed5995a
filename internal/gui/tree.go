package gui

import (
	"fmt"
	"log/slog"
	"strings"

	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/gui/tkutil"
	"github.com/hexbee/git-diff-viewer/internal/patch"
	"github.com/hexbee/git-diff-viewer/internal/tree"
)

type treeState struct {
	widget   *TTreeviewWidget
	idByPath map[string]string
	pathByID map[string]string
	// syncing suppresses the treeview event handlers while the widget is
	// being driven from state rather than by the user.
	syncing bool
}

// rebuildTree repopulates the treeview from the current file tree. Item ids
// are assigned in insertion order, so they are stable for one collection but
// carry no meaning across reloads; pathByID is the source of truth.
func (a *Controller) rebuildTree() {
	if a.tree.widget == nil {
		return
	}
	a.tree.syncing = true
	defer func() { a.tree.syncing = false }()

	a.clearTreeRows()
	a.tree.idByPath = make(map[string]string)
	a.tree.pathByID = make(map[string]string)
	next := 0
	expanded := a.machine.State().ExpandedDirs
	var insert func(parentID string, nodes []*tree.Node)
	insert = func(parentID string, nodes []*tree.Node) {
		for _, node := range nodes {
			id := fmt.Sprintf("n%d", next)
			next++
			a.tree.idByPath[node.Path] = id
			a.tree.pathByID[id] = node.Path
			_, open := expanded[node.Path]
			a.insertTreeItem(parentID, id, node, open)
			if node.IsDir {
				insert(id, node.Children)
			}
		}
	}
	insert("", a.machine.Root().Children)
}

func (a *Controller) insertTreeItem(parentID, id string, node *tree.Node, open bool) {
	label := node.Name
	tag := ""
	if !node.IsDir {
		label = fmt.Sprintf("%s %s", node.Status.Glyph(), node.Name)
		switch node.Status {
		case patch.StatusAdded:
			tag = "fileAdded"
		case patch.StatusDeleted:
			tag = "fileDeleted"
		}
	}
	parent := "{}"
	if parentID != "" {
		parent = parentID
	}
	openFlag := 0
	if open {
		openFlag = 1
	}
	cmd := fmt.Sprintf("%s insert %s end -id %s -text {%s} -open %d",
		a.tree.widget, parent, id, escapeTclString(label), openFlag)
	if tag != "" {
		cmd += fmt.Sprintf(" -tags {%s}", tag)
	}
	if _, err := tkutil.Eval("%s", cmd); err != nil {
		slog.Error("tree insert", slog.String("path", node.Path), slog.Any("error", err))
	}
}

func (a *Controller) clearTreeRows() {
	if a.tree.widget == nil {
		return
	}
	if _, err := tkutil.Eval("%s delete [%s children {}]", a.tree.widget, a.tree.widget); err != nil {
		slog.Error("tree clear", slog.Any("error", err))
	}
}

// syncTreeSelection drives the widget to the machine's state: directory open
// flags first, then the selected row.
func (a *Controller) syncTreeSelection() {
	if a.tree.widget == nil {
		return
	}
	a.tree.syncing = true
	defer func() { a.tree.syncing = false }()

	a.syncTreeOpenStates()
	st := a.machine.State()
	id, ok := a.tree.idByPath[st.SelectedPath]
	if !ok {
		return
	}
	a.tree.widget.Selection("set", id)
	a.tree.widget.Focus(id)
	a.tree.widget.See(id)
}

func (a *Controller) syncTreeOpenStates() {
	expanded := a.machine.State().ExpandedDirs
	for path, id := range a.tree.idByPath {
		node := a.machine.Root().Find(path)
		if node == nil || !node.IsDir {
			continue
		}
		openFlag := 0
		if _, ok := expanded[path]; ok {
			openFlag = 1
		}
		if _, err := tkutil.Eval("%s item %s -open %d", a.tree.widget, id, openFlag); err != nil {
			slog.Error("tree open state", slog.String("path", path), slog.Any("error", err))
		}
	}
}

func (a *Controller) onTreeSelectionChanged() {
	if a.tree.syncing || a.tree.widget == nil {
		return
	}
	sel := a.tree.widget.Selection("")
	if len(sel) == 0 {
		return
	}
	path, ok := a.tree.pathByID[sel[0]]
	if !ok {
		return
	}
	node := a.machine.Root().Find(path)
	if node == nil || node.IsDir {
		return
	}
	a.selectPath(path)
}

// onTreeToggled records a user expand or collapse in the machine so the
// state survives the next full sync.
func (a *Controller) onTreeToggled(opened bool) {
	if a.tree.syncing || a.tree.widget == nil {
		return
	}
	id := strings.TrimSpace(tkutil.EvalOrEmpty("%s focus", a.tree.widget))
	path, ok := a.tree.pathByID[id]
	if !ok {
		return
	}
	expanded := a.machine.State().ExpandedDirs
	_, isExpanded := expanded[path]
	if opened != isExpanded {
		a.machine.ToggleDir(path)
	}
}

func (a *Controller) expandAllDirs() {
	a.machine.ExpandAll()
	a.tree.syncing = true
	a.syncTreeOpenStates()
	a.tree.syncing = false
}

func (a *Controller) collapseAllDirs() {
	a.machine.CollapseAll()
	a.tree.syncing = true
	a.syncTreeOpenStates()
	a.tree.syncing = false
}
