package gui

import (
	"log/slog"

	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/debounce"
)

// applySearch runs a search transition and refreshes everything the result
// can touch: the status line, and the selection when the machine jumped to
// the first match.
func (a *Controller) applySearch(raw string) {
	if a.search.entry != nil && a.search.entry.Textvariable() != raw {
		// The entry moved on while the debounce was pending.
		return
	}
	before := a.machine.State().SelectedPath
	a.machine.Search(raw)
	after := a.machine.State()
	if after.SelectedPath != before {
		a.renderSelection(true)
	} else {
		a.syncTreeSelection()
	}
	a.setStatus(a.statusSummary())
}

func (a *Controller) scheduleSearch(raw string) {
	if raw == "" {
		a.stopSearchDebounce()
		a.applySearch("")
		return
	}
	slog.Debug("scheduleSearch", slog.String("value", raw))
	debouncer := func() *debounce.Debouncer {
		a.search.mu.Lock()
		defer a.search.mu.Unlock()
		a.search.pending = raw
		return debounce.Ensure(&a.search.debouncer, searchDebounceDelay, func() {
			a.flushSearchDebounce()
		})
	}()
	debouncer.Trigger()
}

func (a *Controller) flushSearchDebounce() {
	value := func() string {
		a.search.mu.Lock()
		defer a.search.mu.Unlock()
		val := a.search.pending
		a.search.pending = ""
		return val
	}()
	if value == "" {
		return
	}
	PostEvent(func() {
		a.applySearch(value)
	}, false)
}

func (a *Controller) stopSearchDebounce() {
	a.search.mu.Lock()
	defer a.search.mu.Unlock()
	if deb := a.search.debouncer; deb != nil {
		deb.Stop()
	}
	a.search.debouncer = nil
	a.search.pending = ""
}
