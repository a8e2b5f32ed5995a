package view

import (
	"time"

	"github.com/hexbee/git-diff-viewer/internal/debounce"
)

const (
	// WatermarkDelay is how long the file watermark stays on screen.
	WatermarkDelay = 3 * time.Second
	// CopyNoticeDelay is how long the copy confirmation stays on screen.
	CopyNoticeDelay = 2 * time.Second
)

// Notice is a transient on-screen message with auto-clear. Each Notice is
// one timer slot: showing again before expiry resets the pending clear
// rather than stacking a second one.
type Notice struct {
	timer *debounce.Debouncer
}

// NewNotice creates a notice whose clear callback fires delay after the
// most recent Show.
func NewNotice(delay time.Duration, clear func()) *Notice {
	return &Notice{timer: debounce.New(delay, clear)}
}

// Show arms (or re-arms) the auto-clear timer.
func (n *Notice) Show() {
	n.timer.Trigger()
}

// Cancel drops any pending clear without firing it.
func (n *Notice) Cancel() {
	n.timer.Stop()
}
