package view

// ViewState is the renderer's opaque scroll/cursor snapshot, saved before a
// renderer is disposed and restored into its replacement.
type ViewState any

// Renderer models the external diff widget. Implementations own real
// display resources, so Dispose must be called exactly once before a
// replacement is created.
type Renderer interface {
	SetContent(req RenderRequest)
	SaveViewState() ViewState
	RestoreViewState(state ViewState)
	Dispose()
}

// Reconfigure runs the renderer replacement sequence for a configuration
// change: save view state, dispose the old instance, create the new one,
// and restore the saved state when the displayed content is unchanged.
func Reconfigure(old Renderer, cfg Config, create func(Config) Renderer, sameContent bool) Renderer {
	var saved ViewState
	if old != nil {
		saved = old.SaveViewState()
		old.Dispose()
	}
	next := create(cfg)
	if next != nil && sameContent && saved != nil {
		next.RestoreViewState(saved)
	}
	return next
}
