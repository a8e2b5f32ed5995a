// Package view maps navigation state to the model consumed by the diff
// renderer: content blobs, breadcrumbs, transient notices, and the renderer
// lifecycle on configuration changes.
package view

import (
	"strings"

	"github.com/hexbee/git-diff-viewer/internal/nav"
	"github.com/hexbee/git-diff-viewer/internal/patch"
)

// Blob is one side of the rendered diff.
type Blob struct {
	Text     string
	Language string
}

// RenderRequest carries the two sides of the selected file.
type RenderRequest struct {
	Original Blob
	Modified Blob
}

// Config is the renderer-facing subset of the navigation state. Changing
// any of these requires the renderer to be rebuilt, not patched in place.
type Config struct {
	Theme           nav.Theme
	SideBySide      bool
	ShowWhitespace  bool
	IndentGuides    bool
	SyntaxHighlight bool
}

// ConfigFrom extracts the renderer configuration from a state snapshot.
func ConfigFrom(st nav.State) Config {
	return Config{
		Theme:           st.Theme,
		SideBySide:      st.ViewMode == nav.ViewSplit,
		ShowWhitespace:  st.ShowWhitespace,
		IndentGuides:    st.IndentGuides,
		SyntaxHighlight: st.SyntaxHighlight,
	}
}

// EffectiveLanguage is the language tag actually sent to the renderer: the
// file's detected language, or plaintext while syntax highlighting is off.
func EffectiveLanguage(fc patch.FileChange, syntaxHighlight bool) string {
	if !syntaxHighlight || fc.Language == "" {
		return patch.PlainText
	}
	return fc.Language
}

// RequestFor builds the render request for a file under the given config.
func RequestFor(fc patch.FileChange, cfg Config) RenderRequest {
	lang := EffectiveLanguage(fc, cfg.SyntaxHighlight)
	return RenderRequest{
		Original: Blob{Text: fc.OriginalContent, Language: lang},
		Modified: Blob{Text: fc.ModifiedContent, Language: lang},
	}
}

// Segment is one element of the breadcrumb trail.
type Segment struct {
	Name string
	Path string
}

// Breadcrumbs splits a file path into segments with accumulated prefixes:
// "a/b/c.go" yields (a, a), (b, a/b), (c.go, a/b/c.go).
func Breadcrumbs(path string) []Segment {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		segments = append(segments, Segment{
			Name: part,
			Path: strings.Join(parts[:i+1], "/"),
		})
	}
	return segments
}

// Watermark is the transient indicator shown when the selection changes.
type Watermark struct {
	Path  string
	Index int
	Total int
}
