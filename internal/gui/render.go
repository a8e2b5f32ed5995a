package gui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/gui/tkutil"
	"github.com/hexbee/git-diff-viewer/internal/patch"
	"github.com/hexbee/git-diff-viewer/internal/view"
)

// diffRenderer owns the text panes for one renderer configuration. A config
// change disposes the instance and builds a fresh one; scroll position moves
// across via the view-state round trip.
type diffRenderer struct {
	cfg     view.Config
	palette colorPalette
	left    *TextWidget
	right   *TextWidget
	// syntaxTags maps a foreground color to its text tag, per pane.
	syntaxTags map[*TextWidget]map[string]string
}

func (a *Controller) newDiffRenderer(cfg view.Config) view.Renderer {
	r := &diffRenderer{
		cfg:        cfg,
		palette:    a.theme.palette,
		left:       a.ui.leftText,
		right:      a.ui.rightText,
		syntaxTags: map[*TextWidget]map[string]string{},
	}
	r.configureDiffTags(r.left)
	r.configureDiffTags(r.right)
	return r
}

// diffRow is one display line with its tag and the column where code starts.
type diffRow struct {
	text       string
	tag        string
	code       bool
	codeOffset int
}

func (r *diffRenderer) SetContent(req view.RenderRequest) {
	if r.cfg.SideBySide {
		leftRows, rightRows := sideBySideRows(req.Original.Text, req.Modified.Text, r.cfg)
		r.writePane(r.left, leftRows, req.Original.Language)
		r.writePane(r.right, rightRows, req.Modified.Language)
		return
	}
	r.writePane(r.right, unifiedRows(req.Original.Text, req.Modified.Text, r.cfg), req.Modified.Language)
	r.writePane(r.left, nil, patch.PlainText)
}

// SaveViewState captures the vertical scroll fraction of the primary pane.
func (r *diffRenderer) SaveViewState() view.ViewState {
	out := tkutil.EvalOrEmpty("%s yview", r.right)
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return nil
	}
	return fields[0]
}

func (r *diffRenderer) RestoreViewState(state view.ViewState) {
	fraction, ok := state.(string)
	if !ok || fraction == "" {
		return
	}
	if _, err := tkutil.Eval("%s yview moveto %s", r.right, fraction); err != nil {
		slog.Error("restore diff scroll", slog.Any("error", err))
	}
}

func (r *diffRenderer) Dispose() {
	r.clearPane(r.left)
	r.clearPane(r.right)
}

func (r *diffRenderer) configureDiffTags(w *TextWidget) {
	if w == nil {
		return
	}
	w.TagConfigure("diffAdd", Background(r.palette.DiffAdd))
	w.TagConfigure("diffDel", Background(r.palette.DiffDel))
	w.TagConfigure("diffHeader", Background(r.palette.DiffHeader))
}

func (r *diffRenderer) writePane(w *TextWidget, rows []diffRow, language string) {
	if w == nil {
		return
	}
	w.Configure(State(NORMAL))
	w.Delete("1.0", END)
	w.TagRemove("diffAdd", "1.0", END)
	w.TagRemove("diffDel", "1.0", END)
	w.TagRemove("diffHeader", "1.0", END)
	r.clearSyntaxTags(w)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(row.text)
	}
	w.Insert("1.0", b.String())

	for i, row := range rows {
		if row.tag == "" {
			continue
		}
		lineNo := i + 1
		start := fmt.Sprintf("%d.0", lineNo)
		end := fmt.Sprintf("%d.0", lineNo+1)
		if lineNo == len(rows) {
			end = fmt.Sprintf("%d.end", lineNo)
		}
		w.TagAdd(row.tag, start, end)
	}
	if r.cfg.SyntaxHighlight && language != "" && language != patch.PlainText {
		r.applySyntaxHighlight(w, rows, language)
	}
	w.Configure(State("disabled"))
}

func (r *diffRenderer) clearPane(w *TextWidget) {
	if w == nil {
		return
	}
	w.Configure(State(NORMAL))
	w.Delete("1.0", END)
	r.clearSyntaxTags(w)
	w.Configure(State("disabled"))
}

// unifiedRows renders the two sides as one unified listing with three
// context lines around each change.
func unifiedRows(original, modified string, cfg view.Config) []diffRow {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffInputLines(original),
		B:        diffInputLines(modified),
		FromFile: "original",
		ToFile:   "modified",
		Context:  3,
	})
	if err != nil {
		slog.Error("unified diff", slog.Any("error", err))
		return nil
	}
	if text == "" {
		return []diffRow{{text: "(no changes)"}}
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	rows := make([]diffRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, unifiedRow(line, cfg))
	}
	return rows
}

func unifiedRow(line string, cfg view.Config) diffRow {
	switch {
	case strings.HasPrefix(line, "@@"),
		strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, "+++"):
		return diffRow{text: line, tag: "diffHeader"}
	case line == "":
		return diffRow{}
	}
	tag := ""
	switch line[0] {
	case '+':
		tag = "diffAdd"
	case '-':
		tag = "diffDel"
	case ' ':
	default:
		return diffRow{text: line}
	}
	code := displayTransform(line[1:], cfg.ShowWhitespace, cfg.IndentGuides)
	return diffRow{
		text:       line[:1] + code,
		tag:        tag,
		code:       true,
		codeOffset: 1,
	}
}

// sideBySideRows tags changed lines per pane. The panes are not padded into
// lockstep; each side scrolls through its own content.
func sideBySideRows(original, modified string, cfg view.Config) (left, right []diffRow) {
	aLines := splitContentLines(original)
	bLines := splitContentLines(modified)
	row := func(line, tag string) diffRow {
		return diffRow{
			text: displayTransform(line, cfg.ShowWhitespace, cfg.IndentGuides),
			tag:  tag,
			code: true,
		}
	}
	matcher := difflib.NewMatcher(aLines, bLines)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range aLines[op.I1:op.I2] {
				left = append(left, row(line, ""))
			}
			for _, line := range bLines[op.J1:op.J2] {
				right = append(right, row(line, ""))
			}
		case 'r', 'd', 'i':
			for _, line := range aLines[op.I1:op.I2] {
				left = append(left, row(line, "diffDel"))
			}
			for _, line := range bLines[op.J1:op.J2] {
				right = append(right, row(line, "diffAdd"))
			}
		}
	}
	return left, right
}

// diffInputLines splits content into newline-terminated lines for difflib.
// Unlike difflib.SplitLines it does not append a synthetic empty line, so
// hunks touching the end of the file stay free of a trailing blank row.
func diffInputLines(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n"
	return lines
}

func splitContentLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

// displayTransform applies the whitespace and indent-guide markers to one
// code line. Markers replace characters one for one so line lengths in
// runes stay comparable to the input.
func displayTransform(line string, showWhitespace, indentGuides bool) string {
	if line == "" || (!showWhitespace && !indentGuides) {
		return line
	}
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	var b strings.Builder
	for i := 0; i < indent; i++ {
		if indentGuides && i > 0 && i%4 == 0 {
			b.WriteRune('¦')
		} else {
			b.WriteByte(' ')
		}
	}
	rest := line[indent:]
	trailing := 0
	if showWhitespace {
		for trailing < len(rest) && rest[len(rest)-1-trailing] == ' ' {
			trailing++
		}
	}
	body := rest[:len(rest)-trailing]
	if showWhitespace {
		body = strings.ReplaceAll(body, "\t", "→")
	}
	b.WriteString(body)
	for i := 0; i < trailing; i++ {
		b.WriteRune('·')
	}
	return b.String()
}
