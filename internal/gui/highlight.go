package gui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	. "modernc.org/tk9.0"

	"github.com/hexbee/git-diff-viewer/internal/nav"
)

func (r *diffRenderer) applySyntaxHighlight(w *TextWidget, rows []diffRow, language string) {
	lexer := lexerForLanguage(language)
	if lexer == nil {
		return
	}
	style := styleForTheme(r.cfg.Theme)
	if style == nil {
		return
	}
	for i, row := range rows {
		if !row.code || row.text == "" {
			continue
		}
		code := row.text[row.codeOffset:]
		r.highlightCodeLine(w, lexer, style, code, i+1, row.codeOffset)
	}
}

func (r *diffRenderer) highlightCodeLine(w *TextWidget, lexer chroma.Lexer, style *chroma.Style, code string, lineNo, offset int) {
	if w == nil || code == "" {
		return
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return
	}
	col := offset
	for _, token := range iterator.Tokens() {
		value := token.Value
		if value == "" {
			continue
		}
		length := utf8.RuneCountInString(value)
		entry := style.Get(token.Type)
		color := colorFromEntry(entry)
		if color != "" {
			tag := r.syntaxTagForColor(w, color)
			if tag != "" {
				start := fmt.Sprintf("%d.%d", lineNo, col)
				end := fmt.Sprintf("%d.%d", lineNo, col+length)
				w.TagAdd(tag, start, end)
			}
		}
		col += length
	}
}

func (r *diffRenderer) syntaxTagForColor(w *TextWidget, color string) string {
	if color == "" || w == nil {
		return ""
	}
	tags := r.syntaxTags[w]
	if tags == nil {
		tags = make(map[string]string)
		r.syntaxTags[w] = tags
	}
	if tag, ok := tags[color]; ok {
		return tag
	}
	tag := fmt.Sprintf("syntax_%d", len(tags))
	w.TagConfigure(tag, Foreground(color))
	tags[color] = tag
	return tag
}

func (r *diffRenderer) clearSyntaxTags(w *TextWidget) {
	if w == nil {
		return
	}
	for _, tag := range r.syntaxTags[w] {
		w.TagRemove(tag, "1.0", END)
	}
}

func styleForTheme(theme nav.Theme) *chroma.Style {
	if theme == nav.ThemeDark {
		if st := styles.Get("github-dark"); st != nil {
			return st
		}
	} else {
		if st := styles.Get("github"); st != nil {
			return st
		}
	}
	return styles.Fallback
}

func colorFromEntry(entry chroma.StyleEntry) string {
	if entry.Colour.IsSet() {
		col := entry.Colour.String()
		col = strings.TrimPrefix(strings.ToLower(col), "#")
		return "#" + col
	}
	return ""
}

func lexerForLanguage(language string) chroma.Lexer {
	if language == "" {
		return nil
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}
