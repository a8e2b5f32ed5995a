package patch

import (
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the fallback language tag for unknown file types.
const PlainText = "plaintext"

// languageByExt covers the extensions patches most commonly carry. Anything
// else falls through to chroma's filename matching.
var languageByExt = map[string]string{
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".go":    "go",
	".h":     "c",
	".hpp":   "cpp",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascript",
	".kt":    "kotlin",
	".md":    "markdown",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".sh":    "shell",
	".sql":   "sql",
	".swift": "swift",
	".ts":    "typescript",
	".tsx":   "typescript",
	".txt":   PlainText,
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
}

// LanguageForPath derives the language tag sent to the diff renderer from
// the file name.
func LanguageForPath(p string) string {
	if p == "" {
		return PlainText
	}
	if lang, ok := languageByExt[strings.ToLower(path.Ext(p))]; ok {
		return lang
	}
	if lexer := lexers.Match(path.Base(p)); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return PlainText
}
