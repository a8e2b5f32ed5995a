package patch

import "strings"

const fileSeparator = "diff --git"

// Parse splits raw patch text into per-file change records, in the order
// the files appear in the patch. Segments whose header does not carry the
// usual "a/<old> b/<new>" pair are dropped silently; a patch made entirely
// of such segments simply yields no files. Hunk headers are trusted as
// markers only, line counts in them are never validated against the
// reconstructed content.
func Parse(raw string) []FileChange {
	var files []FileChange
	for _, segment := range strings.Split(raw, fileSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		fc, ok := parseSegment(segment)
		if !ok {
			continue
		}
		files = append(files, fc)
	}
	return files
}

func parseSegment(segment string) (FileChange, bool) {
	lines := strings.Split(segment, "\n")
	oldPath, newPath, ok := parseHeaderPaths(lines[0])
	if !ok {
		return FileChange{}, false
	}
	path := newPath
	if path == "" {
		path = oldPath
	}

	status := StatusModified
	for _, line := range lines {
		if strings.HasPrefix(line, "new file mode") {
			status = StatusAdded
			break
		}
		if strings.HasPrefix(line, "deleted file mode") {
			status = StatusDeleted
			break
		}
	}

	var original, modified strings.Builder
	inHunk := false
	for i, line := range lines[1:] {
		if strings.HasPrefix(line, "@@") {
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}
		// Drop the empty element produced by the segment's trailing
		// newline so the last real line stays the last line.
		if line == "" && i == len(lines)-2 {
			break
		}
		switch {
		case strings.HasPrefix(line, "-"):
			original.WriteString(line[1:])
			original.WriteByte('\n')
		case strings.HasPrefix(line, "+"):
			modified.WriteString(line[1:])
			modified.WriteByte('\n')
		default:
			text := strings.TrimPrefix(line, " ")
			original.WriteString(text)
			original.WriteByte('\n')
			modified.WriteString(text)
			modified.WriteByte('\n')
		}
	}

	return FileChange{
		Path:            path,
		OriginalContent: original.String(),
		ModifiedContent: modified.String(),
		Status:          status,
		Language:        LanguageForPath(path),
	}, true
}

// parseHeaderPaths extracts the "a/<old> b/<new>" pair from the remainder
// of a "diff --git" line. Quoted paths (as emitted by git for names with
// spaces or non-ASCII bytes) are unquoted.
func parseHeaderPaths(line string) (oldPath, newPath string, ok bool) {
	tokens := headerTokens(strings.TrimSpace(line))
	for _, token := range tokens {
		switch {
		case oldPath == "" && strings.HasPrefix(token, "a/"):
			oldPath = token[len("a/"):]
		case newPath == "" && strings.HasPrefix(token, "b/"):
			newPath = token[len("b/"):]
		}
	}
	if oldPath == "" && newPath == "" {
		return "", "", false
	}
	return oldPath, newPath, true
}

func headerTokens(s string) []string {
	var tokens []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		if s[0] == '"' {
			var buf strings.Builder
			escaped := false
			i := 1
			for i < len(s) {
				ch := s[i]
				if escaped {
					buf.WriteByte(ch)
					escaped = false
					i++
					continue
				}
				if ch == '\\' {
					escaped = true
					i++
					continue
				}
				if ch == '"' {
					i++
					break
				}
				buf.WriteByte(ch)
				i++
			}
			tokens = append(tokens, buf.String())
			s = s[i:]
			continue
		}
		j := 0
		for j < len(s) && s[j] != ' ' && s[j] != '\t' {
			j++
		}
		tokens = append(tokens, s[:j])
		s = s[j:]
	}
	return tokens
}
