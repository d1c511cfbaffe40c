// Package ignore implements gitignore-style path matching used to keep
// files and directories out of a scanned notebook.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-root ignore file the scanner picks up automatically.
const FileName = ".notebookignore"

// Pattern is a single compiled ignore rule.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled form of Line.
	Negate bool           // Rule started with '!'; a match re-includes the path.
	Line   string         // Original pattern text.
	LineNo int            // 1-based position among the compiled rules.
}

// Matcher holds an ordered list of patterns. Later patterns win.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.patterns) }

// CompileLines adds patterns from raw lines. Blank lines and '#' comments are
// skipped; lines that do not compile are logged and skipped.
func (m *Matcher) CompileLines(lines ...string) {
	for _, line := range lines {
		lineNo := len(m.patterns) + 1
		re, negate, ok := parseLine(line)
		if !ok {
			continue
		}
		if re == nil {
			m.logger.Warn("Skipping invalid ignore pattern", zap.String("pattern", line), zap.Int("lineNo", lineNo))
			continue
		}
		m.patterns = append(m.patterns, &Pattern{Regexp: re, Negate: negate, Line: line, LineNo: lineNo})
		m.logger.Debug("Compiled ignore pattern",
			zap.String("pattern", line),
			zap.Int("lineNo", lineNo),
			zap.Bool("negate", negate))
	}
}

// CompileFile adds the patterns found in path. A missing file is not an error.
func (m *Matcher) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file not present", zap.String("filePath", path))
			return nil
		}
		return fmt.Errorf("read ignore file %s: %w", path, err)
	}
	lines := strings.Split(string(content), "\n")
	m.CompileLines(lines...)
	m.logger.Debug("Loaded ignore file", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

// MatchesPath reports whether rel, a path relative to the scan root, is
// ignored. Directories are matched with a trailing slash so that patterns
// ending in '/' only apply to them.
func (m *Matcher) MatchesPath(rel string, isDir bool) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	p := filepath.ToSlash(rel)
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}

	matched := false
	for _, pattern := range m.patterns {
		if pattern.Regexp.MatchString(p) {
			matched = !pattern.Negate
		}
	}
	return matched
}

const (
	dirsPlaceholder    = "\x00DIRS\x00"
	prefixPlaceholder  = "\x00PREFIX\x00"
	suffixPlaceholder  = "\x00SUFFIX\x00"
	specialChars       = `.+()|^$[]{}`
	anyPrefixExpansion = `(.*/)?`
)

// parseLine converts one ignore line to a regexp. ok is false for blank and
// comment lines; a nil regexp with ok set means the line failed to compile.
func parseLine(line string) (re *regexp.Regexp, negate bool, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false
	}
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	anchored := strings.HasPrefix(trimmed, "/")
	pattern := strings.TrimPrefix(trimmed, "/")

	for _, c := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(c), `\`+string(c))
	}
	pattern = strings.ReplaceAll(pattern, "/**/", dirsPlaceholder)
	if strings.HasSuffix(pattern, "/**") {
		pattern = strings.TrimSuffix(pattern, "/**") + suffixPlaceholder
	}
	if strings.HasPrefix(pattern, "**/") {
		pattern = prefixPlaceholder + strings.TrimPrefix(pattern, "**/")
	}
	pattern = strings.ReplaceAll(pattern, "*", `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	pattern = strings.ReplaceAll(pattern, dirsPlaceholder, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, suffixPlaceholder, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, prefixPlaceholder, anyPrefixExpansion)

	if strings.HasSuffix(trimmed, "/") {
		pattern += `(.*)$`
	} else {
		pattern += `(/.*)?$`
	}
	if anchored {
		pattern = "^" + pattern
	} else {
		pattern = "^" + anyPrefixExpansion + pattern
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, negate, true
	}
	return compiled, negate, true
}
