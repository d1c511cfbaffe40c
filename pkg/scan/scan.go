// Package scan walks a source tree and builds the notebook outline from it.
//
// Directories become headings, allowed source files become file entries.
// Hidden entries, files with other extensions and anything more than
// MaxDepth levels below the root are left out without error.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"notebook/pkg/outline"

	"go.uber.org/zap"
)

// DefaultMaxDepth is the deepest level, counted from the root, that is scanned.
const DefaultMaxDepth = 3

// DefaultExtensions lists the file extensions included in a notebook.
var DefaultExtensions = []string{"cpp", "rs", "c", "h", "hpp", "py", "java", "txt"}

// ErrRootNotFound is returned when the scan root does not exist.
var ErrRootNotFound = errors.New("scan root does not exist")

// IgnoreParser matches paths relative to the scan root against ignore rules.
type IgnoreParser interface {
	MatchesPath(rel string, isDir bool) bool
}

// Scanner builds an outline from a directory tree.
type Scanner struct {
	MaxDepth   int
	extensions map[string]bool
	ignore     IgnoreParser
	logger     *zap.Logger
}

// New returns a Scanner using DefaultMaxDepth and DefaultExtensions.
// gi may be nil.
func New(gi IgnoreParser, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scanner{
		MaxDepth:   DefaultMaxDepth,
		extensions: make(map[string]bool, len(DefaultExtensions)),
		ignore:     gi,
		logger:     logger,
	}
	for _, ext := range DefaultExtensions {
		s.extensions[ext] = true
	}
	return s
}

// Allowed reports whether a file name carries an included extension.
func (s *Scanner) Allowed(name string) bool {
	ext := filepath.Ext(name)
	return ext != "" && s.extensions[ext[1:]]
}

// Scan walks root depth-first and returns its outline. Children are visited
// in name order. Any directory read error aborts the scan.
func (s *Scanner) Scan(root string) (outline.Outline, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	s.logger.Debug("Starting scan", zap.String("root", root), zap.Int("maxDepth", s.MaxDepth))
	o, err := s.walk(root, root, info, 0)
	if err != nil {
		s.logger.Error("Scan failed", zap.String("root", root), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("Completed scan", zap.String("root", root), zap.Int("entries", len(o)), zap.Int("files", len(o.Files())))
	return o, nil
}

func (s *Scanner) walk(root, path string, info fs.FileInfo, depth int) (outline.Outline, error) {
	if depth > s.MaxDepth {
		return nil, nil
	}
	name := info.Name()
	if depth > 0 {
		if strings.HasPrefix(name, ".") {
			s.logger.Debug("Skipping hidden entry", zap.String("path", path))
			return nil, nil
		}
		if s.ignore != nil {
			rel, err := filepath.Rel(root, path)
			if err == nil && s.ignore.MatchesPath(rel, info.IsDir()) {
				s.logger.Debug("Skipping ignored entry", zap.String("path", path))
				return nil, nil
			}
		}
	}

	switch {
	case info.IsDir():
		return s.walkDir(root, path, depth)
	case info.Mode().IsRegular():
		return s.walkFile(path, name, depth), nil
	default:
		return nil, nil
	}
}

func (s *Scanner) walkDir(root, dir string, depth int) (outline.Outline, error) {
	if depth >= s.MaxDepth {
		// Nothing below this level can be included.
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}

	var children outline.Outline
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		// Stat rather than entry.Info so symlinks are followed.
		info, err := os.Stat(path)
		if err != nil {
			s.logger.Debug("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
			continue
		}
		sub, err := s.walk(root, path, info, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, sub...)
	}

	if len(children) == 0 || depth == 0 {
		return children, nil
	}
	h := heading(depth, outline.TitleCase(filepath.Base(dir)))
	return append(outline.Outline{h}, children...), nil
}

func (s *Scanner) walkFile(path, name string, depth int) outline.Outline {
	if !s.Allowed(name) {
		s.logger.Debug("Skipping file with excluded extension", zap.String("path", path))
		return nil
	}
	var o outline.Outline
	if depth >= 1 && depth <= 2 {
		o = append(o, heading(depth, outline.TitleCase(strings.TrimSuffix(name, filepath.Ext(name)))))
	}
	return append(o, outline.NewFile(path))
}

func heading(depth int, label string) outline.Entry {
	if depth <= 1 {
		return outline.NewSection(label)
	}
	return outline.NewSubSection(label)
}
