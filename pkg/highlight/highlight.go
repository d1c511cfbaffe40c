// Package highlight maps source files to the lexer name the code listings
// are highlighted with. Names come from an external resolver (pygmentize by
// default) and are memoized per file extension for the length of a run.
package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultLexer is used for files whose extension was never resolved.
const DefaultLexer = "text"

// ErrResolver wraps every failure of the external resolver.
var ErrResolver = errors.New("highlighter resolver failed")

// Resolver returns the lexer name for a file path.
type Resolver interface {
	Resolve(path string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (string, error)

func (f ResolverFunc) Resolve(path string) (string, error) { return f(path) }

// Pygmentize resolves lexer names by running `<Command> -N <path>`.
type Pygmentize struct {
	Command string
}

// Resolve runs the command and returns its first output line.
func (p Pygmentize) Resolve(path string) (string, error) {
	command := p.Command
	if command == "" {
		command = "pygmentize"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(command, "-N", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s -N %s: %w: %s", command, path, err, strings.TrimSpace(stderr.String()))
	}
	line, _, _ := strings.Cut(stdout.String(), "\n")
	return line, nil
}

// Extension returns the text after the last '.' in path, or the whole path
// when it contains no '.'.
func Extension(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Cache memoizes resolver results by extension. Entries never expire.
type Cache struct {
	resolver Resolver
	items    *cache.Cache
	logger   *zap.Logger
}

// NewCache returns an empty Cache backed by resolver.
func NewCache(resolver Resolver, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		resolver: resolver,
		// Zero cleanup interval: no janitor goroutine.
		items:  cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

// Resolve returns the lexer for path's extension, calling the resolver only
// the first time an extension is seen. Paths with an empty extension are not
// resolved and yield DefaultLexer.
func (c *Cache) Resolve(path string) (string, error) {
	ext := Extension(path)
	if ext == "" {
		return DefaultLexer, nil
	}
	if lexer, ok := c.items.Get(ext); ok {
		return lexer.(string), nil
	}

	lexer, err := c.resolver.Resolve(path)
	if err != nil {
		c.logger.Error("Failed to resolve lexer", zap.String("path", path), zap.String("extension", ext), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrResolver, err)
	}
	lexer = strings.TrimSpace(lexer)
	if lexer == "" {
		lexer = DefaultLexer
	}
	c.items.Set(ext, lexer, cache.NoExpiration)
	c.logger.Debug("Resolved lexer", zap.String("extension", ext), zap.String("lexer", lexer))
	return lexer, nil
}

// ResolveAll resolves every path in order, stopping at the first failure.
func (c *Cache) ResolveAll(paths []string) error {
	for _, path := range paths {
		if _, err := c.Resolve(path); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the cached lexer for path without resolving, falling back
// to DefaultLexer.
func (c *Cache) Lookup(path string) string {
	if lexer, ok := c.items.Get(Extension(path)); ok {
		return lexer.(string)
	}
	return DefaultLexer
}

// Len reports the number of cached extensions.
func (c *Cache) Len() int { return c.items.ItemCount() }
