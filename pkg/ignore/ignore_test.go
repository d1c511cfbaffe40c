package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesPath(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		isDir    bool
		expected bool
	}{
		{"no patterns", nil, "a.cpp", false, false},
		{"extension wildcard", []string{"*.txt"}, "notes.txt", false, true},
		{"extension wildcard nested", []string{"*.txt"}, "misc/notes.txt", false, true},
		{"extension wildcard miss", []string{"*.txt"}, "misc/notes.cpp", false, false},
		{"directory pattern matches dir", []string{"build/"}, "build", true, true},
		{"directory pattern matches contents", []string{"build/"}, "build/x.cpp", false, true},
		{"directory pattern skips file", []string{"build/"}, "build", false, false},
		{"anchored", []string{"/top.cpp"}, "top.cpp", false, true},
		{"anchored not nested", []string{"/top.cpp"}, "sub/top.cpp", false, false},
		{"double star prefix", []string{"**/scratch"}, "a/b/scratch", true, true},
		{"double star middle", []string{"a/**/z.py"}, "a/b/c/z.py", false, true},
		{"question mark", []string{"v?.cpp"}, "v1.cpp", false, true},
		{"negation", []string{"*.cpp", "!keep.cpp"}, "keep.cpp", false, false},
		{"negation other file", []string{"*.cpp", "!keep.cpp"}, "drop.cpp", false, true},
		{"comments and blanks", []string{"# *.cpp", "", "   "}, "a.cpp", false, false},
		{"escaped hash", []string{`\#draft.txt`}, "#draft.txt", false, true},
		{"dot is literal", []string{"a.c"}, "abc", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			m.CompileLines(tt.patterns...)
			assert.Equal(t, tt.expected, m.MatchesPath(tt.path, tt.isDir))
		})
	}
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.MatchesPath("anything", false))
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("# generated\n*.txt\nscratch/\n"), 0644))

	m := New(nil)
	require.NoError(t, m.CompileFile(path))
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.MatchesPath("a/b.txt", false))
	assert.True(t, m.MatchesPath("scratch", true))
}

func TestCompileFileMissing(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.CompileFile(filepath.Join(t.TempDir(), "absent")))
	assert.Equal(t, 0, m.Len())
}
