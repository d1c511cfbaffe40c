package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validYAML = `document:
  title: Reference
  author: Someone
  university: Uni
  team: Team
  fontsize: 9pt
page:
  paper: letterpaper
  landscape: false
  lmargin: 1cm
  rmargin: 1cm
  tmargin: 2cm
  bmargin: 1cm
  headrulewidth: 0.4pt
  footrulewidth: 0pt
  headheight: 12pt
  headsep: 3mm
  footskip: 0pt
  columnsep: 5mm
columns:
  body: 1
  toc: 2
  separate_toc: true
code:
  tabsize: 2
  linenos: true
  numbersep: 1mm
  mathescape: false
  autogobble: true
  showspaces: false
  showtabs: false
  breaklines: true
  breakanywhere: false
  breakautoindent: true
  frame: single
  framesep: 1mm
  framerule: 0.2pt
  style: friendly
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notebook.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "Reference", cfg.Document.Title)
	assert.Equal(t, "9pt", cfg.Document.FontSize)
	assert.Equal(t, "letterpaper", cfg.Page.Paper)
	assert.False(t, cfg.Page.Landscape)
	assert.Equal(t, 1, cfg.Columns.Body)
	assert.Equal(t, 2, cfg.Columns.TOC)
	assert.True(t, cfg.Columns.SeparateTOC)
	assert.Equal(t, 2, cfg.Code.TabSize)
	assert.Equal(t, "single", cfg.Code.Frame)
	assert.Equal(t, "friendly", cfg.Code.Style)
	assert.True(t, cfg.Compliant())
	assert.True(t, cfg.Multicol())
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr error
		errText string
	}{
		{
			name:    "missing field",
			mutate:  func(s string) string { return strings.Replace(s, "  style: friendly\n", "", 1) },
			wantErr: ErrMissingField,
			errText: "code.style",
		},
		{
			name:    "null field",
			mutate:  func(s string) string { return strings.Replace(s, "  title: Reference\n", "  title:\n", 1) },
			wantErr: ErrMissingField,
			errText: "document.title",
		},
		{
			name:    "bool given as string",
			mutate:  func(s string) string { return strings.Replace(s, "landscape: false", `landscape: "no"`, 1) },
			errText: "landscape",
		},
		{
			name:    "int given as string",
			mutate:  func(s string) string { return strings.Replace(s, "tabsize: 2", `tabsize: "2"`, 1) },
			errText: "tabsize",
		},
		{
			name:    "string given as int",
			mutate:  func(s string) string { return strings.Replace(s, "title: Reference", "title: 42", 1) },
			errText: "title",
		},
		{
			name:    "float given as int tabsize",
			mutate:  func(s string) string { return strings.Replace(s, "tabsize: 2", "tabsize: 4.7", 1) },
			wantErr: ErrInvalidValue,
			errText: "tabsize",
		},
		{
			name:    "float given as int columns",
			mutate:  func(s string) string { return strings.Replace(s, "body: 1", "body: 2.9", 1) },
			wantErr: ErrInvalidValue,
			errText: "body",
		},
		{
			name:    "unknown field",
			mutate:  func(s string) string { return s + "extra: 1\n" },
			errText: "extra",
		},
		{
			name:    "unknown paper",
			mutate:  func(s string) string { return strings.Replace(s, "paper: letterpaper", "paper: napkin", 1) },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown frame",
			mutate:  func(s string) string { return strings.Replace(s, "frame: single", "frame: double", 1) },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero columns",
			mutate:  func(s string) string { return strings.Replace(s, "body: 1", "body: 0", 1) },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate(validYAML)))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestLoadJSONNumbers(t *testing.T) {
	cfg := Default()
	raw, err := Marshal(cfg)
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &tree))
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "notebook.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NOTEBOOK_PAGE_PAPER", "a4paper")
	t.Setenv("NOTEBOOK_COLUMNS_BODY", "3")
	t.Setenv("NOTEBOOK_COLUMNS_SEPARATE_TOC", "false")
	t.Setenv("NOTEBOOK_CODE_LINENOS", "false")
	t.Setenv("NOTEBOOK_CODE_STYLE", "monokai")

	withoutStyle := strings.Replace(validYAML, "  style: friendly\n", "", 1)
	cfg, err := Load(writeConfig(t, withoutStyle))
	require.NoError(t, err)

	assert.Equal(t, "a4paper", cfg.Page.Paper)
	assert.Equal(t, 3, cfg.Columns.Body)
	assert.False(t, cfg.Columns.SeparateTOC)
	assert.False(t, cfg.Code.LineNos)
	assert.Equal(t, "monokai", cfg.Code.Style)
	assert.Equal(t, 2, cfg.Columns.TOC)
}

func TestLoadEnvOverrideFailures(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		errText string
	}{
		{name: "int", env: "NOTEBOOK_CODE_TABSIZE", value: "four", errText: "NOTEBOOK_CODE_TABSIZE"},
		{name: "bool", env: "NOTEBOOK_PAGE_LANDSCAPE", value: "sideways", errText: "NOTEBOOK_PAGE_LANDSCAPE"},
		{name: "validated", env: "NOTEBOOK_COLUMNS_TOC", value: "0", errText: "columns.toc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load(writeConfig(t, validYAML))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "NOTEBOOK_PAGE_PAPER", EnvVar("page.paper"))
	assert.Equal(t, "NOTEBOOK_COLUMNS_SEPARATE_TOC", EnvVar("columns.separate_toc"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 34)
	assert.Contains(t, keys, "document.title")
	assert.Contains(t, keys, "page.paper")
	assert.Contains(t, keys, "columns.separate_toc")
	assert.Contains(t, keys, "code.breakautoindent")
}

func TestCompliant(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Compliant())
	cfg.Page.Paper = "legalpaper"
	assert.False(t, cfg.Compliant())
	assert.NoError(t, cfg.Validate())
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Write(path, Default(), false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)

	err = Write(path, Default(), false)
	assert.ErrorIs(t, err, ErrExists)
	assert.NoError(t, Write(path, Default(), true))
}
