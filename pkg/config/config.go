// Package config loads the notebook configuration: page geometry, header and
// column layout, and the options passed to every highlighted code listing.
//
// The schema is fixed. Every key is required and file values are not
// coerced between types, so a missing key, a quoted number or a fractional
// column count fails the load.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "notebook.yml"

var (
	// ErrMissingField is returned when one or more schema keys are absent.
	ErrMissingField = errors.New("missing configuration field")
	// ErrInvalidValue is returned for a value outside its allowed set or range.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Papers lists the paper names understood by the geometry package.
var Papers = []string{
	"a0paper", "a1paper", "a2paper", "a3paper", "a4paper", "a5paper", "a6paper",
	"b0paper", "b1paper", "b2paper", "b3paper", "b4paper", "b5paper", "b6paper",
	"c0paper", "c1paper", "c2paper", "c3paper", "c4paper", "c5paper", "c6paper",
	"b0j", "b1j", "b2j", "b3j", "b4j", "b5j", "b6j",
	"ansiapaper", "ansibpaper", "ansicpaper", "ansidpaper", "ansiepaper",
	"letterpaper", "executivepaper", "legalpaper",
}

// CompliantPapers are the paper sizes contest rules accept for a notebook.
var CompliantPapers = []string{"a4paper", "letterpaper"}

// Frames lists the frame styles accepted for code listings.
var Frames = []string{"none", "leftline", "topline", "bottomline", "lines", "single"}

type Config struct {
	Document DocumentConfig `mapstructure:"document" yaml:"document"`
	Page     PageConfig     `mapstructure:"page" yaml:"page"`
	Columns  ColumnsConfig  `mapstructure:"columns" yaml:"columns"`
	Code     CodeConfig     `mapstructure:"code" yaml:"code"`
}

type DocumentConfig struct {
	Title      string `mapstructure:"title" yaml:"title"`
	Author     string `mapstructure:"author" yaml:"author"`
	University string `mapstructure:"university" yaml:"university"`
	Team       string `mapstructure:"team" yaml:"team"`
	FontSize   string `mapstructure:"fontsize" yaml:"fontsize"`
}

// PageConfig holds geometry and fancyhdr lengths. Lengths are TeX
// dimensions such as "1cm" or "0.4pt" and are passed through verbatim.
type PageConfig struct {
	Paper         string `mapstructure:"paper" yaml:"paper"`
	Landscape     bool   `mapstructure:"landscape" yaml:"landscape"`
	LMargin       string `mapstructure:"lmargin" yaml:"lmargin"`
	RMargin       string `mapstructure:"rmargin" yaml:"rmargin"`
	TMargin       string `mapstructure:"tmargin" yaml:"tmargin"`
	BMargin       string `mapstructure:"bmargin" yaml:"bmargin"`
	HeadRuleWidth string `mapstructure:"headrulewidth" yaml:"headrulewidth"`
	FootRuleWidth string `mapstructure:"footrulewidth" yaml:"footrulewidth"`
	HeadHeight    string `mapstructure:"headheight" yaml:"headheight"`
	HeadSep       string `mapstructure:"headsep" yaml:"headsep"`
	FootSkip      string `mapstructure:"footskip" yaml:"footskip"`
	ColumnSep     string `mapstructure:"columnsep" yaml:"columnsep"`
}

type ColumnsConfig struct {
	Body        int  `mapstructure:"body" yaml:"body"`
	TOC         int  `mapstructure:"toc" yaml:"toc"`
	SeparateTOC bool `mapstructure:"separate_toc" yaml:"separate_toc"`
}

// CodeConfig holds the minted options shared by every listing.
type CodeConfig struct {
	TabSize         int    `mapstructure:"tabsize" yaml:"tabsize"`
	LineNos         bool   `mapstructure:"linenos" yaml:"linenos"`
	NumberSep       string `mapstructure:"numbersep" yaml:"numbersep"`
	MathEscape      bool   `mapstructure:"mathescape" yaml:"mathescape"`
	AutoGobble      bool   `mapstructure:"autogobble" yaml:"autogobble"`
	ShowSpaces      bool   `mapstructure:"showspaces" yaml:"showspaces"`
	ShowTabs        bool   `mapstructure:"showtabs" yaml:"showtabs"`
	BreakLines      bool   `mapstructure:"breaklines" yaml:"breaklines"`
	BreakAnywhere   bool   `mapstructure:"breakanywhere" yaml:"breakanywhere"`
	BreakAutoIndent bool   `mapstructure:"breakautoindent" yaml:"breakautoindent"`
	Frame           string `mapstructure:"frame" yaml:"frame"`
	FrameSep        string `mapstructure:"framesep" yaml:"framesep"`
	FrameRule       string `mapstructure:"framerule" yaml:"framerule"`
	Style           string `mapstructure:"style" yaml:"style"`
}

// EnvPrefix prefixes the environment variables that override file values.
// A key maps to its variable by upper-casing it and replacing dots with
// underscores: page.paper is NOTEBOOK_PAGE_PAPER.
const EnvPrefix = "NOTEBOOK"

type field struct {
	key  string
	kind reflect.Kind
}

// Keys returns every dotted key of the schema, e.g. "page.paper".
func Keys() []string {
	fields := collectFields(reflect.TypeOf(Config{}), "")
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}

var envKeyReplacer = strings.NewReplacer(".", "_")

func collectFields(t reflect.Type, prefix string) []field {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + f.Tag.Get("mapstructure")
		if f.Type.Kind() == reflect.Struct {
			fields = append(fields, collectFields(f.Type, key+".")...)
			continue
		}
		fields = append(fields, field{key: key, kind: f.Type.Kind()})
	}
	return fields
}

// Load reads and validates the configuration file at path, then applies
// NOTEBOOK_* environment overrides. The file type is taken from its
// extension (yaml, json and toml are supported).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	fields := collectFields(reflect.TypeOf(Config{}), "")

	var missing []string
	for _, f := range fields {
		if !v.IsSet(f.key) {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	if err := applyEnv(v, fields); err != nil {
		return nil, err
	}

	var cfg Config
	strict := func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = false
		dc.DecodeHook = mapstructure.DecodeHookFuncKind(rejectFraction)
	}
	if err := v.UnmarshalExact(&cfg, strict); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv parses every set override into its field's type, so the strict
// decoder sees a bool or an int rather than the raw environment string.
func applyEnv(v *viper.Viper, fields []field) error {
	for _, f := range fields {
		name := EnvVar(f.key)
		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			// viper ignores empty variables too.
			continue
		}
		var value any
		var err error
		switch f.kind {
		case reflect.Bool:
			value, err = strconv.ParseBool(raw)
		case reflect.Int:
			value, err = strconv.Atoi(raw)
		default:
			value = raw
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a %s", ErrInvalidValue, name, raw, f.kind)
		}
		v.Set(f.key, value)
	}
	return nil
}

// rejectFraction refuses floats with a fractional part for integer fields.
// Integral floats pass because JSON numbers always decode as float64.
func rejectFraction(from, to reflect.Kind, data any) (any, error) {
	if to != reflect.Int || (from != reflect.Float32 && from != reflect.Float64) {
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, data)
	}
	return data, nil
}

// Validate checks enumerated and ranged values.
func (c *Config) Validate() error {
	if !slices.Contains(Papers, c.Page.Paper) {
		return fmt.Errorf("%w: page.paper %q is not a known paper size", ErrInvalidValue, c.Page.Paper)
	}
	if !slices.Contains(Frames, c.Code.Frame) {
		return fmt.Errorf("%w: code.frame %q must be one of %s", ErrInvalidValue, c.Code.Frame, strings.Join(Frames, ", "))
	}
	if c.Columns.Body < 1 || c.Columns.Body > 255 {
		return fmt.Errorf("%w: columns.body must be between 1 and 255, got %d", ErrInvalidValue, c.Columns.Body)
	}
	if c.Columns.TOC < 1 || c.Columns.TOC > 255 {
		return fmt.Errorf("%w: columns.toc must be between 1 and 255, got %d", ErrInvalidValue, c.Columns.TOC)
	}
	if c.Code.TabSize < 0 || c.Code.TabSize > 255 {
		return fmt.Errorf("%w: code.tabsize must be between 0 and 255, got %d", ErrInvalidValue, c.Code.TabSize)
	}
	return nil
}

// Compliant reports whether the paper size is allowed by contest rules.
func (c *Config) Compliant() bool {
	return slices.Contains(CompliantPapers, c.Page.Paper)
}

// Multicol reports whether either the body or the table of contents is set
// in more than one column.
func (c *Config) Multicol() bool {
	return c.Columns.Body > 1 || c.Columns.TOC > 1
}
