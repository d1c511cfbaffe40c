package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned by Write when the target exists and force is unset.
var ErrExists = errors.New("configuration file already exists")

// Default returns a two-column A4 landscape layout, the usual shape of a
// contest team notebook.
func Default() Config {
	return Config{
		Document: DocumentConfig{
			Title:      "Team Notebook",
			Author:     "",
			University: "University",
			Team:       "Team",
			FontSize:   "10pt",
		},
		Page: PageConfig{
			Paper:         "a4paper",
			Landscape:     true,
			LMargin:       "1cm",
			RMargin:       "1cm",
			TMargin:       "1.5cm",
			BMargin:       "1cm",
			HeadRuleWidth: "0.4pt",
			FootRuleWidth: "0pt",
			HeadHeight:    "12pt",
			HeadSep:       "0.3cm",
			FootSkip:      "0pt",
			ColumnSep:     "0.5cm",
		},
		Columns: ColumnsConfig{
			Body:        2,
			TOC:         2,
			SeparateTOC: false,
		},
		Code: CodeConfig{
			TabSize:         4,
			LineNos:         false,
			NumberSep:       "1mm",
			MathEscape:      true,
			AutoGobble:      false,
			ShowSpaces:      false,
			ShowTabs:        false,
			BreakLines:      true,
			BreakAnywhere:   false,
			BreakAutoIndent: true,
			Frame:           "lines",
			FrameSep:        "1mm",
			FrameRule:       "0.4pt",
			Style:           "default",
		},
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Write stores cfg as YAML at path. An existing file is only replaced when
// force is set.
func Write(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
