package outline

import (
	"bufio"
	"io"
	"strings"
)

// lineBreaks flattens text that would otherwise split one entry over lines.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Encode renders the outline as layout text: one entry per line, with the
// entry kind encoded as 0, 1 or 2 leading tabs. Line breaks inside an entry
// become spaces.
func Encode(o Outline) string {
	var b strings.Builder
	for _, e := range o {
		b.WriteString(strings.Repeat("\t", int(e.Kind)))
		b.WriteString(lineBreaks.Replace(strings.TrimRight(e.Text, " \t\r\n")))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the layout text of o to w.
func WriteTo(w io.Writer, o Outline) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Encode(o)); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode parses layout text. Blank lines are dropped; a line with no leading
// tab is a Section, one tab a SubSection, two or more a File.
func Decode(text string) Outline {
	var o Outline
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r\n\v\f")
		if line == "" {
			continue
		}
		payload := strings.TrimLeft(line, "\t")
		var kind Kind
		switch tabs := len(line) - len(payload); {
		case tabs == 0:
			kind = Section
		case tabs == 1:
			kind = SubSection
		default:
			kind = File
		}
		o = append(o, Entry{Kind: kind, Text: payload})
	}
	return o
}

// Read decodes layout text from r.
func Read(r io.Reader) (Outline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(string(data)), nil
}
