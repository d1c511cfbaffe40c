// Package outline defines the document structure shared by the scanner and
// the compiler: an ordered list of section, subsection and file entries, and
// the tab-indented text form it is persisted in between the two stages.
package outline

import "fmt"

// Kind identifies the role of an Entry in the document.
type Kind int

const (
	Section Kind = iota
	SubSection
	File
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Section:
		return "section"
	case SubSection:
		return "subsection"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Entry is a single line of an Outline.
// For Section and SubSection entries Text is the heading label; for File
// entries it is the filesystem path of the source file, unescaped.
type Entry struct {
	Kind Kind
	Text string
}

// Outline is an ordered sequence of entries. Order equals document order.
type Outline []Entry

// NewSection returns a top-level heading entry.
func NewSection(label string) Entry { return Entry{Kind: Section, Text: label} }

// NewSubSection returns a nested heading entry.
func NewSubSection(label string) Entry { return Entry{Kind: SubSection, Text: label} }

// NewFile returns an entry referencing a source file on disk.
func NewFile(path string) Entry { return Entry{Kind: File, Text: path} }

func (e Entry) String() string {
	return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
}

// Files returns the paths of every File entry, in outline order.
func (o Outline) Files() []string {
	var paths []string
	for _, e := range o {
		if e.Kind == File {
			paths = append(paths, e.Text)
		}
	}
	return paths
}
