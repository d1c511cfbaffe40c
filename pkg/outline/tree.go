package outline

import (
	"fmt"
	"strings"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// RenderTree draws the outline as a box-drawing tree for previewing a layout
// before compiling it. Files under a heading are nested below it; entries
// appearing before any heading sit at the top level.
func RenderTree(o Outline) string {
	root := &treeNode{}
	var section, subsection *treeNode

	for _, e := range o {
		n := &treeNode{label: e.Text}
		switch e.Kind {
		case Section:
			root.children = append(root.children, n)
			section, subsection = n, nil
		case SubSection:
			parent := root
			if section != nil {
				parent = section
			}
			parent.children = append(parent.children, n)
			subsection = n
		case File:
			parent := root
			switch {
			case subsection != nil:
				parent = subsection
			case section != nil:
				parent = section
			}
			parent.children = append(parent.children, n)
		}
	}

	var lines []string
	renderChildren(root, "", &lines)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderChildren(n *treeNode, prefix string, lines *[]string) {
	for i, child := range n.children {
		connector := "├── "
		extension := "│   "
		if i == len(n.children)-1 {
			connector = "└── "
			extension = "    "
		}
		label := child.label
		if len(child.children) > 0 {
			label += "/"
		}
		*lines = append(*lines, fmt.Sprintf("%s%s%s", prefix, connector, label))
		renderChildren(child, prefix+extension, lines)
	}
}
