// File: pkg/analyzer/render.go
package analyzer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BuildTreeView renders the tree as an indented diagram, one line per
// node. The last sibling at each level uses the "└──" connector, all
// others "├──"; file lines carry a human-readable size suffix. Pure
// function of the tree; no filtering happens here.
func BuildTreeView(nodes []*FileNode, indent string) string {
	var b strings.Builder

	for i, node := range nodes {
		last := i == len(nodes)-1
		connector := "├── "
		extension := "│   "
		if last {
			connector = "└── "
			extension = "    "
		}

		if node.IsDirectory {
			fmt.Fprintf(&b, "%s%s📁 %s\n", indent, connector, node.Name)
			b.WriteString(BuildTreeView(node.Children, indent+extension))
		} else {
			fmt.Fprintf(&b, "%s%s📄 %s (%s)\n", indent, connector, node.Name, FormatSize(node.Size))
		}
	}

	return b.String()
}

var sizeUnits = []string{"bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count using binary units, keeping three
// significant digits. Zero is "0 bytes"; negative inputs keep their sign.
func FormatSize(size int64) string {
	if size == 0 {
		return "0 bytes"
	}

	value := math.Abs(float64(size))
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	decimals := 3 - (int(math.Floor(math.Log10(value))) + 1)
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if size < 0 {
		s = "-" + s
	}
	return s + " " + sizeUnits[unit]
}
