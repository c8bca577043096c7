package plan

import (
	"strings"
)

// Format generates a visual string representation of the plan tree.
func Format(op Operator) string {
	var sb strings.Builder
	formatRecursive(op, "", true, &sb)
	return sb.String()
}

func formatRecursive(op Operator, prefix string, checkLast bool, sb *strings.Builder) {
	// Current node
	sb.WriteString(prefix)
	if checkLast {
		sb.WriteString("└─ ")
		prefix += "   "
	} else {
		sb.WriteString("├─ ")
		prefix += "│  "
	}
	sb.WriteString(op.Explain())
	sb.WriteString("\n")

	// Children
	children := op.Children()
	for i, child := range children {
		isLast := i == len(children)-1
		formatRecursive(child, prefix, isLast, sb)
	}
}
