package output

import (
	"sort"
	"strings"

	"github.com/bundlegraph/cli/internal/core"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 48
)

// TreeNode represents a node in a rendered tree.
type TreeNode struct {
	Name        string
	Description string
	Children    []*TreeNode
}

// BundleTree builds the tree shown for a terminal action: its sub-actions
// with their rule types, then its named outputs with their paths.
func BundleTree(terminal core.ActionRecord, subActions []core.ActionRecord) *TreeNode {
	root := &TreeNode{Name: terminal.ID, Description: terminal.RuleType}

	subs := &TreeNode{Name: "sub-actions"}
	for _, sub := range core.SortRecords(subActions) {
		subs.Children = append(subs.Children, &TreeNode{Name: sub.ID, Description: sub.RuleType})
	}

	outputs := &TreeNode{Name: "outputs"}
	names := make([]string, 0, len(terminal.Outputs))
	for name := range terminal.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		paths := terminal.Outputs[name]
		desc := "(empty)"
		if len(paths) > 0 {
			desc = strings.Join(paths, ", ")
		}
		outputs.Children = append(outputs.Children, &TreeNode{Name: name, Description: desc})
	}

	if len(terminal.DeclaredDeps) > 0 {
		deps := &TreeNode{Name: "declared deps"}
		for _, d := range terminal.DeclaredDeps {
			deps.Children = append(deps.Children, &TreeNode{Name: d})
		}
		root.Children = append(root.Children, deps)
	}
	root.Children = append(root.Children, subs, outputs)
	return root
}

// RenderTree renders a tree with descriptions aligned at a fixed column.
func RenderTree(root *TreeNode) string {
	var sb strings.Builder
	renderNode(&sb, root, "", true, true)
	return sb.String()
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	if isRoot {
		line := StyleSummary.Render(node.Name)
		if node.Description != "" {
			line += " " + StyleDim.Render(node.Description)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		line := prefix + connector + StyleNoun.Render(node.Name)
		width := len(prefix) + len(connector) + len(node.Name)

		// Add description if present, aligned to descriptionColumn
		if node.Description != "" {
			padding := descriptionColumn - width
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding)
			line += StyleDim.Render(node.Description)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	// Render children
	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		var childPrefix string
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
