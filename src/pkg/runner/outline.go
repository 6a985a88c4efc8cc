// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package runner

import (
	"fmt"

	"github.com/pterm/pterm"
)

// OutlineNode is one task in the preview tree.
type OutlineNode struct {
	Name string
	// Missing marks a dependency that exists nowhere in the registry
	Missing bool
	// Skipped lists dependencies not resolved under SkipDependencies
	Skipped  []string
	Children []*OutlineNode
}

// Outline is the preview of an execution plan: the dependency trees for the
// requested tasks plus the flat order real execution would use.
type Outline struct {
	Roots []*OutlineNode
	// Order is the deduplicated, dependency-respecting execution order
	Order []string
	// Skipped lists dependencies skipped under SkipDependencies
	Skipped []string
}

// Outline computes the execution plan for the requested tasks without
// running anything. The traversal mirrors Invoke exactly, including the
// skip-dependencies distinction, so Order matches what execution would do.
func (r *Runner) Outline(taskNames []string) (*Outline, error) {
	for _, name := range taskNames {
		if _, ok := r.registry.Lookup(name); !ok {
			return nil, fmt.Errorf("task %q not found", name)
		}
	}

	outline := &Outline{}
	planned := map[string]bool{}

	for _, name := range taskNames {
		node := r.outlineTask(name, planned, map[string]bool{}, outline)
		outline.Roots = append(outline.Roots, node)
	}

	return outline, nil
}

// outlineTask expands one task. planned plays the executed-set role for the
// flat order; path guards the current branch so cycles terminate without
// hiding the shared subtree from sibling branches.
func (r *Runner) outlineTask(name string, planned, path map[string]bool, outline *Outline) *OutlineNode {
	node := &OutlineNode{Name: name}
	task, ok := r.registry.Lookup(name)
	if !ok {
		node.Missing = true
		return node
	}

	alreadyPlanned := planned[name]
	planned[name] = true
	path[name] = true
	defer delete(path, name)

	if r.opts.SkipDependencies {
		node.Skipped = task.Dependencies
		outline.Skipped = append(outline.Skipped, task.Dependencies...)
	} else {
		for _, dep := range task.Dependencies {
			resolved, found := r.resolveDependency(task, dep)
			if !found {
				node.Children = append(node.Children, &OutlineNode{Name: dep, Missing: true})
				continue
			}
			if path[resolved] {
				// Cycle back into the current branch: execution would
				// no-op here, so the preview stops here too.
				continue
			}
			node.Children = append(node.Children, r.outlineTask(resolved, planned, path, outline))
		}
	}

	if !alreadyPlanned {
		outline.Order = append(outline.Order, name)
	}
	return node
}

// Render draws the outline as a pterm tree followed by the flat order.
func (o *Outline) Render() error {
	root := pterm.TreeNode{Text: "Execution plan"}
	for _, node := range o.Roots {
		root.Children = append(root.Children, treeNode(node))
	}
	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		return err
	}

	pterm.Println()
	pterm.Println("Execution order:")
	for i, name := range o.Order {
		pterm.Printfln("  %d. %s", i+1, name)
	}
	return nil
}

func treeNode(node *OutlineNode) pterm.TreeNode {
	text := node.Name
	if node.Missing {
		text = fmt.Sprintf("%s %s", node.Name, pterm.Red("(missing)"))
	}
	for _, skipped := range node.Skipped {
		text = fmt.Sprintf("%s %s", text, pterm.Gray("[skipped: "+skipped+"]"))
	}

	out := pterm.TreeNode{Text: text}
	for _, child := range node.Children {
		out.Children = append(out.Children, treeNode(child))
	}
	return out
}
