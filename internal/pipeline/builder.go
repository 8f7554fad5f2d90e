package pipeline

import "fmt"

// Build implements the Node Builder (C2): recursively constructs a Node from
// a classified document value. It returns nil for a Known value or anything
// else that is not buildable — callers collecting a Series/Parallel's
// children skip a nil silently, matching spec.md §4.2.
func Build(v any, kw Keywords, impl Task) *Node {
	switch classify(v, kw) {
	case docSeries:
		return buildComposite(v.(map[string]any), kw, impl, KindSeries, kw.Series)
	case docParallel:
		return buildComposite(v.(map[string]any), kw, impl, KindParallel, kw.Parallel)
	case docTask:
		return buildTask(v, kw, impl)
	default:
		return nil
	}
}

func buildComposite(m map[string]any, kw Keywords, impl Task, kind Kind, keyword string) *Node {
	node := &Node{
		Kind:           kind,
		Name:           liftName(m, kw),
		ContinueOnFail: liftContinueOnFail(m, kw),
	}

	node.Properties = make(map[string]Property, len(m))
	for k, val := range m {
		if k != keyword {
			node.Properties[k] = FromYAML(val)
		}
	}

	seq, ok := m[keyword].([]any)
	if !ok {
		// The value at the composite keyword is not a sequence: the child
		// list is empty and execution proceeds (spec.md §7, Classification
		// error kind).
		return node
	}

	for _, elem := range seq {
		if child := Build(elem, kw, impl); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func buildTask(v any, kw Keywords, impl Task) *Node {
	node := &Node{Kind: KindTask, Task: impl}

	if s, ok := v.(string); ok {
		node.Properties = map[string]Property{kw.Run: NewScalar(s)}
		return node
	}

	m := v.(map[string]any)
	node.Properties = make(map[string]Property, len(m))
	for k, val := range m {
		node.Properties[k] = FromYAML(val)
	}
	node.Name = liftName(m, kw)
	node.ContinueOnFail = liftContinueOnFail(m, kw)
	return node
}

func liftName(m map[string]any, kw Keywords) string {
	if v, ok := m[kw.Name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func liftContinueOnFail(m map[string]any, kw Keywords) bool {
	v, ok := m[kw.ContinueOnFail]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

// BuildRoot builds the root pipeline tree and the known-node registry from a
// generic document value. The root document's own composite/task keys
// (series, parallel, run, task) define the root pipeline; every other
// top-level key whose value is not itself classified as Known is built as a
// node and returned in knownNodes, keyed by that top-level key — matching
// spec.md §4.2's known-node registration rule.
func BuildRoot(doc any, kw Keywords, impl Task) (root *Node, knownNodes map[string]*Node, err error) {
	root = Build(doc, kw, impl)
	if root == nil {
		return nil, nil, fmt.Errorf("failed to build pipeline: document root is not a series, parallel, or task")
	}

	knownNodes = make(map[string]*Node)
	m, ok := doc.(map[string]any)
	if !ok {
		return root, knownNodes, nil
	}

	reserved := map[string]bool{
		kw.Series:   true,
		kw.Parallel: true,
		kw.Run:      true,
		kw.Task:     true,
	}
	for key, val := range m {
		if reserved[key] {
			continue
		}
		if classify(val, kw) == docKnown {
			// Plain configuration, not invocable.
			continue
		}
		if node := Build(val, kw, impl); node != nil {
			knownNodes[key] = node
		}
	}

	return root, knownNodes, nil
}

// CloneNode deep-copies a known-node template so expanding it never mutates
// the registered template.
func CloneNode(n *Node) *Node {
	return cloneNode(n)
}

// MaterializeTree resolves every placeholder in every Task node reachable
// from n against view, in place. Used by the Shell Task to eagerly resolve a
// cloned known-node template's positional arguments before re-entering the
// scheduler.
func MaterializeTree(n *Node, view ContextView, policy FailurePolicy, sentinel string) error {
	return materializeTree(n, view, policy, sentinel)
}
