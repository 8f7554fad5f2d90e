package pipeline

// docKind classifies a raw document value before it becomes a Node. Unlike
// Kind, docKind has a fourth variant: a Known node is plain configuration
// that never becomes a tree member (see builder.go), so it has no Kind
// equivalent.
type docKind int

const (
	docSeries docKind = iota
	docParallel
	docTask
	docKnown
)

// classify implements the Document Adapter (C1): given a generic
// YAML-decoded value and the active Keywords, determine whether it
// describes a Series, a Parallel, a Task, or is Known (plain configuration,
// not a pipeline node). Precedence is series ≻ parallel ≻ task; a mapping
// carrying more than one composite key keeps whichever wins by precedence,
// and the others are retained as ordinary properties.
func classify(v any, kw Keywords) docKind {
	if s, ok := v.(string); ok {
		_ = s
		return docTask
	}

	m, ok := v.(map[string]any)
	if !ok {
		// Any other scalar (number, bool, nil) or a bare sequence at node
		// position is not buildable; treat it as Known so callers skip it
		// silently rather than misclassifying it as a task.
		return docKnown
	}

	if hasKey(m, kw.Series) {
		return docSeries
	}
	if hasKey(m, kw.Parallel) {
		return docParallel
	}
	if hasKey(m, kw.Run) || hasKey(m, kw.Task) {
		return docTask
	}
	return docKnown
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}
