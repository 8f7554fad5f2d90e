package pipeline

import (
	"fmt"
	"regexp"
)

// FailurePolicy controls what Substitute does with a placeholder whose name
// the ContextView cannot resolve.
type FailurePolicy int

const (
	// PolicyIgnore leaves an unresolved placeholder as a sentinel string
	// instead of erroring. This is the system's default.
	PolicyIgnore FailurePolicy = iota
	// PolicyFail propagates an error on the first unresolved placeholder.
	PolicyFail
)

// DefaultSentinel is emitted in place of an unresolved placeholder under
// PolicyIgnore, matching the original implementation's FM_ignore sentinel.
const DefaultSentinel = "?"

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// Substitute replaces every `${name}` placeholder in input with the value
// ContextView.Lookup returns for name. Replacement is single-pass — the
// regexp's ReplaceAllStringFunc never rescans text it has already
// substituted in — which guarantees termination regardless of what a
// resolved value itself contains.
func Substitute(input string, view ContextView, policy FailurePolicy, sentinel string) (string, error) {
	var firstErr error
	out := placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := match[2 : len(match)-1]
		if v, ok := view.Lookup(name); ok {
			return v
		}
		switch policy {
		case PolicyFail:
			firstErr = fmt.Errorf("unresolved placeholder %s", match)
			return match
		default:
			if sentinel == "" {
				return match
			}
			return sentinel
		}
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Materialize applies Substitute to every scalar reachable from p, returning
// a new Property; the input is left unchanged. Materialization is idempotent
// on strings containing no placeholders, since a second pass finds nothing
// left to replace.
func Materialize(p Property, view ContextView, policy FailurePolicy, sentinel string) (Property, error) {
	if p.IsScalar() {
		replaced, err := Substitute(p.Scalar(), view, policy, sentinel)
		if err != nil {
			return Property{}, err
		}
		return NewScalar(replaced), nil
	}

	src := p.Map()
	out := make(map[string]Property, len(src))
	for k, v := range src {
		materialized, err := Materialize(v, view, policy, sentinel)
		if err != nil {
			return Property{}, err
		}
		out[k] = materialized
	}
	return NewMap(out), nil
}

// materializeTree applies Materialize to every property of every Task node
// reachable from n, used to eagerly resolve a cloned known-node template's
// placeholders against the invocation's NodeContextView before it is handed
// back to the scheduler.
func materializeTree(n *Node, view ContextView, policy FailurePolicy, sentinel string) error {
	if n == nil {
		return nil
	}
	if n.Kind == KindTask && n.Properties != nil {
		materialized := make(map[string]Property, len(n.Properties))
		for k, v := range n.Properties {
			m, err := Materialize(v, view, policy, sentinel)
			if err != nil {
				return err
			}
			materialized[k] = m
		}
		n.Properties = materialized
	}
	for _, child := range n.Children {
		if err := materializeTree(child, view, policy, sentinel); err != nil {
			return err
		}
	}
	return nil
}
