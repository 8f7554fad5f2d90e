package pipeline

import "testing"

func TestFromYAMLScalarKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"nil", nil, "null"},
		{"sequence", []any{"a", "b"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := FromYAML(tc.in)
			if !p.IsScalar() {
				t.Fatalf("expected scalar for %v", tc.in)
			}
			if got := p.Scalar(); got != tc.want {
				t.Errorf("FromYAML(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFromYAMLMap(t *testing.T) {
	t.Parallel()

	p := FromYAML(map[string]any{"a": "1", "b": map[string]any{"c": "2"}})
	if p.IsScalar() {
		t.Fatal("expected map property")
	}
	m := p.Map()
	if m["a"].Scalar() != "1" {
		t.Errorf("a = %q, want 1", m["a"].Scalar())
	}
	if m["b"].Map()["c"].Scalar() != "2" {
		t.Errorf("b.c = %q, want 2", m["b"].Map()["c"].Scalar())
	}
}
