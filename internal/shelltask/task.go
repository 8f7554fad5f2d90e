// Package shelltask implements the Shell Task (C7): the concrete
// pipeline.Task that resolves a task node's properties against the current
// context, optionally expands to a known node, and otherwise runs a shell
// command through the shellexec collaborator, emitting context diffs for
// any configured output captures.
package shelltask

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/shellpipe/internal/pipeline"
	"github.com/alexisbeaulieu97/shellpipe/internal/shellexec"
	shellpipeerrors "github.com/alexisbeaulieu97/shellpipe/pkg/errors"
)

// Task is the Shell Task collaborator. A single Task value is shared by
// every task node built from a document.
type Task struct {
	Runner   shellexec.Runner
	Keywords pipeline.Keywords
	Logger   zerolog.Logger
	NoColor  bool
}

// New builds a Task with the given shell runner and keyword set.
func New(runner shellexec.Runner, kw pipeline.Keywords, logger zerolog.Logger, noColor bool) *Task {
	return &Task{Runner: runner, Keywords: kw, Logger: logger, NoColor: noColor}
}

var _ pipeline.Task = (*Task)(nil)

// Execute implements pipeline.Task, following the six-step algorithm of
// spec.md §4.7.
func (t *Task) Execute(ctx context.Context, node *pipeline.Node, frame *pipeline.Frame) (bool, []pipeline.Diff, error) {
	kw := t.Keywords

	// Step 1: task_display defaults to the node's lifted name.
	display := node.Name

	// Step 2: materialize every property against the frame, which already
	// satisfies ContextView as a GlobalContextView.
	materialized := make(map[string]pipeline.Property, len(node.Properties))
	for k, v := range node.Properties {
		m, err := pipeline.Materialize(v, frame, pipeline.PolicyIgnore, pipeline.DefaultSentinel)
		if err != nil {
			return false, nil, shellpipeerrors.NewTaskError(node.Name, err)
		}
		materialized[k] = m
	}

	runProp, ok := materialized[kw.Run]
	if !ok {
		runProp, ok = materialized[kw.Task]
	}
	if !ok || !runProp.IsScalar() {
		t.Logger.Error().Str("node", node.Name).Msg("shell task has no run/task command")
		return false, nil, nil
	}
	runStr := runProp.Scalar()
	if display == "" {
		display = runStr
	}

	if dp, ok := materialized[kw.Display]; ok && dp.IsScalar() {
		display = dp.Scalar()
	}

	env := map[string]string{}
	if ep, ok := materialized[kw.Env]; ok && !ep.IsScalar() {
		for k, v := range ep.Map() {
			if v.IsScalar() {
				env[k] = v.Scalar()
			}
		}
	}

	var captureStdout, captureStderr string
	if cp, ok := materialized[kw.CaptureStdout]; ok && cp.IsScalar() {
		captureStdout = cp.Scalar()
	}
	if cp, ok := materialized[kw.CaptureStderr]; ok && cp.IsScalar() {
		captureStderr = cp.Scalar()
	}

	// Step 3: known-node expansion.
	tokens := strings.Fields(runStr)
	if len(tokens) > 0 {
		if template, ok := frame.KnownNode(tokens[0]); ok {
			return t.expandKnownNode(ctx, template, tokens, runStr, frame)
		}
	}

	// Step 4: invoke the shell collaborator.
	t.Logger.Debug().Str("task", display).Str("run", runStr).Msg("task.start")
	result, err := t.Runner.Run(ctx, runStr, env)
	if err != nil {
		return false, nil, shellpipeerrors.NewExecutionError(display, err)
	}
	success := result.Status == 0
	t.Logger.Debug().Str("task", display).Bool("success", success).Int("status", result.Status).Msg("task.result")

	var diffs []pipeline.Diff
	if captureStderr != "" {
		diffs = append(diffs, pipeline.Diff{Kind: pipeline.DiffSet, Key: captureStderr, Value: strings.TrimRight(result.Stderr, " \t\r\n")})
	}
	if captureStdout != "" {
		diffs = append(diffs, pipeline.Diff{Kind: pipeline.DiffSet, Key: captureStdout, Value: strings.TrimRight(result.Stdout, " \t\r\n")})
	}

	// Step 5: colored status line.
	if display != "" {
		fmt.Fprintln(os.Stdout, statusLine(display, success, colorEnabled(t.NoColor)))
	}

	// Step 6.
	return success, diffs, nil
}

// expandKnownNode clones template, materializes it against a NodeContextView
// layering the invocation's whitespace-split tokens over frame, injects the
// original run string as the clone root's display property, and re-enters
// the scheduler on the clone against the same frame.
func (t *Task) expandKnownNode(ctx context.Context, template *pipeline.Node, tokens []string, runStr string, frame *pipeline.Frame) (bool, []pipeline.Diff, error) {
	t.Logger.Debug().Str("node", tokens[0]).Strs("args", tokens[1:]).Msg("known_node.expand")

	clone := pipeline.CloneNode(template)
	view := pipeline.NewNodeContextView(frame, tokens)
	if err := pipeline.MaterializeTree(clone, view, pipeline.PolicyIgnore, pipeline.DefaultSentinel); err != nil {
		return false, nil, shellpipeerrors.NewTaskError(tokens[0], err)
	}

	if clone.Properties == nil {
		clone.Properties = make(map[string]pipeline.Property, 1)
	}
	clone.Properties[t.Keywords.Display] = pipeline.NewScalar(runStr)

	return pipeline.Run(ctx, clone, frame)
}
