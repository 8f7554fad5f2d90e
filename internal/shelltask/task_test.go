package shelltask

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shellpipe/internal/pipeline"
	"github.com/alexisbeaulieu97/shellpipe/internal/shellexec"
	shellpipeerrors "github.com/alexisbeaulieu97/shellpipe/pkg/errors"
)

func newTask() *Task {
	return New(shellexec.OSRunner{}, pipeline.DefaultKeywords(), zerolog.New(io.Discard), true)
}

type failingRunner struct{ err error }

func (r failingRunner) Run(context.Context, string, map[string]string) (shellexec.Result, error) {
	return shellexec.Result{}, r.err
}

func TestExecuteRunsCommandAndReportsSuccess(t *testing.T) {
	node := &pipeline.Node{
		Kind:       pipeline.KindTask,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("echo hi")},
	}
	g := pipeline.NewGlobalContext(nil)
	success, diffs, err := newTask().Execute(context.Background(), node, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.True(t, success)
	require.Empty(t, diffs)
}

func TestExecuteCapturesStdoutAndStderrInOrder(t *testing.T) {
	node := &pipeline.Node{
		Kind: pipeline.KindTask,
		Properties: map[string]pipeline.Property{
			"run":            pipeline.NewScalar("echo out 1>&1; echo err 1>&2"),
			"capture_stdout": pipeline.NewScalar("out_var"),
			"capture_stderr": pipeline.NewScalar("err_var"),
		},
	}
	g := pipeline.NewGlobalContext(nil)
	success, diffs, err := newTask().Execute(context.Background(), node, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.True(t, success)
	require.Len(t, diffs, 2)
	require.Equal(t, "err_var", diffs[0].Key, "stderr capture must be emitted before stdout")
	require.Equal(t, "err", diffs[0].Value)
	require.Equal(t, "out_var", diffs[1].Key)
	require.Equal(t, "out", diffs[1].Value)
}

func TestExecuteReportsFailureOnNonZeroExit(t *testing.T) {
	node := &pipeline.Node{
		Kind:       pipeline.KindTask,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("exit 1")},
	}
	g := pipeline.NewGlobalContext(nil)
	success, _, err := newTask().Execute(context.Background(), node, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.False(t, success)
}

func TestExecuteMaterializesPropertiesAgainstContext(t *testing.T) {
	node := &pipeline.Node{
		Kind:       pipeline.KindTask,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("echo ${greeting}")},
	}
	g := pipeline.NewGlobalContext(map[string]string{"greeting": "hello"})

	var stdoutCapture strings.Builder
	task := newTask()
	task.Runner = shellexec.OSRunner{Stdout: &stdoutCapture}
	node.Properties["capture_stdout"] = pipeline.NewScalar("captured")

	success, diffs, err := task.Execute(context.Background(), node, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.True(t, success)
	require.Len(t, diffs, 1)
	require.Equal(t, "hello", diffs[0].Value)
}

func TestExecuteExpandsKnownNodeWithPositionalArgs(t *testing.T) {
	template := &pipeline.Node{
		Kind:       pipeline.KindTask,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("echo ${1}"), "capture_stdout": pipeline.NewScalar("captured")},
	}

	g := pipeline.NewGlobalContext(nil)
	g.RegisterKnownNode("test.sh", template)
	template.Task = newTask()

	root := &pipeline.Node{
		Kind:       pipeline.KindTask,
		Task:       newTask(),
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("test.sh unit")},
	}

	success, diffs, err := root.Task.(*Task).Execute(context.Background(), root, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.True(t, success)
	require.Len(t, diffs, 1)
	require.Equal(t, "unit", diffs[0].Value)
}

func TestScenarioParallelJoinLastWriterWinsInDocumentOrder(t *testing.T) {
	task := newTask()
	first := &pipeline.Node{
		Kind: pipeline.KindTask, Task: task,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("echo 1"), "capture_stdout": pipeline.NewScalar("R")},
	}
	second := &pipeline.Node{
		Kind: pipeline.KindTask, Task: task,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("echo 2"), "capture_stdout": pipeline.NewScalar("R")},
	}
	root := &pipeline.Node{Kind: pipeline.KindParallel, Children: []*pipeline.Node{first, second}}

	g := pipeline.NewGlobalContext(nil)
	success, _, err := pipeline.Run(context.Background(), root, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.True(t, success)
	got, ok := g.Lookup("R")
	require.True(t, ok)
	require.Equal(t, "2", got)
}

func TestExecuteWrapsRunnerFailureAsExecutionError(t *testing.T) {
	node := &pipeline.Node{
		Kind:       pipeline.KindTask,
		Properties: map[string]pipeline.Property{"run": pipeline.NewScalar("echo hi")},
	}
	g := pipeline.NewGlobalContext(nil)
	task := newTask()
	task.Runner = failingRunner{err: errors.New("no shell found")}

	success, diffs, err := task.Execute(context.Background(), node, pipeline.RootFrame(g))

	require.False(t, success)
	require.Empty(t, diffs)

	var execErr *shellpipeerrors.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, "echo hi", execErr.NodeName)
	require.EqualError(t, execErr.Err, "no shell found")
}

func TestExecuteMissingRunPropertyFails(t *testing.T) {
	node := &pipeline.Node{Kind: pipeline.KindTask, Properties: map[string]pipeline.Property{}}
	g := pipeline.NewGlobalContext(nil)
	success, diffs, err := newTask().Execute(context.Background(), node, pipeline.RootFrame(g))

	require.NoError(t, err)
	require.False(t, success)
	require.Empty(t, diffs)
}
