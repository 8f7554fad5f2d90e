// Package errors defines shellpipe's four typed errors, covering three
// error kinds (spec.md §7): Startup (ParseError, ValidationError), Task
// failure (TaskError), and the command-execution failures that bubble out
// of the shell collaborator (ExecutionError). Errors are values propagated
// up the tree, not exceptions; these types exist so a caller can
// distinguish "the document is broken" from "a task's own logic broke" from
// "the command we ran broke" with errors.As, the way the rest of this
// codebase distinguishes them.
package errors

import (
	"fmt"
)

// ParseError reports a pipeline document that could not be read from disk
// or decoded as YAML. Line is the 1-based line the decoder blamed, or 0 when
// it couldn't attribute one (e.g. a missing-file error has no line at all).
type ParseError struct {
	DocumentPath string
	Line         int
	Message      string
	Err          error
}

// NewParseError constructs a ParseError for the document at documentPath.
func NewParseError(documentPath string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{DocumentPath: documentPath, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("failed to load pipeline document %s:%d: %s", e.DocumentPath, e.Line, e.Message)
	}
	return fmt.Sprintf("failed to load pipeline document %s: %s", e.DocumentPath, e.Message)
}

// Unwrap exposes the underlying decode/read error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a document value or CLI key=value binding that
// decoded fine but failed validation before the pipeline started running —
// one level more specific than ParseError. Subject names the offending
// binding key or document property; it is blank when the failure isn't
// attributable to one.
type ValidationError struct {
	Subject string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError for subject.
func NewValidationError(subject, message string, err error) error {
	return &ValidationError{Subject: subject, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Subject != "" {
		return fmt.Sprintf("invalid %s: %s", e.Subject, e.Message)
	}
	return fmt.Sprintf("invalid pipeline input: %s", e.Message)
}

// Unwrap exposes the underlying validation error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure in the command a Shell Task
// ran or tried to run (e.g. no usable shell on the host) — distinct from a
// task simply exiting non-zero, which is reported as success=false, not an
// error.
type ExecutionError struct {
	NodeName string
	Err      error
}

// NewExecutionError constructs an ExecutionError for the named node.
func NewExecutionError(nodeName string, err error) error {
	return &ExecutionError{NodeName: nodeName, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.NodeName != "" {
		return fmt.Sprintf("execution error on node %s: %v", e.NodeName, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TaskError indicates a failure within the Shell Task's own logic —
// materialization or known-node expansion going wrong — as opposed to the
// command it ran (see ExecutionError for that).
type TaskError struct {
	Node    string
	Message string
	Err     error
}

// NewTaskError constructs a TaskError for the named task node.
func NewTaskError(node string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &TaskError{Node: node, Message: message, Err: err}
}

func (e *TaskError) Error() string {
	if e == nil {
		return ""
	}
	if e.Node != "" {
		return fmt.Sprintf("task error [%s]: %s", e.Node, e.Message)
	}
	return fmt.Sprintf("task error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *TaskError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
