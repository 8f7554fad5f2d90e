package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// Run is the Scheduler/Executor (C6): it walks node honoring series/parallel
// semantics, delegates Task nodes to their Task implementation, and applies
// any returned diffs to frame at the appropriate sequence point before
// returning. The diffs Run returns to its own caller have already been
// applied to frame; runParallel applies each child's returned diffs once
// more, to its own frame, at the join (the child ran against a branch of it).
func Run(ctx context.Context, node *Node, frame *Frame) (bool, []Diff, error) {
	if node == nil {
		return false, nil, fmt.Errorf("pipeline: nil node")
	}

	switch node.Kind {
	case KindTask:
		return runTask(ctx, node, frame)
	case KindSeries:
		return runSeries(ctx, node, frame)
	case KindParallel:
		return runParallel(ctx, node, frame)
	default:
		return false, nil, fmt.Errorf("pipeline: unknown node kind %v", node.Kind)
	}
}

func runTask(ctx context.Context, node *Node, frame *Frame) (bool, []Diff, error) {
	if node.Task == nil {
		return false, nil, fmt.Errorf("pipeline: task node %q has no task implementation", node.Name)
	}

	success, diffs, err := node.Task.Execute(ctx, node, frame)
	if err != nil {
		return false, nil, err
	}

	for _, d := range diffs {
		applyDiff(frame, d)
	}
	return success, diffs, nil
}

func applyDiff(frame *Frame, d Diff) {
	switch d.Kind {
	case DiffSet:
		frame.Set(d.Key, d.Value)
	default:
		// Unknown diff variants are ignored conservatively, per spec.md §3.
	}
}

// runSeries executes children in document order. Each child observes all
// diffs produced by earlier siblings, since every child shares frame and
// Run applies a Task's diffs to it before returning. A child failing with
// ContinueOnFail unset aborts the series immediately; a child failing with
// ContinueOnFail set is recorded (dragging the conjunction to false) but
// does not stop the remaining children from running.
func runSeries(ctx context.Context, node *Node, frame *Frame) (bool, []Diff, error) {
	var allDiffs []Diff
	success := true

	for _, child := range node.Children {
		ok, diffs, err := Run(ctx, child, frame)
		if err != nil {
			return false, allDiffs, err
		}
		allDiffs = append(allDiffs, diffs...)

		if !ok {
			success = false
			if !child.ContinueOnFail {
				return false, allDiffs, nil
			}
		}
	}

	return success, allDiffs, nil
}

type parallelResult struct {
	diffs          []Diff
	success        bool
	continueOnFail bool
	err            error
}

// runParallel executes all children concurrently, each against its own
// branch Frame seeded from the context as it existed at entry. No sibling
// observes another's writes until the join, where diffs are merged into
// frame in document order — the tie-break for two children setting the same
// key, and the only race-free moment parallel results become visible.
func runParallel(ctx context.Context, node *Node, frame *Frame) (bool, []Diff, error) {
	results := make([]parallelResult, len(node.Children))

	var wg sync.WaitGroup
	for i, child := range node.Children {
		wg.Add(1)
		go func(i int, child *Node) {
			defer wg.Done()
			branch := frame.Branch()
			ok, diffs, err := Run(ctx, child, branch)
			results[i] = parallelResult{diffs: diffs, success: ok, continueOnFail: child.ContinueOnFail, err: err}
		}(i, child)
	}
	wg.Wait()

	var allDiffs []Diff
	success := true
	for _, r := range results {
		if r.err != nil {
			return false, allDiffs, r.err
		}
		for _, d := range r.diffs {
			applyDiff(frame, d)
			allDiffs = append(allDiffs, d)
		}
		if !r.success && !r.continueOnFail {
			success = false
		}
	}

	return success, allDiffs, nil
}
