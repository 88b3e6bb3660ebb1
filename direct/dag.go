// Package direct implements the direct builder: DAG construction from a
// flat CommandEntry list, depth assignment, timestamp+depfile staleness
// evaluation, and a bounded-concurrency scheduler with live progress.
//
// The concurrency/ready-queue/in-degree shape is grounded on
// internal/engine/scheduler/scheduler.go's schedulerRunState, adapted from
// content-hash build caching (an explicit spec.md Non-goal) to
// timestamp+depfile staleness. Depth assignment and staleness evaluation
// themselves have no implementation anywhere in the retrieved pack — the
// original source's emitters/direct.h is only a stub class declaration —
// and are built directly from spec.md §4.6/§4.7's prose.
package direct

import "go.kiln.build/kiln/command"

// PendingCommand extends a CommandEntry with the direct builder's own
// bookkeeping: its depth in the reverse-dependency DAG, whether it is
// currently considered stale, and the commands that produce its inputs.
type PendingCommand struct {
	command.Entry
	Depth    int
	Dirty    bool
	Upstream []*PendingCommand
}

// Build wraps entries as PendingCommands, links each to the commands that
// produce its inputs, and assigns depths. The same output produced by two
// entries is undefined behavior per spec.md §4.6; this implementation
// resolves it as last-write-wins (the later entry in the input slice owns
// that output path for upstream-linking purposes).
func Build(entries []command.Entry) []*PendingCommand {
	pending := make([]*PendingCommand, len(entries))
	byOutput := make(map[string]*PendingCommand, len(entries))

	for i, e := range entries {
		pc := &PendingCommand{Entry: e}
		pending[i] = pc
		for _, out := range e.Outputs {
			byOutput[out] = pc
		}
	}

	for _, pc := range pending {
		seen := make(map[*PendingCommand]bool)
		for _, in := range pc.Inputs {
			producer, ok := byOutput[in]
			if !ok || producer == pc || seen[producer] {
				continue
			}
			seen[producer] = true
			pc.Upstream = append(pc.Upstream, producer)
		}
	}

	assignDepths(pending)
	return pending
}

// assignDepths runs the worklist described in spec.md §4.6: every node
// starts at depth 0; for each visited (node, depth) pair, every upstream
// producer whose depth would strictly increase is updated and re-pushed.
// Termination is guaranteed because depths are bounded by the DAG's
// longest path and a node is re-pushed only when its depth strictly
// increases.
func assignDepths(pending []*PendingCommand) {
	type item struct {
		node  *PendingCommand
		depth int
	}
	stack := make([]item, 0, len(pending))
	for _, pc := range pending {
		stack = append(stack, item{pc, pc.Depth})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, up := range top.node.Upstream {
			if up.Depth < top.depth+1 {
				up.Depth = top.depth + 1
				stack = append(stack, item{up, up.Depth})
			}
		}
	}
}
