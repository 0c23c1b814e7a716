package motionplan

import (
	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"

	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/spatialmath"
)

// Below this distance the extracted node is the goal itself and no terminal node is synthesized.
const goalCoincidence = 1e-9

// GridPlanner is an A*-style planner over the 26-connected lattice anchored at the start
// position. Cells are closed greedily the first time they are expanded, so returned paths are
// not guaranteed to be cost-optimal.
type GridPlanner struct {
	env     Environment
	opts    *PlannerOptions
	offsets []r3.Vector
	clock   clock.Clock
	logger  logging.Logger
}

// NewGridPlanner returns a planner querying env. A nil opts uses NewBasicPlannerOptions.
func NewGridPlanner(env Environment, opts *PlannerOptions, logger logging.Logger) (*GridPlanner, error) {
	if env == nil {
		return nil, newNilEnvironmentError()
	}
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.StepSize < opts.KeyResolution {
		logger.Warnf("step size %v is smaller than closed-set resolution %v, distinct cells may share a key",
			opts.StepSize, opts.KeyResolution)
	}
	return &GridPlanner{
		env:     env,
		opts:    opts,
		offsets: latticeOffsets(opts.StepSize),
		clock:   clock.New(),
		logger:  logger,
	}, nil
}

// Plan runs one search from start to goal. Neither endpoint is checked against the environment.
// When the reachable lattice is exhausted without getting within one step of the goal the
// returned path is empty and the error is nil.
func (gp *GridPlanner) Plan(start, goal r3.Vector) ([]r3.Vector, *PlanMeta, error) {
	if !spatialmath.IsFinite(start) {
		return nil, nil, newNonFinitePointError("start", start)
	}
	if !spatialmath.IsFinite(goal) {
		return nil, nil, newNonFinitePointError("goal", goal)
	}

	meta := &PlanMeta{}
	startTime := gp.clock.Now()
	defer func() {
		gp.logger.Debugw("grid search finished",
			"found", meta.Found,
			"duration", meta.Duration,
			"expanded", meta.NodesExpanded,
			"pushed", meta.NodesPushed,
			"closed_skips", meta.ClosedSkips,
			"cost", meta.PathCost)
	}()

	step := gp.opts.StepSize
	arena := nodeArena{}
	open := &openSet{}
	closed := closedSet{}
	seq := 0

	push := func(pos r3.Vector, g float64, parent int) {
		idx := arena.add(pos, g, spatialmath.Distance(pos, goal), parent)
		open.push(idx, arena[idx].f, seq)
		seq++
		meta.NodesPushed++
	}

	push(start, 0, noParent)
	for open.Len() > 0 {
		idx := open.pop()
		current := arena[idx]

		if toGoal := spatialmath.Distance(current.pos, goal); toGoal < step {
			terminal := idx
			if toGoal >= goalCoincidence {
				terminal = arena.add(goal, current.g+toGoal, 0, idx)
			}
			meta.Found = true
			meta.PathCost = arena[terminal].g
			meta.DeferTiming(gp.clock, startTime)
			return arena.extractPath(terminal), meta, nil
		}

		key := newLatticeKey(current.pos, gp.opts.KeyResolution)
		if closed.contains(key) {
			meta.ClosedSkips++
			continue
		}
		closed.add(key)
		meta.NodesExpanded++

		for _, offset := range gp.offsets {
			next := current.pos.Add(offset)
			if gp.env.IsOutside(next) {
				meta.OutsideRejections++
				continue
			}
			if gp.env.IsCollide(next) {
				meta.CollisionRejections++
				continue
			}
			push(next, current.g+offset.Norm(), idx)
		}
	}

	meta.DeferTiming(gp.clock, startTime)
	return []r3.Vector{}, meta, nil
}
