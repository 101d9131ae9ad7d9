package octigrid

import "errors"

// Sentinel errors returned by the octigrid package.
var (
	// ErrBadDimensions indicates a non-positive grid width or height.
	ErrBadDimensions = errors.New("octigrid: width and height must be positive")
	// ErrSinkOutOfRange indicates a sink index outside [0, Width*Height).
	ErrSinkOutOfRange = errors.New("octigrid: sink index out of range")
	// ErrSinkClosed indicates an operation targeted a sink marked closed
	// with CloseSink (for example because an obstacle covers it).
	ErrSinkClosed = errors.New("octigrid: sink is closed")
	// ErrSinkAlreadySettled indicates settleNd was called on a sink that
	// already carries a settled CombNode.
	ErrSinkAlreadySettled = errors.New("octigrid: sink already settled")
	// ErrSinkNotSettled indicates unSettleNd was called on a sink with no
	// settled CombNode.
	ErrSinkNotSettled = errors.New("octigrid: sink is not settled")
	// ErrNoPath indicates a multi-target Dijkstra search exhausted its
	// frontier without reaching any target.
	ErrNoPath = errors.New("octigrid: no path to any target sink")
	// ErrNoSources indicates search was called with an empty source set.
	ErrNoSources = errors.New("octigrid: source set is empty")
	// ErrNoTargets indicates search was called with an empty target set.
	ErrNoTargets = errors.New("octigrid: target set is empty")
	// ErrEdgeOutOfRange indicates a grid-edge index outside [0, len(AllEdges)).
	ErrEdgeOutOfRange = errors.New("octigrid: grid edge index out of range")
)
