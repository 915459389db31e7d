package network

import "errors"

// Sentinel errors for network construction and traversal.
var (
	// ErrDanglingEndpoint indicates an arc references a vertex outside the
	// network's vertex set.
	ErrDanglingEndpoint = errors.New("network: arc endpoint not in vertex set")

	// ErrCycleDetected indicates TopologicalSort found a cycle; the
	// shortest-path and column-generation layers assume acyclicity and
	// cannot proceed (see spec Non-goals).
	ErrCycleDetected = errors.New("network: cycle detected, topological sort requires acyclicity")
)

// dfsColor is the three-state DFS visitation marker used for cycle
// detection during topological sort, mirroring the teacher's
// white/gray/black scheme in dfs.TopologicalSort.
type dfsColor uint8

const (
	white dfsColor = iota
	gray
	black
)
