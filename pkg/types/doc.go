// Package types defines the Archive and Table interfaces, the cut-planning
// entity types (Board, Cut, Job, Plan, Layout), and standard error values
// for the sawmill planning system.
package types
