package mesher

import "github.com/oliver-rew/topo-tool/internal/mesh"

// WorkUnit is a contiguous band of cell rows to triangulate independently.
type WorkUnit struct {
	Index int
	Begin int
	End   int
}

// FacetBatch carries the facets of one work unit. The writer merges batches
// back in Index order, so the output stream is identical to a sequential
// walk regardless of how many consumers ran.
type FacetBatch struct {
	Index  int
	Facets []mesh.Triangle
}
