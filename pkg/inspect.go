package pkg

import (
	"math"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"

	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/pipeline"
	"github.com/oliver-rew/topo-tool/tools"
)

type Inspector struct{}

func NewInspector() pipeline.IInspector {
	return &Inspector{}
}

// RunInspector parses a written binary STL back and reports facet count,
// bounds and surface area. Useful as a cheap sanity check that a mesh is
// complete before feeding it to a slicer.
func (inspector *Inspector) RunInspector(opts *pipeline.InspectOptions) error {
	glog.Infoln("> reading mesh...", opts.Input)

	m, err := mesh.ReadStlFile(opts.Input)
	if err != nil {
		return err
	}

	tools.LogOutput("header:", m.Header)
	tools.LogOutput("facets:", len(m.Triangles), "(declared", m.DeclaredCount, ")")

	if len(m.Triangles) == 0 {
		return &pipeline.EmptyMeshError{Input: opts.Input}
	}

	min, max := meshBounds(m)
	tools.LogOutput("bounds x:", min.X, "..", max.X)
	tools.LogOutput("bounds y:", min.Y, "..", max.Y)
	tools.LogOutput("bounds z:", min.Z, "..", max.Z)

	// per-facet areas are tiny against the running total on big meshes;
	// a decimal accumulator keeps the sum from drifting
	area := decimal.Zero
	for _, t := range m.Triangles {
		area = area.Add(decimal.NewFromFloat(facetArea(t)))
	}
	tools.LogOutput("surface area:", area.Round(3).String())

	return nil
}

func meshBounds(m *mesh.StlMesh) (min, max mesh.Vertex) {
	min = m.Triangles[0].V[0]
	max = min
	for _, t := range m.Triangles {
		for _, v := range t.V {
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.Z < min.Z {
				min.Z = v.Z
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
			if v.Z > max.Z {
				max.Z = v.Z
			}
		}
	}
	return min, max
}

func facetArea(t mesh.Triangle) float64 {
	e1x := float64(t.V[1].X - t.V[0].X)
	e1y := float64(t.V[1].Y - t.V[0].Y)
	e1z := float64(t.V[1].Z - t.V[0].Z)

	e2x := float64(t.V[2].X - t.V[0].X)
	e2y := float64(t.V[2].Y - t.V[0].Y)
	e2z := float64(t.V[2].Z - t.V[0].Z)

	cx := e1y*e2z - e1z*e2y
	cy := e1z*e2x - e1x*e2z
	cz := e1x*e2y - e1y*e2x

	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}
