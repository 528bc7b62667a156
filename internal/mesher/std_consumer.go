package mesher

import "sync"

type StandardConsumer struct {
	triangulator *Triangulator
}

func NewStandardConsumer(triangulator *Triangulator) *StandardConsumer {
	return &StandardConsumer{
		triangulator: triangulator,
	}
}

// Consume triangulates WorkUnits from the work channel until it is closed,
// submitting each resulting FacetBatch to the output channel.
func (c *StandardConsumer) Consume(work chan *WorkUnit, out chan *FacetBatch, wg *sync.WaitGroup) {
	for {
		unit, ok := <-work
		if !ok {
			break
		}

		out <- &FacetBatch{
			Index:  unit.Index,
			Facets: c.triangulator.TriangulateRows(unit.Begin, unit.End),
		}
	}

	wg.Done()
}
