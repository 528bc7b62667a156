package mesher

import "sync"

// Cell rows per work unit. Small enough to keep all consumers busy on
// squat grids, large enough that channel traffic stays negligible.
const defaultBandRows = 64

type StandardProducer struct {
	triangulator *Triangulator
	bandRows     int
}

func NewStandardProducer(triangulator *Triangulator) *StandardProducer {
	return &StandardProducer{
		triangulator: triangulator,
		bandRows:     defaultBandRows,
	}
}

// Produce partitions the grid's cell rows into banded WorkUnits and submits
// them to the work channel. Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup) {
	cellRows := p.triangulator.CellRows()

	index := 0
	for begin := 0; begin < cellRows; begin += p.bandRows {
		end := begin + p.bandRows
		if end > cellRows {
			end = cellRows
		}
		work <- &WorkUnit{Index: index, Begin: begin, End: end}
		index++
	}

	close(work)
	wg.Done()
}
