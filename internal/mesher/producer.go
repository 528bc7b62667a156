package mesher

import "sync"

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup)
}

type Consumer interface {
	Consume(work chan *WorkUnit, out chan *FacetBatch, wg *sync.WaitGroup)
}
