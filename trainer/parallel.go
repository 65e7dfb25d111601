package trainer

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum number of active games to step in parallel.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// workChunk is a range of games for a worker to step.
type workChunk struct {
	start, end int
}

// workerPool steps games on persistent goroutines. Games share no state, so
// the result matches sequential stepping.
type workerPool struct {
	games      []*SimGame
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: numWorkers}
}

// start launches the worker goroutines.
func (p *workerPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *workerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			stepRange(p.games[chunk.start:chunk.end])
			p.doneChan <- struct{}{}
		}
	}
}

// step advances every game by one tick and returns once all are done.
func (p *workerPool) step(games []*SimGame) {
	n := len(games)
	if n < parallelThreshold || p.numWorkers == 1 {
		stepRange(games)
		return
	}

	if !p.running {
		p.start()
	}
	p.games = games

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
	p.games = nil
}

func stepRange(games []*SimGame) {
	for _, g := range games {
		g.Step()
	}
}
