package physics

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/rigid/geom"
)

// DefaultParallelThreshold is the minimum body count to use parallel passes.
// Below this, single-threaded is faster due to goroutine overhead.
const DefaultParallelThreshold = 64

type passKind uint8

const (
	passForces passKind = iota
	passMotion
)

// passParams are copied by value into every chunk so workers never read World.
type passParams struct {
	dt             float32
	gravity        geom.Vec2
	linearDamping  float32
	angularDamping float32
}

// workChunk is a disjoint sub-slice of the bodies for one worker.
type workChunk struct {
	bodies []Body
	kind   passKind
	params passParams
}

// parallelState holds the worker pool for integration passes.
type parallelState struct {
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(numWorkers, threshold int) *parallelState {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if threshold < 0 {
		threshold = DefaultParallelThreshold
	}
	return &parallelState{
		numWorkers: numWorkers,
		threshold:  threshold,
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
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

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			runPass(chunk.kind, chunk.bodies, chunk.params)
			p.doneChan <- struct{}{}
		}
	}
}

// run applies one pass to every body and returns once all of them are done.
func (p *parallelState) run(bodies []Body, kind passKind, params passParams) {
	n := len(bodies)
	if n == 0 {
		return
	}

	if n < p.threshold || p.numWorkers == 1 {
		runPass(kind, bodies, params)
		return
	}

	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		p.workChan <- workChunk{bodies: bodies[start:end], kind: kind, params: params}
		chunksDispatched++
	}

	// Barrier: the next pass must not start before every chunk finishes
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

func runPass(kind passKind, bodies []Body, params passParams) {
	switch kind {
	case passForces:
		integrateForcesRange(bodies, params)
	case passMotion:
		integrateRange(bodies, params)
	}
}

// integrateForcesRange moves accumulated force and torque into velocity.
// Accumulators are cleared on every body, including ones that are skipped.
func integrateForcesRange(bodies []Body, p passParams) {
	for i := range bodies {
		b := &bodies[i]
		if !b.Static && b.Active {
			if b.AffectedByGravity {
				b.Force = b.Force.Add(p.gravity)
			}
			b.LinearVelocity = b.LinearVelocity.Add(b.Force.Scale(b.InvMass).Scale(p.dt))
			b.AngularVelocity += b.Torque * b.InvInertia * p.dt
		}
		b.Force = geom.Zero
		b.Torque = 0
	}
}

// integrateRange moves velocity into position and orientation, then damps.
func integrateRange(bodies []Body, p passParams) {
	for i := range bodies {
		b := &bodies[i]
		if b.Static || !b.Active {
			continue
		}
		b.Position = b.Position.Add(b.LinearVelocity.Scale(p.dt))
		b.Orientation += b.AngularVelocity * p.dt
		b.LinearVelocity = b.LinearVelocity.Scale(p.linearDamping)
		b.AngularVelocity *= p.angularDamping
		b.Update()
	}
}
