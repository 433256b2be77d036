package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
)

// Traverser runs host-side level-synchronous BFS on a worker pool. It is the
// reference the device kernels are checked against.
type Traverser struct {
	workerPool *WorkerPool
	numWorkers int
}

// NewTraverser creates a traverser with numWorkers workers (one per CPU when
// numWorkers <= 0).
func NewTraverser(numWorkers int) (*Traverser, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	pool, err := NewWorkerPool(numWorkers)
	if err != nil {
		return nil, err
	}
	return &Traverser{workerPool: pool, numWorkers: numWorkers}, nil
}

// BFS returns the parent and distance of every node of g. Each reached node's
// parent is its smallest-id predecessor one level up; the source is its own
// parent. Unreached nodes keep csr.InvalidNode and csr.Unreached.
func (t *Traverser) BFS(g *csr.Graph, source csr.NodeID) (parents, distances []int32, err error) {
	n := g.NumNodes()
	parents = make([]int32, n)
	distances = make([]int32, n)
	for i := range parents {
		parents[i] = csr.InvalidNode
		distances[i] = csr.Unreached
	}
	if n == 0 {
		return parents, distances, nil
	}
	if source < 0 || int(source) >= n {
		return nil, nil, csr.ErrNodeOutOfRange
	}

	parents[source] = source
	distances[source] = 0
	currentLevel := []csr.NodeID{source}

	for depth := int32(0); len(currentLevel) > 0; depth++ {
		var (
			levelWg   sync.WaitGroup
			mu        sync.Mutex
			nextLevel []csr.NodeID
		)

		// Divide current level among workers
		chunkSize := (len(currentLevel) + t.numWorkers - 1) / t.numWorkers
		for i := 0; i < len(currentLevel); i += chunkSize {
			chunk := currentLevel[i:min(i+chunkSize, len(currentLevel))]
			levelWg.Add(1)

			ok := t.workerPool.Submit(func() {
				defer levelWg.Done()
				found := t.processChunk(g, chunk, depth+1, parents, distances)
				mu.Lock()
				nextLevel = append(nextLevel, found...)
				mu.Unlock()
			})
			if !ok {
				levelWg.Done()
				levelWg.Wait()
				return nil, nil, ErrPoolClosed
			}
		}

		// Wait for level to complete
		levelWg.Wait()
		currentLevel = nextLevel
	}
	return parents, distances, nil
}

// processChunk expands one slice of the frontier and returns the nodes it
// claimed for the next level.
func (t *Traverser) processChunk(g *csr.Graph, nodes []csr.NodeID, next int32, parents, distances []int32) []csr.NodeID {
	var found []csr.NodeID
	for _, u := range nodes {
		for _, v := range g.Neighbors(u) {
			if atomic.CompareAndSwapInt32(&distances[v], csr.Unreached, next) {
				found = append(found, v)
			}
			// Every predecessor on this level competes for the parent slot.
			if atomic.LoadInt32(&distances[v]) == next {
				minParent(&parents[v], u)
			}
		}
	}
	return found
}

func minParent(p *int32, u csr.NodeID) {
	for {
		old := atomic.LoadInt32(p)
		if old != csr.InvalidNode && old <= u {
			return
		}
		if atomic.CompareAndSwapInt32(p, old, u) {
			return
		}
	}
}

// Close closes the worker pool
func (t *Traverser) Close() {
	t.workerPool.Close()
}
