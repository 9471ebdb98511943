package csp

import "container/heap"

// pendingSet is an ordered set of non-negative positions, popped in
// ascending order. It backs System.toMinimise: container/heap gives O(log n)
// push/pop, the same structure the example pack's SAT solver (cespare's
// saturday) uses for its unassigned-literal priority queue, here repurposed
// for ascending rather than priority order. A membership map makes Remove
// O(1) with lazy deletion from the heap on pop.
type pendingSet struct {
	heap    intHeap
	present map[int]struct{}
}

func newPendingSet() *pendingSet {
	return &pendingSet{present: map[int]struct{}{}}
}

// push enqueues i, a no-op if i is already pending.
func (p *pendingSet) push(i int) {
	if _, ok := p.present[i]; ok {
		return
	}
	p.present[i] = struct{}{}
	heap.Push(&p.heap, i)
}

// remove marks i as no longer pending. It is safe to call even if i was
// never pushed.
func (p *pendingSet) remove(i int) {
	delete(p.present, i)
}

// contains reports whether i is currently pending.
func (p *pendingSet) contains(i int) bool {
	_, ok := p.present[i]
	return ok
}

// popMin removes and returns the smallest pending position. The second
// return is false once the set is empty.
func (p *pendingSet) popMin() (int, bool) {
	for p.heap.Len() > 0 {
		i := heap.Pop(&p.heap).(int)
		if _, ok := p.present[i]; ok {
			delete(p.present, i)
			return i, true
		}
		// Stale heap entry left by a prior remove(); skip it.
	}
	return 0, false
}

func (p *pendingSet) isEmpty() bool {
	return len(p.present) == 0
}

func (p *pendingSet) len() int {
	return len(p.present)
}

// queueAll resets the set to contain every position in [0, n).
func (p *pendingSet) queueAll(n int) {
	p.heap = p.heap[:0]
	p.present = make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		p.present[i] = struct{}{}
		heap.Push(&p.heap, i)
	}
}

// clone returns an independent copy.
func (p *pendingSet) clone() *pendingSet {
	np := &pendingSet{
		heap:    append(intHeap(nil), p.heap...),
		present: make(map[int]struct{}, len(p.present)),
	}
	for i := range p.present {
		np.present[i] = struct{}{}
	}
	return np
}

// intHeap is a min-heap of ints implementing container/heap.Interface.
type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
