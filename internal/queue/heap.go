// Package queue provides the min/max priority queue used by node
// programs to order traversal candidates (weaver core component C5
// support). It mirrors the teacher's container/heap-backed priority
// queue, generalized to carry an arbitrary payload alongside the
// priority.
package queue

import "container/heap"

// Item is a single entry in a PriorityQueue.
type Item struct {
	Priority uint64 // the priority used for ordering
	Value    any    // arbitrary payload carried alongside the priority
	index    int    // maintained by heap.Interface methods
}

// PriorityQueue implements heap.Interface over Items. Descending selects
// whether Pop returns the largest (true) or smallest (false) priority
// first — the Dijkstra program uses one ascending queue (shortest path)
// and one descending queue (widest path) over the same Item shape.
type PriorityQueue struct {
	Descending bool
	items      []*Item
}

var _ heap.Interface = (*PriorityQueue)(nil)

// New creates an empty PriorityQueue with the given ordering.
func New(descending bool) *PriorityQueue {
	return &PriorityQueue{Descending: descending}
}

// Len implements heap.Interface.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less implements heap.Interface.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.Descending {
		return pq.items[i].Priority > pq.items[j].Priority
	}
	return pq.items[i].Priority < pq.items[j].Priority
}

// Swap implements heap.Interface.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index, pq.items[j].index = i, j
}

// Push implements heap.Interface. Use PushItem for the public API.
func (pq *PriorityQueue) Push(x any) {
	item, _ := x.(*Item)
	item.index = len(pq.items)
	pq.items = append(pq.items, item)
}

// Pop implements heap.Interface. Use PopItem for the public API.
func (pq *PriorityQueue) Pop() any {
	n := len(pq.items)
	if n == 0 {
		return nil
	}
	old := pq.items
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	pq.items = old[:n-1]
	return item
}

// PushItem adds an item with the given priority and payload.
func (pq *PriorityQueue) PushItem(priority uint64, value any) {
	heap.Push(pq, &Item{Priority: priority, Value: value})
}

// PopItem removes and returns the top item, or nil if the queue is
// empty.
func (pq *PriorityQueue) PopItem() *Item {
	if pq.Len() == 0 {
		return nil
	}
	return heap.Pop(pq).(*Item)
}

// Empty reports whether the queue has no items.
func (pq *PriorityQueue) Empty() bool { return pq.Len() == 0 }
