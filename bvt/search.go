package bvt

import (
	"container/heap"
	"math"

	"go.viam.com/collide/spatialmath"
)

// CostFn drives BestFirstSearch. ComputeBVCost returns a lower bound on the cost of anything inside
// bv, or false to prune it. ComputeLeafCost returns the exact cost and result of a leaf, or false
// when the leaf yields no candidate.
type CostFn[V spatialmath.Vector[V], R any] interface {
	ComputeBVCost(bv spatialmath.AABB[V]) (float64, bool)
	ComputeLeafCost(index int) (float64, R, bool)
}

type queueItem struct {
	node int
	cost float64
	seq  int
}

// costQueue implements a min-heap of nodes ordered by cost, then by insertion order.
type costQueue []queueItem

func (pq costQueue) Len() int { return len(pq) }

func (pq costQueue) Less(i, j int) bool {
	if pq[i].cost == pq[j].cost {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].cost < pq[j].cost
}

func (pq costQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *costQueue) Push(x interface{}) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *costQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// BestFirstSearch visits the tree in order of increasing cost and returns the result of the
// cheapest leaf. A node is only expanded while its cost is below the best leaf cost found so far.
// It returns false when every branch was pruned or no leaf produced a candidate.
func BestFirstSearch[V spatialmath.Vector[V], R any](t *Tree[V], fn CostFn[V, R]) (R, bool) {
	var best R
	found := false
	bestCost := math.Inf(1)

	root, ok := t.Root()
	if !ok {
		return best, false
	}
	rootCost, ok := fn.ComputeBVCost(root.BV)
	if !ok {
		return best, false
	}

	seq := 0
	pq := &costQueue{{node: t.root, cost: rootCost, seq: seq}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem)
		if item.cost >= bestCost {
			break
		}

		node := t.nodes[item.node]
		if node.IsLeaf() {
			cost, res, ok := fn.ComputeLeafCost(node.Index)
			if ok && cost < bestCost {
				bestCost = cost
				best = res
				found = true
			}
			continue
		}

		for _, child := range [2]int{node.Left, node.Right} {
			cost, ok := fn.ComputeBVCost(t.nodes[child].BV)
			if !ok {
				continue
			}
			seq++
			heap.Push(pq, queueItem{node: child, cost: cost, seq: seq})
		}
	}
	return best, found
}
