package layout

import (
	"context"
	"slices"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
)

// dagreEngine is the pure Go layered layout. It follows the classic
// rank/order pipeline: greedy cycle removal, longest-path layer
// assignment, barycenter crossing reduction, then coordinate assignment
// with per-rank centering. Every step iterates in input order with
// stable sorts, so the result is deterministic for a fixed input graph
// and options.
type dagreEngine struct{}

// orderingSweeps is the number of down/up barycenter passes. Two full
// sweeps settle small and medium graphs; more buys little.
const orderingSweeps = 2

func (dagreEngine) computePositions(ctx context.Context, nodes []canvas.Node, edges []canvas.Edge, opts Options) (map[string]canvas.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := canvas.NodeIndex(nodes)
	g := newLayered(nodes, presentEdges(edges, index))

	g.removeCycles()
	g.assignRanks()
	g.orderRanks()

	return g.coordinates(opts), nil
}

// layered is the working state of the dagre pipeline. Node identity is
// the index into ids, so all bookkeeping runs on ints.
type layered struct {
	ids      []string
	outgoing [][]int // acyclic after removeCycles
	incoming [][]int
	rank     []int
	ranks    [][]int // rank -> node indices in left-to-right order
}

func newLayered(nodes []canvas.Node, edges []canvas.Edge) *layered {
	index := canvas.NodeIndex(nodes)
	g := &layered{
		ids:      make([]string, len(nodes)),
		outgoing: make([][]int, len(nodes)),
		incoming: make([][]int, len(nodes)),
		rank:     make([]int, len(nodes)),
	}
	for i, n := range nodes {
		g.ids[i] = n.ID
	}
	for _, e := range edges {
		from, to := index[e.Source], index[e.Target]
		g.outgoing[from] = append(g.outgoing[from], to)
		g.incoming[to] = append(g.incoming[to], from)
	}
	return g
}

// removeCycles drops back edges found by a depth-first traversal in
// input order. Canvas graphs are allowed to contain cycles; the layered
// pipeline needs an acyclic view, and greedily discarding back edges is
// the standard approximation.
func (g *layered) removeCycles() {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(g.ids))
	back := make(map[[2]int]bool)

	var dfs func(u int)
	dfs = func(u int) {
		color[u] = gray
		for _, v := range g.outgoing[u] {
			switch color[v] {
			case white:
				dfs(v)
			case gray:
				back[[2]int{u, v}] = true
			}
		}
		color[u] = black
	}
	for u := range g.ids {
		if color[u] == white {
			dfs(u)
		}
	}

	if len(back) == 0 {
		return
	}
	for u := range g.outgoing {
		g.outgoing[u] = slices.DeleteFunc(g.outgoing[u], func(v int) bool { return back[[2]int{u, v}] })
	}
	for v := range g.incoming {
		g.incoming[v] = slices.DeleteFunc(g.incoming[v], func(u int) bool { return back[[2]int{u, v}] })
	}
}

// assignRanks computes layer assignments by longest path via topological
// sort (Kahn's algorithm): sources sit at rank 0 and every node lands at
// one plus the maximum rank of its parents.
func (g *layered) assignRanks() {
	inDegree := make([]int, len(g.ids))
	queue := make([]int, 0, len(g.ids))
	for u := range g.ids {
		inDegree[u] = len(g.incoming[u])
		if inDegree[u] == 0 {
			queue = append(queue, u)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.outgoing[u] {
			if r := g.rank[u] + 1; r > g.rank[v] {
				g.rank[v] = r
			}
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	maxRank := 0
	for _, r := range g.rank {
		if r > maxRank {
			maxRank = r
		}
	}
	g.ranks = make([][]int, maxRank+1)
	for u := range g.ids {
		g.ranks[g.rank[u]] = append(g.ranks[g.rank[u]], u)
	}
}

// orderRanks reduces edge crossings with alternating down/up barycenter
// sweeps. Each pass stably re-sorts a rank by the mean position of its
// neighbors in the adjacent fixed rank; nodes without neighbors keep
// their current slot.
func (g *layered) orderRanks() {
	for sweep := 0; sweep < orderingSweeps; sweep++ {
		for r := 1; r < len(g.ranks); r++ {
			g.sortByBarycenter(r, g.incoming)
		}
		for r := len(g.ranks) - 2; r >= 0; r-- {
			g.sortByBarycenter(r, g.outgoing)
		}
	}
}

func (g *layered) sortByBarycenter(r int, neighbors [][]int) {
	row := g.ranks[r]
	pos := make([]int, len(g.ids))
	for r2, rank := range g.ranks {
		if r2 != r {
			for i, u := range rank {
				pos[u] = i
			}
		}
	}

	bary := make(map[int]float64, len(row))
	for i, u := range row {
		adjacent := 0
		sum := 0.0
		for _, v := range neighbors[u] {
			sum += float64(pos[v])
			adjacent++
		}
		if adjacent == 0 {
			bary[u] = float64(i)
		} else {
			bary[u] = sum / float64(adjacent)
		}
	}

	slices.SortStableFunc(row, func(a, b int) int {
		switch {
		case bary[a] < bary[b]:
			return -1
		case bary[a] > bary[b]:
			return 1
		default:
			return 0
		}
	})
}

// coordinates converts ranks and orders into center positions. The rank
// axis advances by the node extent plus RankSpacing; within a rank,
// nodes advance by the node extent plus NodeSpacing and each rank is
// centered against the widest one. Directions other than TB are axis
// flips and swaps of the same arrangement.
func (g *layered) coordinates(opts Options) map[string]canvas.Position {
	horizontal := opts.Direction == DirectionLR || opts.Direction == DirectionRL
	rankExtent, crossExtent := NodeHeight, NodeWidth
	if horizontal {
		rankExtent, crossExtent = NodeWidth, NodeHeight
	}

	maxCross := 0.0
	for _, rank := range g.ranks {
		if w := rankWidth(len(rank), crossExtent, opts.NodeSpacing); w > maxCross {
			maxCross = w
		}
	}
	rankSpan := float64(len(g.ranks)-1)*(rankExtent+opts.RankSpacing) + rankExtent

	centers := make(map[string]canvas.Position, len(g.ids))
	for r, rank := range g.ranks {
		rankPos := float64(r)*(rankExtent+opts.RankSpacing) + rankExtent/2
		start := (maxCross - rankWidth(len(rank), crossExtent, opts.NodeSpacing)) / 2
		for i, u := range rank {
			crossPos := start + float64(i)*(crossExtent+opts.NodeSpacing) + crossExtent/2

			var p canvas.Position
			switch opts.Direction {
			case DirectionBT:
				p = canvas.Position{X: crossPos, Y: rankSpan - rankPos}
			case DirectionLR:
				p = canvas.Position{X: rankPos, Y: crossPos}
			case DirectionRL:
				p = canvas.Position{X: rankSpan - rankPos, Y: crossPos}
			default: // TB
				p = canvas.Position{X: crossPos, Y: rankPos}
			}
			centers[g.ids[u]] = p
		}
	}
	return centers
}

func rankWidth(n int, extent, spacing float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*extent + float64(n-1)*spacing
}
