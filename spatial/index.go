// Package spatial provides a uniform-grid index over node bounding boxes,
// used for obstacle queries during routing and for large-graph viewport
// queries.
package spatial

import (
	"math"

	"github.com/flowcraft/edgeroute/lib/geo"
)

const DefaultGridSize = 500.0

type Obstacle struct {
	ID  string
	Box *geo.Box
}

type cellCoord struct {
	X, Y int
}

// Index buckets obstacles by integer grid cell. Rebuilt whenever the node
// set changes; not safe for concurrent use (the engine is single-threaded).
type Index struct {
	gridSize float64
	cells    map[cellCoord][]Obstacle
	count    int
}

func NewIndex(gridSize float64) *Index {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	return &Index{
		gridSize: gridSize,
		cells:    make(map[cellCoord][]Obstacle),
	}
}

func (idx *Index) cellOf(x, y float64) cellCoord {
	return cellCoord{
		X: int(math.Floor(x / idx.gridSize)),
		Y: int(math.Floor(y / idx.gridSize)),
	}
}

func (idx *Index) Insert(obstacles []Obstacle) {
	for _, o := range obstacles {
		min := idx.cellOf(o.Box.Left(), o.Box.Top())
		max := idx.cellOf(o.Box.Right(), o.Box.Bottom())
		for cx := min.X; cx <= max.X; cx++ {
			for cy := min.Y; cy <= max.Y; cy++ {
				c := cellCoord{cx, cy}
				idx.cells[c] = append(idx.cells[c], o)
			}
		}
	}
	idx.count += len(obstacles)
}

func (idx *Index) Clear() {
	idx.cells = make(map[cellCoord][]Obstacle)
	idx.count = 0
}

func (idx *Index) Rebuild(obstacles []Obstacle) {
	idx.Clear()
	idx.Insert(obstacles)
}

func (idx *Index) Len() int {
	return idx.count
}

// QueryRect returns the obstacles whose bounding boxes overlap the query
// rectangle. Only cells overlapping the rectangle are visited; candidates
// spanning multiple cells are deduplicated by id and exact-bounds filtered.
func (idx *Index) QueryRect(bounds *geo.Box) []Obstacle {
	min := idx.cellOf(bounds.Left(), bounds.Top())
	max := idx.cellOf(bounds.Right(), bounds.Bottom())

	seen := make(map[string]struct{})
	var out []Obstacle
	for cx := min.X; cx <= max.X; cx++ {
		for cy := min.Y; cy <= max.Y; cy++ {
			for _, o := range idx.cells[cellCoord{cx, cy}] {
				if _, dup := seen[o.ID]; dup {
					continue
				}
				seen[o.ID] = struct{}{}
				if o.Box.Overlaps(bounds) {
					out = append(out, o)
				}
			}
		}
	}
	return out
}
