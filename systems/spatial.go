package systems

// SpatialHash is the broad-phase index for particle-particle collision.
// It is rebuilt from scratch every step (particles move every frame,
// incremental maintenance would cost more than reinsertion) and maps
// quantized cell coordinates to the buffer indices of their occupants.
//
// Occupants are inserted in live-buffer order, which is ascending
// particle id by construction, so cell lists enumerate candidates in
// canonical order without sorting.
type SpatialHash struct {
	cellSize float32
	cells    map[cellKey][]int32
	// scratch holds recycled occupant slices between Clear calls.
	scratch [][]int32
}

type cellKey struct {
	X, Y, Z int32
}

// NewSpatialHash creates a hash with the given cell edge length.
func NewSpatialHash(cellSize float32) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int32, 256),
	}
}

// Clear removes all occupants, recycling the cell slices.
func (h *SpatialHash) Clear() {
	for k, occ := range h.cells {
		h.scratch = append(h.scratch, occ[:0])
		delete(h.cells, k)
	}
}

// Insert registers the particle at buffer index idx at a position.
func (h *SpatialHash) Insert(idx int32, x, y, z float32) {
	k := h.keyFor(x, y, z)
	occ, ok := h.cells[k]
	if !ok && len(h.scratch) > 0 {
		occ = h.scratch[len(h.scratch)-1]
		h.scratch = h.scratch[:len(h.scratch)-1]
	}
	h.cells[k] = append(occ, idx)
}

// ForNeighbors calls fn with each occupant of the particle's own cell
// and the 26 adjacent cells, in a fixed cell traversal order. The
// candidate set bounds pair-testing cost near-linear for uniform
// density. fn receives buffer indices; callers filter self/ordering.
func (h *SpatialHash) ForNeighbors(x, y, z float32, fn func(idx int32)) {
	center := h.keyFor(x, y, z)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				k := cellKey{center.X + dx, center.Y + dy, center.Z + dz}
				for _, idx := range h.cells[k] {
					fn(idx)
				}
			}
		}
	}
}

func (h *SpatialHash) keyFor(x, y, z float32) cellKey {
	return cellKey{
		X: floorDiv(x, h.cellSize),
		Y: floorDiv(y, h.cellSize),
		Z: floorDiv(z, h.cellSize),
	}
}

func floorDiv(v, cell float32) int32 {
	q := v / cell
	i := int32(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}
