package cellstate

// MutableCellState accumulates interactive edits before they are frozen into
// a CellState. It is not safe for concurrent use.
type MutableCellState struct {
	set map[Coord]struct{}
}

// NewMutable returns a mutable copy of s.
func NewMutable(s CellState) *MutableCellState {
	m := &MutableCellState{set: make(map[Coord]struct{}, s.Len())}
	for _, c := range s.cells {
		m.set[c] = struct{}{}
	}
	return m
}

// SetAlive marks c as alive.
func (m *MutableCellState) SetAlive(c Coord) { m.set[c] = struct{}{} }

// SetDead marks c as dead.
func (m *MutableCellState) SetDead(c Coord) { delete(m.set, c) }

// Toggle flips c and returns its new state.
func (m *MutableCellState) Toggle(c Coord) bool {
	if _, ok := m.set[c]; ok {
		delete(m.set, c)
		return false
	}
	m.set[c] = struct{}{}
	return true
}

// Contains reports whether c is currently alive.
func (m *MutableCellState) Contains(c Coord) bool {
	_, ok := m.set[c]
	return ok
}

// Len returns the number of live cells.
func (m *MutableCellState) Len() int { return len(m.set) }

// Snapshot freezes the current edits into an immutable CellState. Later edits
// do not affect the returned value.
func (m *MutableCellState) Snapshot() CellState { return FromSet(m.set) }
