package hashlife

// nodeID indexes the node arena. Children are always created before their
// parent, so a child's id is smaller than its parent's.
type nodeID uint32

const (
	deadLeaf  nodeID = 0
	aliveLeaf nodeID = 1

	// noResult marks a successor that has not been computed. Successors are
	// at least level 1, so they can never be one of the leaves.
	noResult nodeID = 0
)

// node is a square of side 2^level. Leaves carry no children; their id says
// whether the cell is alive.
type node struct {
	level          uint8
	nw, ne, sw, se nodeID
	// result is the centre of the node 2^(level-2) generations later.
	result nodeID
}

type nodeKey struct {
	level          uint8
	nw, ne, sw, se nodeID
}

type slowKey struct {
	id   nodeID
	step uint8
}

// store owns the canonical nodes of one engine. Structurally identical
// squares always resolve to the same id.
type store struct {
	nodes []node
	table map[nodeKey]nodeID
	empty []nodeID
	// slow memoizes successors taken at less than full speed: 2^step
	// generations with step < level-2.
	slow map[slowKey]nodeID
}

func newStore() *store {
	s := &store{}
	s.reset()
	return s
}

func (s *store) reset() {
	s.nodes = []node{{level: 0}, {level: 0}}
	s.table = make(map[nodeKey]nodeID)
	s.empty = []nodeID{deadLeaf}
	s.slow = make(map[slowKey]nodeID)
}

func (s *store) level(id nodeID) uint8 { return s.nodes[id].level }

// join returns the canonical node with the given quadrants, all of which must
// share one level.
func (s *store) join(nw, ne, sw, se nodeID) nodeID {
	k := nodeKey{level: s.nodes[nw].level + 1, nw: nw, ne: ne, sw: sw, se: se}
	if id, ok := s.table[k]; ok {
		return id
	}
	id := nodeID(len(s.nodes))
	s.nodes = append(s.nodes, node{level: k.level, nw: nw, ne: ne, sw: sw, se: se})
	s.table[k] = id
	return id
}

func leaf(alive bool) nodeID {
	if alive {
		return aliveLeaf
	}
	return deadLeaf
}

// emptyAt returns the all-dead node of the given level.
func (s *store) emptyAt(level uint8) nodeID {
	for int(level) >= len(s.empty) {
		e := s.empty[len(s.empty)-1]
		s.empty = append(s.empty, s.join(e, e, e, e))
	}
	return s.empty[level]
}

func (s *store) isEmpty(id nodeID) bool {
	return id == s.emptyAt(s.nodes[id].level)
}

// centre returns the level-1 smaller square in the middle of id.
func (s *store) centre(id nodeID) nodeID {
	n := s.nodes[id]
	return s.join(s.nodes[n.nw].se, s.nodes[n.ne].sw, s.nodes[n.sw].ne, s.nodes[n.se].nw)
}

// onlyCentreAlive reports whether every live cell of id lies in its centre
// square, i.e. the twelve outer grandchildren are empty.
func (s *store) onlyCentreAlive(id nodeID) bool {
	n := s.nodes[id]
	if n.level < 2 {
		return false
	}
	e := s.emptyAt(n.level - 2)
	nw, ne, sw, se := s.nodes[n.nw], s.nodes[n.ne], s.nodes[n.sw], s.nodes[n.se]
	return nw.nw == e && nw.ne == e && nw.sw == e &&
		ne.nw == e && ne.ne == e && ne.se == e &&
		sw.nw == e && sw.sw == e && sw.se == e &&
		se.ne == e && se.sw == e && se.se == e
}

// expand wraps id in a node one level larger with id at its centre.
func (s *store) expand(id nodeID) nodeID {
	n := s.nodes[id]
	e := s.emptyAt(n.level - 1)
	return s.join(
		s.join(e, e, e, n.nw),
		s.join(e, e, n.ne, e),
		s.join(e, n.sw, e, e),
		s.join(n.se, e, e, e),
	)
}
