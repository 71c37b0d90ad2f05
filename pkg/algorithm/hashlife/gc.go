package hashlife

import "go.uber.org/zap"

// maybeCollect compacts the arena when it has outgrown maxNodes, keeping only
// the nodes reachable from u.root. Memoized successors that point at
// collected nodes are forgotten and will be recomputed on demand.
func (e *Engine) maybeCollect(u *universe) {
	s := e.store
	if len(s.nodes) <= e.maxNodes {
		return
	}
	before := len(s.nodes)

	live := make([]bool, len(s.nodes))
	live[deadLeaf], live[aliveLeaf] = true, true
	var mark func(id nodeID)
	mark = func(id nodeID) {
		if live[id] {
			return
		}
		live[id] = true
		n := s.nodes[id]
		mark(n.nw)
		mark(n.ne)
		mark(n.sw)
		mark(n.se)
	}
	mark(u.root)
	for _, id := range s.empty {
		mark(id)
	}

	// Children precede parents, so a single pass in id order remaps them.
	remap := make([]nodeID, len(s.nodes))
	nodes := make([]node, 0, len(s.nodes)/2)
	for id, n := range s.nodes {
		if !live[id] {
			continue
		}
		remap[id] = nodeID(len(nodes))
		if n.level > 0 {
			n.nw, n.ne, n.sw, n.se = remap[n.nw], remap[n.ne], remap[n.sw], remap[n.se]
		}
		nodes = append(nodes, n)
	}
	table := make(map[nodeKey]nodeID, len(nodes))
	for id := range nodes {
		n := &nodes[id]
		if n.result != noResult {
			if live[n.result] {
				n.result = remap[n.result]
			} else {
				n.result = noResult
			}
		}
		if n.level > 0 {
			table[nodeKey{level: n.level, nw: n.nw, ne: n.ne, sw: n.sw, se: n.se}] = nodeID(id)
		}
	}
	slow := make(map[slowKey]nodeID)
	for k, v := range s.slow {
		if live[k.id] && live[v] {
			slow[slowKey{id: remap[k.id], step: k.step}] = remap[v]
		}
	}
	for i, id := range s.empty {
		s.empty[i] = remap[id]
	}
	s.nodes, s.table, s.slow = nodes, table, slow
	u.root = remap[u.root]

	e.stats.Collections++
	// Avoid collecting on every jump when the live pattern alone is large.
	if len(nodes)*2 > e.maxNodes {
		e.maxNodes = len(nodes) * 2
	}
	e.logger.Debug("hashlife collection",
		zap.Int("before", before),
		zap.Int("after", len(nodes)),
		zap.Int("max_nodes", e.maxNodes))
}
