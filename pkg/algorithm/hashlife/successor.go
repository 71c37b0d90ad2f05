package hashlife

// successor returns the centre of id advanced by 2^step generations, where
// step <= level-2. It returns noResult as soon as the engine is aborted, and
// never memoizes a result computed after that.
func (e *Engine) successor(id nodeID, step uint8) nodeID {
	if e.abort != nil {
		return noResult
	}
	e.calls++
	if e.calls%e.yieldEvery == 0 {
		if err := e.ctx.Err(); err != nil {
			e.abort = err
			return noResult
		}
	}

	s := e.store
	n := s.nodes[id]
	if id == s.emptyAt(n.level) {
		return s.emptyAt(n.level - 1)
	}
	full := step == n.level-2
	if full {
		if n.result != noResult {
			return n.result
		}
		if n.level == 2 {
			r := e.base(id)
			s.nodes[id].result = r
			return r
		}
	} else if r, ok := s.slow[slowKey{id: id, step: step}]; ok {
		return r
	}

	nw, ne, sw, se := s.nodes[n.nw], s.nodes[n.ne], s.nodes[n.sw], s.nodes[n.se]
	// The nine overlapping squares one level down.
	var sub [9]nodeID
	sub[0] = n.nw
	sub[1] = s.join(nw.ne, ne.nw, nw.se, ne.sw)
	sub[2] = n.ne
	sub[3] = s.join(nw.sw, nw.se, sw.nw, sw.ne)
	sub[4] = s.join(nw.se, ne.sw, sw.ne, se.nw)
	sub[5] = s.join(ne.sw, ne.se, se.nw, se.ne)
	sub[6] = n.sw
	sub[7] = s.join(sw.ne, se.nw, sw.se, se.sw)
	sub[8] = n.se

	var r [9]nodeID
	for i, q := range sub {
		if full {
			r[i] = e.successor(q, step-1)
			if e.abort != nil {
				return noResult
			}
		} else {
			r[i] = s.centre(q)
		}
	}

	inner := step - 1
	if !full {
		inner = step
	}
	quads := [4]nodeID{
		s.join(r[0], r[1], r[3], r[4]),
		s.join(r[1], r[2], r[4], r[5]),
		s.join(r[3], r[4], r[6], r[7]),
		s.join(r[4], r[5], r[7], r[8]),
	}
	var out [4]nodeID
	for i, q := range quads {
		out[i] = e.successor(q, inner)
		if e.abort != nil {
			return noResult
		}
	}
	result := s.join(out[0], out[1], out[2], out[3])

	if full {
		s.nodes[id].result = result
		e.stats.ResultComputations++
		if e.onResult != nil {
			e.onResult(id)
		}
	} else {
		s.slow[slowKey{id: id, step: step}] = result
		e.stats.SlowComputations++
	}
	return result
}

// base advances the centre 2x2 of a 4x4 node by one generation.
func (e *Engine) base(id nodeID) nodeID {
	s := e.store
	var grid [4][4]bool
	n := s.nodes[id]
	for qi, q := range [4]nodeID{n.nw, n.ne, n.sw, n.se} {
		qx, qy := (qi%2)*2, (qi/2)*2
		c := s.nodes[q]
		grid[qy][qx] = c.nw == aliveLeaf
		grid[qy][qx+1] = c.ne == aliveLeaf
		grid[qy+1][qx] = c.sw == aliveLeaf
		grid[qy+1][qx+1] = c.se == aliveLeaf
	}
	next := func(x, y int) nodeID {
		neighbors := 0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if (dx != 0 || dy != 0) && grid[y+dy][x+dx] {
					neighbors++
				}
			}
		}
		return leaf(e.rule.Next(grid[y][x], neighbors))
	}
	return s.join(next(1, 1), next(2, 1), next(1, 2), next(2, 2))
}
