package zip

// deref follows a chain of REF cells to its end: either a non-REF cell or a
// self-referential (unbound) REF. Terminates because bind never creates a
// cycle (it always points the younger address at the older).
func (m *Machine) deref(addr int) int {
	for {
		w := m.mem.read(addr)
		if w.Tag() != REF || w.Value() == addr {
			return addr
		}
		addr = w.Value()
	}
}

// getWordAt dereferences addr and reads the cell found there.
func (m *Machine) getWordAt(addr int) Word {
	return m.mem.read(m.deref(addr))
}

// bind unifies two cells known to be dereferenced, at least one of which
// must be an unbound variable. It prefers binding the younger (higher
// address) variable to the older, which keeps dereference chains short and
// localizes trailing decisions; see §4.8.
func (m *Machine) bind(a1, a2 int) int {
	a1 = m.deref(a1)
	a2 = m.deref(a2)
	w1 := m.mem.read(a1)
	w2 := m.mem.read(a2)
	t1, t2 := w1.Tag(), w2.Tag()
	switch {
	case t1 == REF && (t2 != REF || a2 < a1):
		m.mem.write(a1, w2)
		m.trail(a1)
		return a1
	case t2 == REF:
		m.mem.write(a2, w1)
		m.trail(a2)
		return a2
	default:
		fault("bind: neither %d nor %d is an unbound variable", a1, a2)
		return 0
	}
}

// trail records addr so that backtrack can reset it to unbound, but only
// when that is necessary: a global cell older than the last choice point,
// or any local cell (local-stack cells above the choice point are still
// live within its scope). Cells that fail this test are reclaimed for free
// by resetting G0 on backtrack.
func (m *Machine) trail(addr int) {
	bg := m.G0
	if m.BL != nil {
		bg = m.BL.bg
	}
	if (isGlobalAddr(addr) && addr < bg) || isLocalAddr(addr) {
		if m.TR0 > MaxTrailAddr {
			fault("trail overflow")
		}
		m.mem.write(m.TR0, Word(uint32(addr)))
		m.TR0++
	}
}

// pushPDL and popPDL implement the unification worklist as a LIFO stack of
// address pairs living in the PDL memory area.
func (m *Machine) pushPDL(a1, a2 int) {
	if m.PDLptr+1 > MaxPDLAddr {
		fault("PDL overflow")
	}
	m.mem.write(m.PDLptr, Word(uint32(a1)))
	m.mem.write(m.PDLptr+1, Word(uint32(a2)))
	m.PDLptr += 2
}

func (m *Machine) popPDL() (int, int) {
	m.PDLptr -= 2
	a1 := int(m.mem.read(m.PDLptr))
	a2 := int(m.mem.read(m.PDLptr + 1))
	return a1, a2
}

// unifiable drives Robinson unification iteratively off the PDL, per §4.8.
// On failure the PDL is drained back to its entry depth before returning,
// so a failed unification never leaks worklist entries into the next call.
func (m *Machine) unifiable(a1, a2 int) bool {
	base := m.PDLptr
	m.pushPDL(a1, a2)
	for m.PDLptr > base {
		x, y := m.popPDL()
		dx, dy := m.deref(x), m.deref(y)
		wx, wy := m.mem.read(dx), m.mem.read(dy)
		tx, ty := wx.Tag(), wy.Tag()
		switch {
		case tx == REF || ty == REF:
			m.bind(dx, dy)
		case tx == CONS && ty == CONS:
			if wx.Value() != wy.Value() {
				m.PDLptr = base
				return false
			}
		case tx == LIS && ty == LIS:
			hx, hy := wx.Value(), wy.Value()
			m.pushPDL(hx, hy)
			m.pushPDL(hx+1, hy+1)
		case tx == STR && ty == STR:
			fx := m.mem.read(wx.Value())
			fy := m.mem.read(wy.Value())
			if fx.Value() != fy.Value() {
				m.PDLptr = base
				return false
			}
			arity := m.pool.FunctorAt(fx.Value()).Arity
			for i := 1; i <= arity; i++ {
				m.pushPDL(wx.Value()+i, wy.Value()+i)
			}
		default:
			m.PDLptr = base
			return false
		}
	}
	return true
}

// backtrack implements §4.9. It reports ok=false when BL is nil, meaning
// the query has no more answers; this is the normal exhaustion outcome,
// not a Fault.
func (m *Machine) backtrack() (addr int, ok bool) {
	if m.BL == nil {
		return 0, false
	}
	m.PM = MATCH
	m.PC = m.BL.bp.CodePtr
	if m.BL.cl != nil {
		m.CL = m.BL.cl
		m.L = m.BL
	}
	for a := m.BL.bt; a < m.TR0; a++ {
		reset := int(m.mem.read(a))
		m.mem.write(reset, Pack(REF, reset))
	}
	m.G0 = m.BL.bg
	m.TR0 = m.BL.bt
	if m.BL.bp.Next != nil {
		m.BL.bp = m.BL.bp.Next
	} else {
		m.BL = m.BL.bl
	}
	return m.L.addr, true
}
