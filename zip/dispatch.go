package zip

// pushScratch and popScratch implement the scratchpad of §4.7/§9: a tiny
// LIFO of (address, mode) pairs remembering where to resume, and under
// which mode, once a nested compound has been fully matched or copied.
func (m *Machine) pushScratch(addr int, mode Mode) {
	if m.SPptr+1 > MaxScratchpadAddr {
		fault("scratchpad overflow")
	}
	m.mem.write(m.SPptr, Word(uint32(addr)))
	m.mem.write(m.SPptr+1, Word(uint32(mode)))
	m.SPptr += 2
}

func (m *Machine) popScratch() (int, Mode) {
	m.SPptr -= 2
	addr := int(m.mem.read(m.SPptr))
	mode := Mode(m.mem.read(m.SPptr + 1))
	return addr, mode
}

// resolveCopyMode climbs the scratchpad past COPY entries to find the mode
// in effect when the enclosing FUNCTOR was first pushed: COPY nests,
// inheriting from the enclosing non-COPY (MATCH or ARG) mode. See the
// "Mode inheritance under COPY" design note.
func (m *Machine) resolveCopyMode() Mode {
	for p := m.SPptr - 2; p >= MinScratchpadAddr; p -= 2 {
		mode := Mode(m.mem.read(p + 1))
		if mode != COPY {
			return mode
		}
	}
	fault("no non-COPY ancestor mode found on scratchpad")
	return 0
}

// fetchOperand converts a frame-relative variable offset to an absolute
// local-stack address, per §4.7.
func (m *Machine) fetchOperand(offset int) int {
	switch m.PM {
	case MATCH:
		return offset + m.L.addr
	case ARG:
		return offset + m.CL.addr
	case COPY:
		switch m.resolveCopyMode() {
		case MATCH:
			return offset + m.L.addr
		default:
			return offset + m.CL.addr
		}
	default:
		fault("fetchOperand: invalid mode %v", m.PM)
		return 0
	}
}

// allocStr allocates a fresh STR structure for the functor at functorIdx on
// the global stack: a FUNC cell followed by arity self-referential
// (unbound) argument cells. It returns the STR word to install at the
// referencing cell, and the address of the FUNC cell itself.
func (m *Machine) allocStr(functorIdx int) (Word, int) {
	fs := m.pool.FunctorAt(functorIdx)
	addr := m.G0
	m.mem.write(addr, Pack(FUNC, functorIdx))
	for i := 1; i <= fs.Arity; i++ {
		m.mem.write(addr+i, Pack(REF, addr+i))
	}
	m.G0 = addr + 1 + fs.Arity
	return Pack(STR, addr), addr
}

// matchFunctor implements MATCH | FUNCTOR(f).
func (m *Machine) matchFunctor(addr, functorIdx int) (int, bool) {
	da := m.deref(addr)
	w := m.mem.read(da)
	switch w.Tag() {
	case REF:
		strWord, funcAddr := m.allocStr(functorIdx)
		m.mem.write(da, strWord)
		m.trail(da)
		m.pushScratch(addr+1, MATCH)
		m.PM = COPY
		return funcAddr + 1, true
	case STR:
		fcell := m.mem.read(w.Value())
		if fcell.Value() != functorIdx {
			return 0, false
		}
		m.pushScratch(addr+1, m.PM)
		return w.Value() + 1, true
	default:
		return 0, false
	}
}

// matchConstant implements MATCH | CONSTANT(c).
func (m *Machine) matchConstant(addr, constIdx int) (int, bool) {
	da := m.deref(addr)
	w := m.mem.read(da)
	switch w.Tag() {
	case REF:
		m.mem.write(da, Pack(CONS, constIdx))
		m.trail(da)
		return addr + 1, true
	case CONS:
		if w.Value() != constIdx {
			return 0, false
		}
		return addr + 1, true
	default:
		return 0, false
	}
}

// copyFunctor implements (ARG|COPY) | FUNCTOR(f): unconditionally
// construct a fresh copy of the structure, used both for a body goal's
// top-level compound argument (ARG) and for a compound nested inside one
// already under construction (COPY).
func (m *Machine) copyFunctor(addr, functorIdx int) int {
	strWord, funcAddr := m.allocStr(functorIdx)
	m.mem.write(addr, strWord)
	m.pushScratch(addr+1, m.PM)
	m.PM = COPY
	return funcAddr + 1
}

// copyConstant implements (ARG|COPY) | CONSTANT(c).
func (m *Machine) copyConstant(addr, constIdx int) int {
	m.mem.write(addr, Pack(CONS, constIdx))
	return addr + 1
}

// firstVarToLocal implements the shared half of MATCH|FIRSTVAR and
// COPY|FIRSTVAR: the local cell simply takes on whatever is already at
// addr, establishing the variable's binding (or its fresh identity, when
// addr is itself a newly allocated REF) in one step.
func (m *Machine) firstVarToLocal(addr, localAddr int) int {
	m.mem.write(localAddr, m.mem.read(addr))
	return addr + 1
}

// argFirstVar implements ARG | FIRSTVAR(off): the variable's first
// occurrence while building a body goal's arguments makes both the local
// cell and the argument cell a fresh, mutually self-referential variable.
func (m *Machine) argFirstVar(addr, localAddr int) int {
	ref := Pack(REF, localAddr)
	m.mem.write(localAddr, ref)
	m.mem.write(addr, ref)
	return addr + 1
}

// argVar implements ARG | VAR(off): copy whatever the local cell already
// holds into the argument cell under construction.
func (m *Machine) argVar(addr, localAddr int) int {
	m.mem.write(addr, m.mem.read(localAddr))
	return addr + 1
}

// enterClause implements MATCH | ENTER(size).
func (m *Machine) enterClause(size int) int {
	m.pushSourceFrame(size)
	m.PM = ARG
	return m.pushTargetFrame()
}

// popFromScratchpad implements (MATCH|COPY) | POP.
func (m *Machine) popFromScratchpad() int {
	addr, mode := m.popScratch()
	m.PM = mode
	return addr
}

// callPredicate implements ARG | CALL(pred).
func (m *Machine) callPredicate(predIdx int) int {
	pred := m.pool.PredicateAt(predIdx)
	clause := pred.First
	if clause == nil {
		fault("predicate %v has no clauses", pred)
	}
	if clause.Next != nil {
		m.pushChoicePoint(clause.Next)
	}
	m.PM = MATCH
	m.L.cp = m.PC
	m.PC = clause.CodePtr
	return m.L.addr
}

// execExit implements ARG | EXIT.
func (m *Machine) execExit() (done bool, addr int) {
	if m.popSourceFrame() {
		return true, 0
	}
	return false, m.pushTargetFrame()
}

// stepResult tells run what happened to the dispatched operator.
type stepResult int

const (
	stepContinue stepResult = iota
	stepFail
	stepAnswer
)

// step fetches and dispatches a single operator. It is the entire
// fetch/decode/execute body of §4.10, expressed as a dense switch over
// mode and opcode; most cases simply compute the next value of the address
// register.
func (m *Machine) step(addr int) (int, stepResult) {
	mode, op, operand := m.fetch()
	m.writeTrace(mode, op, addr)
	switch {
	case mode == MATCH && op == FUNCTOR:
		na, ok := m.matchFunctor(addr, operand)
		if !ok {
			return 0, stepFail
		}
		return na, stepContinue

	case mode == MATCH && op == CONSTANT:
		na, ok := m.matchConstant(addr, operand)
		if !ok {
			return 0, stepFail
		}
		return na, stepContinue

	case mode == MATCH && op == FIRSTVAR:
		return m.firstVarToLocal(addr, m.fetchOperand(operand)), stepContinue

	case mode == MATCH && op == VAR:
		if !m.unifiable(m.fetchOperand(operand), addr) {
			return 0, stepFail
		}
		return addr + 1, stepContinue

	case mode == MATCH && op == ENTER:
		return m.enterClause(operand), stepContinue

	case (mode == MATCH || mode == COPY) && op == POP:
		return m.popFromScratchpad(), stepContinue

	case (mode == ARG || mode == COPY) && op == FUNCTOR:
		return m.copyFunctor(addr, operand), stepContinue

	case (mode == ARG || mode == COPY) && op == CONSTANT:
		return m.copyConstant(addr, operand), stepContinue

	case mode == COPY && op == FIRSTVAR:
		return m.firstVarToLocal(addr, m.fetchOperand(operand)), stepContinue

	case mode == COPY && op == VAR:
		m.bind(m.fetchOperand(operand), addr)
		return addr + 1, stepContinue

	case mode == ARG && op == FIRSTVAR:
		return m.argFirstVar(addr, m.fetchOperand(operand)), stepContinue

	case mode == ARG && op == VAR:
		return m.argVar(addr, m.fetchOperand(operand)), stepContinue

	case mode == ARG && op == CALL:
		return m.callPredicate(operand), stepContinue

	case mode == ARG && op == EXIT:
		done, na := m.execExit()
		if done {
			return 0, stepAnswer
		}
		return na, stepContinue

	default:
		fault("illegal operator mode=%v opcode=%v", mode, op)
		return 0, stepFail
	}
}

// run drives the fetch/decode/execute loop from addr until an answer is
// found (stepAnswer) or backtracking exhausts all choice points.
func (m *Machine) run(addr int) bool {
	for {
		next, res := m.step(addr)
		switch res {
		case stepContinue:
			addr = next
		case stepFail:
			a, ok := m.backtrack()
			if !ok {
				return false
			}
			addr = a
		case stepAnswer:
			return true
		}
	}
}

// Execute resets the machine and runs the query compiled at queryAddr,
// reporting whether an answer was found.
func (m *Machine) Execute(queryAddr int) bool {
	m.reset(queryAddr)
	return m.run(MinLocalAddr)
}

// Backtrack seeks the next answer to the most recently executed query,
// reporting false once backtracking is exhausted.
func (m *Machine) Backtrack() bool {
	addr, ok := m.backtrack()
	if !ok {
		return false
	}
	return m.run(addr)
}
