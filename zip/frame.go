package zip

// frame is an activation record per §3: the machine-state fields live here
// as an ordinary Go value (ownership note (a) of the design notes — an
// interior record keyed by its local-stack address), while the frame's
// parameter and local variable cells live as real addressable words in the
// local-stack region of mem, starting at addr.
//
// A frame may simultaneously play the role of target (being built), source
// (cl/cp meaningful) and choice point (bp/bg/bl/bt meaningful); the roles
// are not mutually exclusive and are not tagged separately.
type frame struct {
	addr int // local-stack address of the frame's first word cell
	size int // params + locals

	cp int    // continuation program counter, when a source frame
	cl *frame // continuation source frame

	bp *ClauseSymbol // backtrack clause pointer, when a choice point
	bg int           // backtrack global-stack top
	bl *frame        // backtrack source frame
	bt int           // backtrack trail top
}

// pushTargetFrame allocates a new frame at the smallest local-stack address
// not occupied by a live frame, per §4.6, and makes it the current target
// frame L.
func (m *Machine) pushTargetFrame() int {
	var addr int
	switch {
	case m.CL == nil:
		addr = MinLocalAddr
	case m.BL != nil && m.CL.addr < m.BL.addr:
		addr = maxInt(m.CL.addr+m.CL.size, m.BL.addr+m.BL.size)
	default:
		addr = m.CL.addr + m.CL.size
	}
	m.L = &frame{addr: addr}
	return addr
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// pushChoicePoint turns the current target frame into a choice point
// capturing clause as the next alternative to try on backtrack.
func (m *Machine) pushChoicePoint(clause *ClauseSymbol) {
	target := m.L
	target.bp = clause
	target.bg = m.G0
	target.bt = m.TR0
	target.bl = m.BL
	m.BL = target
}

// pushSourceFrame commits the current target frame as the new source frame,
// with size params+locals cells.
func (m *Machine) pushSourceFrame(size int) {
	m.L.size = size
	m.L.cl = m.CL
	m.CL = m.L
}

// popSourceFrame pops the current source frame. It reports done=true when
// the popped frame was the initial query frame (no continuation), in which
// case PC/CL are left untouched for the caller to handle termination.
func (m *Machine) popSourceFrame() (done bool) {
	if m.CL.cl == nil {
		return true
	}
	m.PC = m.CL.cp
	m.CL = m.CL.cl
	return false
}
