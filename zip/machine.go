package zip

import "io"

// Mode is the processor mode, occupying the high two bits of a dispatched
// operator. Bytecode itself stores only the opcode; fetch pairs it with the
// current mode, and dispatch switches over the (mode, opcode) pair.
type Mode uint32

const (
	MATCH Mode = 1 << 6
	ARG   Mode = 2 << 6
	COPY  Mode = 3 << 6
)

func (m Mode) String() string {
	switch m {
	case MATCH:
		return "MATCH"
	case ARG:
		return "ARG"
	case COPY:
		return "COPY"
	default:
		return "?"
	}
}

// Opcode identifies a bytecode instruction.
type Opcode uint32

const (
	POP      Opcode = 1
	VAR      Opcode = 4
	FIRSTVAR Opcode = 5
	FUNCTOR  Opcode = 9
	CONSTANT Opcode = 11
	ENTER    Opcode = 12
	CALL     Opcode = 17
	EXIT     Opcode = 25
)

var opcodeNames = map[Opcode]string{
	POP:      "pop",
	VAR:      "var",
	FIRSTVAR: "firstvar",
	FUNCTOR:  "functor",
	CONSTANT: "constant",
	ENTER:    "enter",
	CALL:     "call",
	EXIT:     "exit",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "?"
}

// hasOperand reports whether op is followed by a single operand cell.
func hasOperand(op Opcode) bool {
	switch op {
	case POP, EXIT:
		return false
	default:
		return true
	}
}

// Machine is the ZIP abstract machine: the flat word store, the constant
// pool, and the register set of §4.5. The machine owns the memory arena and
// the constant pool; the pool is reachable through Pool, which the compiler
// uses to add entries.
type Machine struct {
	mem     mem
	pool    *Pool
	codePtr int
	trace   io.Writer

	PM     Mode
	PC     int
	L      *frame
	CL     *frame
	BL     *frame
	G0     int
	TR0    int
	PDLptr int
	SPptr  int
}

// NewMachine allocates a fresh machine with an empty word store and
// constant pool, its code cursor positioned at the start of the heap/code
// area.
func NewMachine() *Machine {
	return &Machine{
		mem:     newMem(),
		pool:    NewPool(),
		codePtr: MinHeapAddr,
	}
}

// NewMachineWithTrace is NewMachine with the execution trace of §10.2
// enabled: one newline-delimited JSON object per fetch/decode/execute step
// is written to w.
func NewMachineWithTrace(w io.Writer) *Machine {
	m := NewMachine()
	m.trace = w
	return m
}

// Pool returns the machine's constant pool.
func (m *Machine) Pool() *Pool {
	return m.pool
}

// CodePtr returns the address at which the next instruction will be
// written.
func (m *Machine) CodePtr() int {
	return m.codePtr
}

// WriteIns emits a no-operand instruction (POP or EXIT) at the current code
// cursor, returning the address it was written to.
func (m *Machine) WriteIns(op Opcode) int {
	if hasOperand(op) {
		fault("opcode %v requires an operand", op)
	}
	addr := m.codePtr
	m.mem.write(addr, Word(op))
	m.codePtr++
	return addr
}

// WriteInsOperand emits a two-cell instruction (opcode, operand) at the
// current code cursor, returning the address it was written to.
func (m *Machine) WriteInsOperand(op Opcode, operand int) int {
	if !hasOperand(op) {
		fault("opcode %v takes no operand", op)
	}
	addr := m.codePtr
	m.mem.write(addr, Word(op))
	m.mem.write(addr+1, Word(uint32(operand)))
	m.codePtr += 2
	return addr
}

// PatchOperand overwrites the operand cell of a previously written
// two-cell instruction at addr, for the one case (ENTER's frame size) where
// it is not known until after the rest of the clause has been compiled.
func (m *Machine) PatchOperand(addr int, operand int) {
	m.mem.write(addr+1, Word(uint32(operand)))
}

// CreateMemento snapshots the constant pool and code cursor so they can be
// rolled back in O(1) once a query has finished executing.
func (m *Machine) CreateMemento() Memento {
	return m.pool.CreateMemento(m.codePtr)
}

// Restore rolls the constant pool and code cursor back to a prior snapshot.
func (m *Machine) Restore(snap Memento) {
	m.codePtr = m.pool.Restore(snap)
}

// reset prepares the registers for a fresh top-level call at queryAddr, per
// §4.5, then pushes the initial (query) target frame.
func (m *Machine) reset(queryAddr int) {
	m.PM = MATCH
	m.PC = queryAddr
	m.L = nil
	m.CL = nil
	m.BL = nil
	m.G0 = MinGlobalAddr
	m.TR0 = MinTrailAddr
	m.PDLptr = MinPDLAddr
	m.SPptr = MinScratchpadAddr
	m.pushTargetFrame()
}

// fetch reads the opcode at PC, returning it together with the current mode,
// and advances PC past it (and its operand, if any).
func (m *Machine) fetch() (Mode, Opcode, int) {
	op := Opcode(m.mem.read(m.PC))
	if hasOperand(op) {
		operand := int(m.mem.read(m.PC + 1))
		m.PC += 2
		return m.PM, op, operand
	}
	m.PC++
	return m.PM, op, 0
}
