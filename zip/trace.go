package zip

import (
	"encoding/json"
	"log"
)

// traceStep is one newline-delimited JSON record of the execution trace of
// §10.2, mirroring the teacher's JSON debug-trace convention
// (wam.Machine.debugWrite): the dispatched operator's mnemonic, the
// processor mode, the running address register, and an abbreviated
// register snapshot.
type traceStep struct {
	Op   string `json:"op"`
	Mode string `json:"mode"`
	Addr int    `json:"addr"`
	PC   int    `json:"pc"`
	G0   int    `json:"g0"`
	TR0  int    `json:"tr0"`
	L    int    `json:"l"`
	CL   int    `json:"cl"`
	BL   int    `json:"bl"`
}

// noFrame marks a nil frame register in a trace record.
const noFrame = -1

func frameAddr(f *frame) int {
	if f == nil {
		return noFrame
	}
	return f.addr
}

// writeTrace emits one trace record for the operator about to be
// dispatched, if a trace writer was configured at construction time.
// Like the teacher's debugWrite, a marshal or write failure is logged and
// otherwise ignored rather than aborting the query.
func (m *Machine) writeTrace(mode Mode, op Opcode, addr int) {
	if m.trace == nil {
		return
	}
	step := traceStep{
		Op:   op.String(),
		Mode: mode.String(),
		Addr: addr,
		PC:   m.PC,
		G0:   m.G0,
		TR0:  m.TR0,
		L:    frameAddr(m.L),
		CL:   frameAddr(m.CL),
		BL:   frameAddr(m.BL),
	}
	data, err := json.Marshal(step)
	if err != nil {
		log.Printf("zip: failed to marshal trace step: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := m.trace.Write(data); err != nil {
		log.Printf("zip: failed to write trace step: %v", err)
	}
}
