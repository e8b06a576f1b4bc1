// Package solver wires the parser, compiler and ZIP machine together into
// a consult/query interface, restoring the program-only memento after each
// query so that transient query code and pool entries don't accumulate.
package solver

import (
	"io"
	"strings"

	"github.com/arnobastenhof/zipprolog/compiler"
	"github.com/arnobastenhof/zipprolog/parser"
	"github.com/arnobastenhof/zipprolog/zip"
)

// Solver holds one program loaded onto one machine.
type Solver struct {
	machine     *zip.Machine
	compiler    *compiler.Compiler
	programSnap zip.Memento
}

// New returns a Solver with an empty program.
func New() *Solver {
	return newSolver(zip.NewMachine())
}

// NewWithTrace is New with the machine's §10.2 execution trace enabled,
// writing one newline-delimited JSON record per step to w.
func NewWithTrace(w io.Writer) *Solver {
	return newSolver(zip.NewMachineWithTrace(w))
}

func newSolver(m *zip.Machine) *Solver {
	return &Solver{
		machine:     m,
		compiler:    compiler.NewCompiler(m),
		programSnap: m.CreateMemento(),
	}
}

// Consult parses and compiles the clauses read from r, adding them to the
// current program. The resulting pool and code growth become the new
// baseline that queries are rolled back to.
func (s *Solver) Consult(r io.Reader) error {
	clauses, err := parser.NewParser(r).ParseProgram()
	if err != nil {
		return err
	}
	if err := s.compiler.CompileProgram(clauses); err != nil {
		return err
	}
	s.programSnap = s.machine.CreateMemento()
	return nil
}

// Answer is one solution to a query, able to seek the next one on
// backtracking and to release the machine resources it used once the
// caller is done with the query entirely.
type Answer struct {
	s    *Solver
	vars []zip.QueryVar
	ok   bool
}

// OK reports whether the query (or the most recent Next) found a solution.
func (a *Answer) OK() bool {
	return a.ok
}

// Vars lists the query's variables in first-occurrence order.
func (a *Answer) Vars() []zip.QueryVar {
	return a.vars
}

// Walk renders the term bound to a query variable's address.
func (a *Answer) Walk(addr int, names *zip.AnswerNames) string {
	return a.s.machine.Walk(addr, names)
}

// Next backtracks into the query for another solution.
func (a *Answer) Next() bool {
	a.ok = a.s.machine.Backtrack()
	return a.ok
}

// Close rolls the machine back to the program baseline, discarding
// whatever code and pool entries the query added.
func (a *Answer) Close() {
	a.s.machine.Restore(a.s.programSnap)
}

// Query compiles and runs src, a single '.'-terminated goal conjunction,
// returning an Answer for its first solution.
func (s *Solver) Query(src string) (*Answer, error) {
	goals, err := parser.NewParser(strings.NewReader(src)).ParseQuery()
	if err != nil {
		return nil, err
	}
	queryAddr, vars, err := s.compiler.CompileQuery(goals)
	if err != nil {
		return nil, err
	}
	ok := s.machine.Execute(queryAddr)
	return &Answer{s: s, vars: vars, ok: ok}, nil
}
