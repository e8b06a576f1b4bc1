// Package compiler translates parsed clauses and queries into ZIP
// bytecode, assigning each distinct variable of a clause a frame-relative
// local-stack offset and each functor/predicate a constant-pool entry.
package compiler

import (
	"github.com/arnobastenhof/zipprolog/errors"
	"github.com/arnobastenhof/zipprolog/logic"
	"github.com/arnobastenhof/zipprolog/zip"
)

// indicator identifies a predicate by name and arity, used to track which
// predicates a program calls so undefined ones can be reported once
// compilation finishes.
type indicator struct {
	name  string
	arity int
}

// Compiler emits bytecode for a single *zip.Machine, growing its constant
// pool and code area as clauses and queries are compiled.
type Compiler struct {
	m      *zip.Machine
	called map[indicator]bool
}

// NewCompiler returns a compiler that targets m.
func NewCompiler(m *zip.Machine) *Compiler {
	return &Compiler{m: m, called: make(map[indicator]bool)}
}

// CompileProgram compiles a sequence of facts and rules, appending each as
// a clause alternative of its predicate in the constant pool. It returns a
// semantic error if any called predicate ends up with no clauses at all.
func (c *Compiler) CompileProgram(clauses []*logic.Clause) error {
	for _, cl := range clauses {
		if err := c.compileClause(cl); err != nil {
			return err
		}
	}
	return c.checkDefined()
}

// CompileQuery compiles a query the way it compiles a clause body with no
// head parameters: directly ENTER, the goals, EXIT, with no MATCH-mode
// head section. It returns the address to execute and a side-table
// mapping each query variable's (compile-time-fixed, since queries always
// run immediately after a reset) local-stack address to its source name,
// in first-occurrence order.
func (c *Compiler) CompileQuery(goals []logic.Term) (int, []zip.QueryVar, error) {
	if len(goals) == 0 {
		return 0, nil, errors.New("query must have at least one goal")
	}
	scope := make(map[logic.Var]int)
	var vars []zip.QueryVar
	record := func(v logic.Var, offset int) {
		vars = append(vars, zip.QueryVar{
			Addr: zip.MinLocalAddr + offset,
			Name: string(v),
		})
	}
	queryAddr := c.m.WriteInsOperand(zip.ENTER, 0)
	for _, g := range goals {
		if err := c.compileGoal(g, 0, scope, record); err != nil {
			return 0, nil, err
		}
	}
	c.m.WriteIns(zip.EXIT)
	c.m.PatchOperand(queryAddr, len(scope))
	return queryAddr, vars, nil
}

func (c *Compiler) checkDefined() error {
	for ind := range c.called {
		idx := c.m.Pool().Predicate(ind.name, ind.arity)
		pred := c.m.Pool().PredicateAt(idx)
		if pred.First == nil {
			return errors.New("No clauses defined for predicate %s", pred)
		}
	}
	return nil
}

func (c *Compiler) compileClause(cl *logic.Clause) error {
	name, arity, headArgs, err := headParts(cl.Head)
	if err != nil {
		return err
	}
	predIdx := c.m.Pool().Predicate(name, arity)

	scope := make(map[logic.Var]int)
	codePtr := c.m.CodePtr()
	for _, a := range headArgs {
		if err := c.compileTerm(a, arity, scope, nil); err != nil {
			return err
		}
	}
	enterAddr := c.m.WriteInsOperand(zip.ENTER, 0)
	for _, g := range cl.Body {
		if err := c.compileGoal(g, arity, scope, nil); err != nil {
			return err
		}
	}
	c.m.WriteIns(zip.EXIT)

	locals := len(scope)
	c.m.PatchOperand(enterAddr, arity+locals)

	pred := c.m.Pool().PredicateAt(predIdx)
	pred.AddClause(&zip.ClauseSymbol{
		Params:  arity,
		Locals:  locals,
		CodePtr: codePtr,
	})
	return nil
}

// compileGoal compiles a body literal's arguments (in ARG/COPY context at
// run time) followed by its CALL. record, when non-nil, is invoked for
// every variable's first occurrence while compiling goals (used to build
// the query's variable name table; nil when compiling a program clause).
func (c *Compiler) compileGoal(g logic.Term, params int, scope map[logic.Var]int, record func(logic.Var, int)) error {
	var name string
	var args []logic.Term
	switch v := g.(type) {
	case logic.Atom:
		name = string(v)
	case *logic.Comp:
		name = v.Functor
		args = v.Args
	default:
		return errors.New("goal must be an atom or a structure, got %T", g)
	}
	for _, a := range args {
		if err := c.compileTerm(a, params, scope, record); err != nil {
			return err
		}
	}
	idx := c.m.Pool().Predicate(name, len(args))
	c.called[indicator{name, len(args)}] = true
	c.m.WriteInsOperand(zip.CALL, idx)
	return nil
}

// compileTerm emits the instructions walking one term cell by cell.
// Crucially the same instructions serve both the clause head (matched at
// run time in MATCH mode) and a body goal's arguments (constructed in
// ARG/COPY mode): the compiler never needs to know which; only the
// machine's current mode at dispatch time decides.
func (c *Compiler) compileTerm(t logic.Term, params int, scope map[logic.Var]int, record func(logic.Var, int)) error {
	switch v := t.(type) {
	case logic.Atom:
		idx := c.m.Pool().Functor(string(v), 0)
		c.m.WriteInsOperand(zip.CONSTANT, idx)
		return nil
	case logic.Var:
		off, seen := scope[v]
		if !seen {
			off = params + len(scope)
			scope[v] = off
			c.m.WriteInsOperand(zip.FIRSTVAR, off)
			if record != nil {
				record(v, off)
			}
		} else {
			c.m.WriteInsOperand(zip.VAR, off)
		}
		return nil
	case *logic.Comp:
		idx := c.m.Pool().Functor(v.Functor, len(v.Args))
		c.m.WriteInsOperand(zip.FUNCTOR, idx)
		for _, a := range v.Args {
			if err := c.compileTerm(a, params, scope, record); err != nil {
				return err
			}
		}
		c.m.WriteIns(zip.POP)
		return nil
	default:
		return errors.New("unsupported term type %T", t)
	}
}

func headParts(head logic.Term) (name string, arity int, args []logic.Term, err error) {
	switch v := head.(type) {
	case logic.Atom:
		return string(v), 0, nil, nil
	case *logic.Comp:
		return v.Functor, len(v.Args), v.Args, nil
	default:
		return "", 0, nil, errors.New("clause head must be a structure, got %T", head)
	}
}
