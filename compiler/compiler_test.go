package compiler_test

import (
	"testing"

	. "github.com/arnobastenhof/zipprolog/dsl"
	"github.com/arnobastenhof/zipprolog/compiler"
	"github.com/arnobastenhof/zipprolog/logic"
	"github.com/arnobastenhof/zipprolog/zip"
)

// runQuery compiles and runs goals against clauses on a fresh machine,
// returning the printed "Name = term" pairs for each answer up to max
// answers (via ';'-style repeated backtracking), terminated early if the
// machine reports no further answers.
func runQuery(t *testing.T, clauses []*logic.Clause, goals []logic.Term, max int) []string {
	t.Helper()
	m := zip.NewMachine()
	c := compiler.NewCompiler(m)
	if err := c.CompileProgram(clauses); err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	snap := m.CreateMemento()
	queryAddr, vars, err := c.CompileQuery(goals)
	if err != nil {
		t.Fatalf("CompileQuery: %v", err)
	}

	var out []string
	ok := m.Execute(queryAddr)
	for i := 0; i < max; i++ {
		if !ok {
			out = append(out, "no")
			break
		}
		if len(vars) == 0 {
			out = append(out, "yes")
			break
		}
		names := zip.NewAnswerNames()
		var line string
		for _, v := range vars {
			if line != "" {
				line += " "
			}
			line += v.Name + " = " + m.Walk(v.Addr, names)
		}
		out = append(out, line)
		ok = m.Backtrack()
	}
	m.Restore(snap)
	return out
}

func TestGroundFactSucceeds(t *testing.T) {
	clauses := Clauses(Clause(Comp("father", Atom("zeus"), Atom("ares"))))
	got := runQuery(t, clauses, Query(Comp("father", Atom("zeus"), Atom("ares"))), 1)
	want := []string{"yes"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroundFactFails(t *testing.T) {
	clauses := Clauses(Clause(Comp("father", Atom("zeus"), Atom("ares"))))
	got := runQuery(t, clauses, Query(Comp("father", Atom("ares"), Atom("zeus"))), 1)
	want := []string{"no"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSingleVariableBinding(t *testing.T) {
	clauses := Clauses(Clause(Comp("mother", Atom("hera"), Atom("ares"))))
	got := runQuery(t, clauses, Query(Comp("mother", Atom("hera"), Var("X"))), 1)
	want := []string{"X = ares"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMultipleAlternatives(t *testing.T) {
	clauses := Clauses(
		Clause(Comp("father", Atom("zeus"), Atom("ares"))),
		Clause(Comp("father", Atom("zeus"), Atom("dionisius"))),
	)
	got := runQuery(t, clauses, Query(Comp("father", Atom("zeus"), Var("Y"))), 3)
	want := []string{"Y = ares", "Y = dionisius", "no"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRuleChaining(t *testing.T) {
	clauses := Clauses(
		Clause(Comp("parent", Var("X"), Var("Y")), Comp("father", Var("X"), Var("Y"))),
		Clause(Comp("father", Atom("zeus"), Atom("ares"))),
		Clause(Comp("father", Atom("ares"), Atom("harmonia"))),
		Clause(Comp("grandparent", Var("X"), Var("Y")),
			Comp("parent", Var("X"), Var("Z")),
			Comp("parent", Var("Z"), Var("Y"))),
	)
	got := runQuery(t, clauses, Query(Comp("grandparent", Atom("zeus"), Atom("harmonia"))), 1)
	want := []string{"yes"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecursivePredicate(t *testing.T) {
	clauses := Clauses(
		Clause(Comp("append", Atom("[]"), Var("YS"), Var("YS"))),
		Clause(
			Comp("append", Comp("cons", Var("X"), Var("XS")), Var("YS"), Comp("cons", Var("X"), Var("ZS"))),
			Comp("append", Var("XS"), Var("YS"), Var("ZS")),
		),
	)
	goals := Query(Comp("append",
		Comp("cons", Atom("a"), Atom("[]")),
		Comp("cons", Atom("b"), Atom("[]")),
		Var("X"),
	))
	got := runQuery(t, clauses, goals, 1)
	want := []string{"X = cons(a, cons(b, []))"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUndefinedPredicateIsSemanticError(t *testing.T) {
	clauses := Clauses(Clause(Comp("father", Atom("zeus"), Atom("ares"))),
		Clause(Comp("grandparent", Var("X"), Var("Y")), Comp("parent", Var("X"), Var("Y"))))
	m := zip.NewMachine()
	c := compiler.NewCompiler(m)
	if err := c.CompileProgram(clauses); err == nil {
		t.Fatal("expected semantic error for undefined predicate parent/2")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
