package solver_test

import (
	"strings"
	"testing"

	"github.com/arnobastenhof/zipprolog/solver"
	"github.com/arnobastenhof/zipprolog/zip"
)

const familyProgram = `
father(zeus, ares).
father(zeus, dionisius).
father(ares, harmonia).
parent(X, Y) :- father(X, Y).
grandparent(X, Y) :- parent(X, Z), parent(Z, Y).
`

func newSolver(t *testing.T, program string) *solver.Solver {
	t.Helper()
	s := solver.New()
	if err := s.Consult(strings.NewReader(program)); err != nil {
		t.Fatalf("Consult: %v", err)
	}
	return s
}

func answers(t *testing.T, s *solver.Solver, query string, max int) []string {
	t.Helper()
	ans, err := s.Query(query)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer ans.Close()

	var out []string
	ok := ans.OK()
	for i := 0; i < max; i++ {
		if !ok {
			out = append(out, "no")
			break
		}
		vars := ans.Vars()
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
			line += v.Name + " = " + ans.Walk(v.Addr, names)
		}
		out = append(out, line)
		ok = ans.Next()
	}
	return out
}

// The §8 end-to-end scenarios (ground fact, variable binding, backtracking
// through alternatives, rule chaining, recursion) are covered as
// Example functions in doc_test.go, not here; this file covers solver
// lifecycle behavior the scenarios don't: memento rollback and multiple
// Consult calls.

func TestCloseRestoresProgramBaseline(t *testing.T) {
	s := newSolver(t, familyProgram)
	for i := 0; i < 5; i++ {
		ans, err := s.Query("father(zeus, X).")
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if !ans.OK() {
			t.Fatalf("iteration %d: expected a solution", i)
		}
		ans.Close()
	}
	// The baseline must still support fresh queries after repeated growth
	// and rollback.
	got := answers(t, s, "father(ares, X).", 1)
	want := []string{"X = harmonia"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConsultAddsToExistingProgram(t *testing.T) {
	s := newSolver(t, familyProgram)
	if err := s.Consult(strings.NewReader("sibling(X, Y) :- father(Z, X), father(Z, Y).\n")); err != nil {
		t.Fatalf("second Consult: %v", err)
	}
	got := answers(t, s, "sibling(ares, dionisius).", 1)
	want := []string{"yes"}
	if !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUndefinedPredicateIsError(t *testing.T) {
	s := solver.New()
	err := s.Consult(strings.NewReader("grandparent(X, Y) :- parent(X, Y).\n"))
	if err == nil {
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
