// Package dsl collects terse builder functions for logic.Term and
// logic.Clause values, used throughout the test suites so fixtures read as
// close to Prolog source as Go syntax allows.
package dsl

import (
	"github.com/arnobastenhof/zipprolog/logic"
)

func Terms(terms ...logic.Term) []logic.Term {
	return terms
}

func Atom(name string) logic.Atom {
	return logic.Atom(name)
}

func Var(name string) logic.Var {
	return logic.Var(name)
}

func Comp(functor string, args ...logic.Term) *logic.Comp {
	return logic.NewComp(functor, args...)
}

func Indicator(name string, arity int) string {
	return logic.Indicator(name, arity)
}

func Query(goals ...logic.Term) []logic.Term {
	return goals
}

func Clause(head logic.Term, body ...logic.Term) *logic.Clause {
	return &logic.Clause{Head: head, Body: body}
}

func Clauses(cs ...*logic.Clause) []*logic.Clause {
	return cs
}
