// Package logic defines the term and clause representation shared by the
// parser and the compiler. It is deliberately small: this Prolog subset has
// no numbers, no strings and no list syntax, so the term hierarchy closes
// over just three cases plus the distinguished empty-list atom.
package logic

import (
	"fmt"
	"strings"
)

// Term is implemented by Atom, Var and *Comp.
type Term interface {
	String() string
	vars(seen map[string]bool, xs []Var) []Var
}

// Atom is a functor symbol of arity 0, e.g. zeus or the empty list "[]".
type Atom string

// Var is a logic variable, identified by its source name.
type Var string

// Comp is a compound term: a functor applied to one or more arguments.
type Comp struct {
	Functor string
	Args    []Term
}

// NewComp builds a compound term, panicking if called with zero arguments
// (use Atom for arity-0 functors instead).
func NewComp(functor string, args ...Term) *Comp {
	if len(args) == 0 {
		panic(fmt.Sprintf("logic: NewComp(%q) called with no args", functor))
	}
	return &Comp{Functor: functor, Args: args}
}

// EmptyList is the distinguished "[]" atom.
const EmptyList = Atom("[]")

// Indicator returns the name/arity string for a functor.
func Indicator(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

func (a Atom) String() string { return FormatAtom(string(a)) }
func (v Var) String() string  { return string(v) }

func (c *Comp) String() string {
	var b strings.Builder
	b.WriteString(FormatAtom(c.Functor))
	b.WriteRune('(')
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteRune(')')
	return b.String()
}

func (a Atom) vars(seen map[string]bool, xs []Var) []Var { return xs }

func (v Var) vars(seen map[string]bool, xs []Var) []Var {
	if seen[string(v)] {
		return xs
	}
	seen[string(v)] = true
	return append(xs, v)
}

func (c *Comp) vars(seen map[string]bool, xs []Var) []Var {
	for _, arg := range c.Args {
		xs = arg.vars(seen, xs)
	}
	return xs
}

// Vars returns the distinct variables within t, in order of first occurrence.
func Vars(t Term) []Var {
	return t.vars(make(map[string]bool), nil)
}

// TermIndicator returns the term's name/arity, as used to key predicates and
// functor symbols in the constant pool.
func TermIndicator(t Term) string {
	switch t := t.(type) {
	case Atom:
		return Indicator(string(t), 0)
	case *Comp:
		return Indicator(t.Functor, len(t.Args))
	default:
		panic(fmt.Sprintf("logic: TermIndicator called on %T", t))
	}
}

// Clause is a program clause: a head literal and, for rules, a conjunction of
// body goals. Facts have a nil Body.
type Clause struct {
	Head Term
	Body []Term
}

func (c *Clause) String() string {
	var b strings.Builder
	b.WriteString(c.Head.String())
	if len(c.Body) > 0 {
		b.WriteString(" :- ")
		for i, goal := range c.Body {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(goal.String())
		}
	}
	b.WriteRune('.')
	return b.String()
}

// Vars returns the distinct variables across the clause's head and body, in
// order of first occurrence.
func (c *Clause) Vars() []Var {
	seen := make(map[string]bool)
	var xs []Var
	xs = c.Head.vars(seen, xs)
	for _, goal := range c.Body {
		xs = goal.vars(seen, xs)
	}
	return xs
}
