package zip

import "fmt"

// FunctorSymbol is a constant-pool entry identifying a functor by name and
// arity. Two FunctorSymbols with the same (Name, Arity) are dedup'd to a
// single pool entry.
type FunctorSymbol struct {
	Name  string
	Arity int
}

func (f *FunctorSymbol) String() string {
	return fmt.Sprintf("%s/%d", f.Name, f.Arity)
}

// ClauseSymbol records everything the machine needs to invoke one clause
// alternative of a predicate.
type ClauseSymbol struct {
	Params  int
	Locals  int
	CodePtr int
	Next    *ClauseSymbol
}

// PredicateSymbol is a constant-pool entry identifying a predicate by name
// and arity, owning the (mutable) head of its clause list.
type PredicateSymbol struct {
	Name  string
	Arity int
	First *ClauseSymbol
	last  *ClauseSymbol
}

// AddClause appends a clause alternative to the predicate's clause list.
func (p *PredicateSymbol) AddClause(c *ClauseSymbol) {
	if p.First == nil {
		p.First = c
	} else {
		p.last.Next = c
	}
	p.last = c
}

func (p *PredicateSymbol) String() string {
	return fmt.Sprintf("%s/%d", p.Name, p.Arity)
}

type functorKey struct {
	name  string
	arity int
}

// Pool is the append-only constant pool of §3: index 0 is reserved, and
// functor symbols are deduplicated structurally by (name, arity) while
// predicate symbols are deduplicated the same way but kept mutable so
// clauses can be appended to them across many compiler calls.
type Pool struct {
	entries    []interface{} // entries[0] unused
	functors   map[functorKey]int
	predicates map[functorKey]int
}

// NewPool returns an empty constant pool with its reserved index 0 entry.
func NewPool() *Pool {
	return &Pool{
		entries:    []interface{}{nil},
		functors:   make(map[functorKey]int),
		predicates: make(map[functorKey]int),
	}
}

// Functor returns the pool index of the functor symbol (name, arity),
// appending a new entry if none exists yet.
func (p *Pool) Functor(name string, arity int) int {
	key := functorKey{name, arity}
	if idx, ok := p.functors[key]; ok {
		return idx
	}
	idx := len(p.entries)
	p.entries = append(p.entries, &FunctorSymbol{Name: name, Arity: arity})
	p.functors[key] = idx
	return idx
}

// Predicate returns the pool index of the predicate symbol (name, arity),
// creating and appending a new (empty) one if none exists yet.
func (p *Pool) Predicate(name string, arity int) int {
	key := functorKey{name, arity}
	if idx, ok := p.predicates[key]; ok {
		return idx
	}
	idx := len(p.entries)
	p.entries = append(p.entries, &PredicateSymbol{Name: name, Arity: arity})
	p.predicates[key] = idx
	return idx
}

// FunctorAt returns the FunctorSymbol at idx, faulting if idx does not name
// one.
func (p *Pool) FunctorAt(idx int) *FunctorSymbol {
	sym, ok := p.at(idx).(*FunctorSymbol)
	if !ok {
		fault("constant pool index %d is not a functor symbol", idx)
	}
	return sym
}

// PredicateAt returns the PredicateSymbol at idx, faulting if idx does not
// name one.
func (p *Pool) PredicateAt(idx int) *PredicateSymbol {
	sym, ok := p.at(idx).(*PredicateSymbol)
	if !ok {
		fault("constant pool index %d is not a predicate symbol", idx)
	}
	return sym
}

func (p *Pool) at(idx int) interface{} {
	if idx <= 0 || idx >= len(p.entries) {
		fault("constant pool index %d out of range", idx)
	}
	return p.entries[idx]
}

// Len reports the number of live entries, including the reserved index 0.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Memento is a snapshot of a Pool's length and a code-area cursor, used to
// roll both back in O(1) once a query has finished executing.
type Memento struct {
	poolSize int
	codePtr  int
}

// CreateMemento snapshots the pool's current length and the given code
// cursor.
func (p *Pool) CreateMemento(codePtr int) Memento {
	return Memento{poolSize: len(p.entries), codePtr: codePtr}
}

// Restore truncates the pool back to the snapshot length, discarding any
// dedup-map entries created since, and returns the snapshotted code
// cursor for the caller to restore separately.
func (p *Pool) Restore(m Memento) int {
	for key, idx := range p.functors {
		if idx >= m.poolSize {
			delete(p.functors, key)
		}
	}
	for key, idx := range p.predicates {
		if idx >= m.poolSize {
			delete(p.predicates, key)
		}
	}
	p.entries = p.entries[:m.poolSize]
	return m.codePtr
}
