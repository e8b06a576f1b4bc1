package zip

import (
	"fmt"
	"strings"

	"github.com/arnobastenhof/zipprolog/logic"
)

// QueryVar names a query variable by the local-stack address its FIRSTVAR
// occupies in the compiled query frame. The compiler builds the slice in
// the order variables first occur in the query.
type QueryVar struct {
	Addr int
	Name string
}

// AnswerNames assigns the fresh "?k" names walk uses for unbound
// variables reached while printing one answer. It is scoped to a single
// answer so that the same unbound variable prints identically within that
// answer, matching §4.11; a new AnswerNames is needed for each answer.
type AnswerNames struct {
	next  int
	names map[int]string
}

// NewAnswerNames returns an empty per-answer name cache.
func NewAnswerNames() *AnswerNames {
	return &AnswerNames{names: make(map[int]string)}
}

func (n *AnswerNames) nameFor(addr int) string {
	if name, ok := n.names[addr]; ok {
		return name
	}
	name := fmt.Sprintf("?%d", n.next)
	n.next++
	n.names[addr] = name
	return name
}

// Walk renders the term reachable from addr as Prolog-ish text, per the
// walkWord algorithm of §4.11.
func (m *Machine) Walk(addr int, names *AnswerNames) string {
	var sb strings.Builder
	m.walk(addr, names, &sb)
	return sb.String()
}

func (m *Machine) walk(addr int, names *AnswerNames, sb *strings.Builder) {
	w := m.getWordAt(addr)
	switch w.Tag() {
	case REF:
		sb.WriteString(names.nameFor(m.deref(addr)))
		return
	case STR:
		m.walk(w.Value(), names, sb)
		return
	case FUNC:
		fs := m.pool.FunctorAt(w.Value())
		sb.WriteString(logic.FormatAtom(fs.Name))
		sb.WriteString("(")
		for i := 1; i <= fs.Arity; i++ {
			if i > 1 {
				sb.WriteString(", ")
			}
			m.walk(addr+i, names, sb)
		}
		sb.WriteString(")")
		return
	case CONS:
		fs := m.pool.FunctorAt(w.Value())
		sb.WriteString(logic.FormatAtom(fs.Name))
		return
	default:
		fault("walk: unexpected tag %v at %d", w.Tag(), addr)
		return
	}
}
