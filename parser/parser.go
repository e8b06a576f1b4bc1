// Package parser implements the lexer and recursive-descent parser for the
// source grammar of §6.1: programs (sequences of clauses) and queries
// (conjunctions of goals), built directly into logic.Term/logic.Clause
// values rather than through an intermediate visitor layer.
package parser

import (
	"fmt"
	"io"

	"github.com/arnobastenhof/zipprolog/errors"
	"github.com/arnobastenhof/zipprolog/logic"
)

// SyntaxError reports a parse-time mismatch between the token actually seen
// and the kinds that would have been acceptable there.
type SyntaxError struct {
	Got      Token
	Expected []Kind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unexpected %s at line %d, expected %v", e.Got, e.Got.Line, e.Expected)
}

// Parser consumes a token stream and builds the AST.
type Parser struct {
	lex  *Lexer
	tok  Token
	init bool
}

// NewParser returns a Parser reading source text from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{lex: NewLexer(r)}
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) current() (Token, error) {
	if !p.init {
		if err := p.advance(); err != nil {
			return Token{}, err
		}
		p.init = true
	}
	return p.tok, nil
}

func (p *Parser) expect(kind Kind) (Token, error) {
	tok, err := p.current()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{Got: tok, Expected: []Kind{kind}}
	}
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// ParseProgram parses a sequence of one or more clauses followed by EOF.
func (p *Parser) ParseProgram() ([]*logic.Clause, error) {
	var clauses []*logic.Clause
	for {
		tok, err := p.current()
		if err != nil {
			return nil, err
		}
		if tok.Kind != Atom {
			break
		}
		clause, err := p.clause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	if len(clauses) == 0 {
		return nil, errors.New("program must contain at least one clause")
	}
	return clauses, nil
}

// ParseQuery parses a single query: a conjunction of goals terminated by '.'
// and EOF.
func (p *Parser) ParseQuery() ([]logic.Term, error) {
	goals, err := p.goals()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Period); err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return goals, nil
}

func (p *Parser) clause() (*logic.Clause, error) {
	head, err := p.structure()
	if err != nil {
		return nil, err
	}
	clause := &logic.Clause{Head: head}
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	if tok.Kind == Implies {
		if err := p.advance(); err != nil {
			return nil, err
		}
		goals, err := p.goals()
		if err != nil {
			return nil, err
		}
		clause.Body = goals
	}
	if _, err := p.expect(Period); err != nil {
		return nil, err
	}
	return clause, nil
}

func (p *Parser) goals() ([]logic.Term, error) {
	first, err := p.structure()
	if err != nil {
		return nil, err
	}
	goals := []logic.Term{first}
	for {
		tok, err := p.current()
		if err != nil {
			return nil, err
		}
		if tok.Kind != Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		goal, err := p.structure()
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

func (p *Parser) term() (logic.Term, error) {
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case Var:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return logic.Var(tok.Text), nil
	case Nil:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return logic.EmptyList, nil
	case Atom:
		return p.structure()
	default:
		return nil, &SyntaxError{Got: tok, Expected: []Kind{Var, Nil, Atom}}
	}
}

func (p *Parser) structure() (logic.Term, error) {
	name, err := p.expect(Atom)
	if err != nil {
		return nil, err
	}
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	if tok.Kind != LParen {
		return logic.Atom(name.Text), nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	args := []logic.Term{first}
	for {
		tok, err := p.current()
		if err != nil {
			return nil, err
		}
		if tok.Kind != Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(RParen); err != nil {
		return nil, err
	}
	return logic.NewComp(name.Text, args...), nil
}
