package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/arnobastenhof/zipprolog/dsl"
	"github.com/arnobastenhof/zipprolog/logic"
	"github.com/arnobastenhof/zipprolog/parser"
)

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []*logic.Clause
	}{
		{
			"single fact",
			"father(zeus, ares).",
			Clauses(Clause(Comp("father", Atom("zeus"), Atom("ares")))),
		},
		{
			"fact with comment",
			"% a fact\nfather(zeus, ares). /* trailing */",
			Clauses(Clause(Comp("father", Atom("zeus"), Atom("ares")))),
		},
		{
			"rule",
			"grandparent(G,C) :- parent(G,P), parent(P,C).",
			Clauses(Clause(
				Comp("grandparent", Var("G"), Var("C")),
				Comp("parent", Var("G"), Var("P")),
				Comp("parent", Var("P"), Var("C")),
			)),
		},
		{
			"empty list and repeated variable",
			"append([],YS,YS).",
			Clauses(Clause(Comp("append", Atom("[]"), Var("YS"), Var("YS")))),
		},
		{
			"graphic atom functor",
			"\\=(a,b).",
			Clauses(Clause(Comp("\\=", Atom("a"), Atom("b")))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.NewParser(strings.NewReader(tt.source))
			got, err := p.ParseProgram()
			if err != nil {
				t.Fatalf("ParseProgram(%q): %v", tt.source, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseProgram(%q) diff (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	p := parser.NewParser(strings.NewReader("father(zeus, X), mother(hera, X)."))
	got, err := p.ParseQuery()
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	want := Query(
		Comp("father", Atom("zeus"), Var("X")),
		Comp("mother", Atom("hera"), Var("X")),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseQuery diff (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"father(zeus, ares)",    // missing period
		"father(zeus, ares).X", // trailing garbage before EOF
		":- father(zeus).",      // head must be a structure, not ':-'
		"[ares].",
	}
	for _, src := range tests {
		p := parser.NewParser(strings.NewReader(src))
		if _, err := p.ParseProgram(); err == nil {
			t.Errorf("ParseProgram(%q): expected error, got none", src)
		}
	}
}
