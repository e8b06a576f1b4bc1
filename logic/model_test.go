package logic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arnobastenhof/zipprolog/logic"
)

func TestVars(t *testing.T) {
	tests := []struct {
		name string
		term logic.Term
		want []logic.Var
	}{
		{"atom", logic.Atom("zeus"), nil},
		{"var", logic.Var("X"), []logic.Var{"X"}},
		{
			"comp with repeated var",
			logic.NewComp("father", logic.Var("X"), logic.Var("Y"), logic.Var("X")),
			[]logic.Var{"X", "Y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logic.Vars(tt.term)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Vars(%v) diff (-want +got):\n%s", tt.term, diff)
			}
		})
	}
}

func TestClauseVars(t *testing.T) {
	clause := &logic.Clause{
		Head: logic.NewComp("grandparent", logic.Var("G"), logic.Var("C")),
		Body: []logic.Term{
			logic.NewComp("parent", logic.Var("G"), logic.Var("P")),
			logic.NewComp("parent", logic.Var("P"), logic.Var("C")),
		},
	}
	want := []logic.Var{"G", "C", "P"}
	got := clause.Vars()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clause.Vars() diff (-want +got):\n%s", diff)
	}
}

func TestTermIndicator(t *testing.T) {
	tests := []struct {
		term logic.Term
		want string
	}{
		{logic.Atom("zeus"), "zeus/0"},
		{logic.EmptyList, "[]/0"},
		{logic.NewComp("father", logic.Atom("zeus"), logic.Var("X")), "father/2"},
	}
	for _, tt := range tests {
		got := logic.TermIndicator(tt.term)
		if got != tt.want {
			t.Errorf("TermIndicator(%v) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestFormatAtom(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"zeus", "zeus"},
		{"[]", "[]"},
		{"=", "="},
		{"X", `"X"`},
	}
	for _, tt := range tests {
		got := logic.FormatAtom(tt.in)
		if got != tt.want {
			t.Errorf("FormatAtom(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
