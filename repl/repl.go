// Package repl implements the interactive read-compile-run-backtrack loop
// of §6.3: a query terminated by '.', an answer line per solution, and a
// ';' at the next prompt to seek another.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/arnobastenhof/zipprolog/solver"
	"github.com/arnobastenhof/zipprolog/zip"
)

// REPL drives one Solver from a readline instance.
type REPL struct {
	solver *solver.Solver
	rl     *readline.Instance
	out    io.Writer
}

// New returns a REPL reading and echoing through an interactive line
// editor backed by historyFile.
func New(s *solver.Solver, historyFile string) (*REPL, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "?- ",
		HistoryFile:            historyFile,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	return &REPL{solver: s, rl: rl, out: rl.Stdout()}, nil
}

// Close releases the line editor's resources.
func (r *REPL) Close() error {
	return r.rl.Close()
}

// Run reads queries until "halt" or end-of-file, reporting a fatal I/O
// error if one occurs; a halted or exhausted session returns nil.
func (r *REPL) Run() error {
	for {
		query, halt, err := r.readQuery()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if halt {
			return nil
		}
		if query == "" {
			continue
		}
		r.runQuery(query)
	}
}

// readQuery accumulates lines, using a continuation prompt, until a
// '.'-terminated query is seen. It reports halt on a bare "halt" line, and
// returns io.EOF as the error at end of input or on an interrupt.
func (r *REPL) readQuery() (query string, halt bool, err error) {
	r.rl.SetPrompt("?- ")
	var lines []string
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return "", false, io.EOF
			}
			return "", false, err
		}
		line = strings.TrimSpace(line)
		if len(lines) == 0 && line == "halt" {
			return "", true, nil
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if !strings.HasSuffix(line, ".") {
			r.rl.SetPrompt("|  ")
			continue
		}
		break
	}
	query = strings.Join(lines, " ")
	r.rl.SaveHistory(query)
	return query, false, nil
}

// runQuery is the §10.1 recovery boundary: a *zip.Fault raised anywhere in
// the machine while this query runs (including across ";"-driven
// backtracking) is reported as an ordinary error line instead of
// crashing the REPL with a panic. It never recovers inside the
// fetch/decode/execute loop itself, only here, at the single point where
// one query's interaction with the user ends.
func (r *REPL) runQuery(query string) {
	defer func() {
		if rec := recover(); rec != nil {
			if f, ok := rec.(*zip.Fault); ok {
				fmt.Fprintf(r.out, "%v\n", f)
				return
			}
			panic(rec)
		}
	}()

	ans, err := r.solver.Query(query)
	if err != nil {
		fmt.Fprintf(r.out, "%v\n", err)
		return
	}
	defer ans.Close()

	ok := ans.OK()
	for {
		if !ok {
			fmt.Fprint(r.out, "no\n")
			return
		}
		vars := ans.Vars()
		if len(vars) == 0 {
			fmt.Fprint(r.out, "yes\n")
			return
		}
		names := zip.NewAnswerNames()
		for _, v := range vars {
			fmt.Fprintf(r.out, "%s = %s ", v.Name, ans.Walk(v.Addr, names))
		}
		line, err := r.rl.Readline()
		if err != nil {
			fmt.Fprint(r.out, "yes\n")
			return
		}
		if strings.TrimSpace(line) != ";" {
			fmt.Fprint(r.out, "yes\n")
			return
		}
		ok = ans.Next()
	}
}
