// Command zipprolog consults a Prolog program and answers queries against
// it, either interactively (§6.3) or as a single batch query (§6.4).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arnobastenhof/zipprolog/repl"
	"github.com/arnobastenhof/zipprolog/solver"
	"github.com/arnobastenhof/zipprolog/zip"
)

type consultFiles []string

func (c *consultFiles) String() string     { return fmt.Sprint(*c) }
func (c *consultFiles) Set(v string) error { *c = append(*c, v); return nil }

var (
	query       = flag.String("query", "", "Run this query and exit, without entering the REPL")
	interactive = flag.Bool("interactive", true, "Enter the REPL after consulting the program file and -consult files")
	history     = flag.String("history", "/tmp/zipprolog-history", "Readline history file")
	debug       = flag.String("debug", "", "Write a newline-delimited JSON execution trace to this file")
	consults    consultFiles
)

func main() {
	flag.Var(&consults, "consult", "Additional program file to consult before the query or REPL (repeatable)")
	flag.Parse()

	if flag.NArg() == 0 && len(consults) == 0 {
		usage()
		os.Exit(0)
	}

	s, err := newSolver()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, arg := range flag.Args() {
		if err := consultFile(s, arg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	for _, file := range consults {
		if err := consultFile(s, file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if !*interactive {
		if *query == "" {
			fmt.Fprintln(os.Stderr, "-interactive=false requires -query")
			os.Exit(1)
		}
		runBatchQuery(s, *query)
		return
	}

	r, err := repl.New(s, *history)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer r.Close()

	if *query != "" {
		runBatchQuery(s, *query)
	}

	if err := r.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: zipprolog [-query q] [-interactive=false] [-consult file]... [-debug file] [program-file...]")
}

// newSolver returns a Solver, with the §10.2 execution trace enabled
// against -debug's file when that flag is set.
func newSolver() (*solver.Solver, error) {
	if *debug == "" {
		return solver.New(), nil
	}
	f, err := os.Create(*debug)
	if err != nil {
		return nil, err
	}
	return solver.NewWithTrace(f), nil
}

func consultFile(s *solver.Solver, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Consult(f)
}

// runBatchQuery is, like repl.REPL.runQuery, a §10.1 recovery boundary: a
// *zip.Fault raised by a bytecode invariant violation is reported as an
// ordinary error instead of crashing the process with a panic.
func runBatchQuery(s *solver.Solver, query string) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*zip.Fault); ok {
				fmt.Fprintln(os.Stderr, f)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	ans, err := s.Query(query)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer ans.Close()

	if !ans.OK() {
		fmt.Print("no\n")
		return
	}
	vars := ans.Vars()
	if len(vars) == 0 {
		fmt.Print("yes\n")
		return
	}
	names := zip.NewAnswerNames()
	for _, v := range vars {
		fmt.Printf("%s = %s ", v.Name, ans.Walk(v.Addr, names))
	}
	fmt.Print("yes\n")
}
