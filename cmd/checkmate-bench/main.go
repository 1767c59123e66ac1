// Command checkmate-bench decorates a small set of demonstration functions
// and reports how each configured call fares against its hints -- a
// smoke-test harness for the decorator core, not a benchmark in the
// testing.B sense.
//
// Grounded on this teacher's cmd/lsp/main.go for its minimal main()/logging
// setup (log.SetFlags(0), logging to stderr) and on cmd/funxy/main.go for
// the general shape of a thin main wiring a handful of subsystems together.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/checkmate"
	"github.com/funvibe/checkmate/internal/cache"
	"github.com/funvibe/checkmate/internal/sig"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	persistPath := flag.String("persist", "", "path to a sqlite database to open as a sign-cache store (the store is opened and its schema created; classifications are not written to it)")
	noColor := flag.Bool("no-color", false, "disable colored PASS/FAIL output even on a tty")
	inspectDir := flag.String("inspect-dir", "", "print the extracted Signature of -inspect-func from a real Go package instead of running the demo cases")
	inspectFunc := flag.String("inspect-func", "", "function name to extract a Signature for, used with -inspect-dir")
	flag.Parse()

	color := !*noColor && isatty.IsTerminal(os.Stdout.Fd())

	if *inspectDir != "" {
		s, err := inspectSignature(*inspectDir, *inspectFunc)
		if err != nil {
			log.Fatalf("checkmate-bench: %v", err)
		}
		for _, p := range s.Params {
			fmt.Printf("%s %s\n", p.Name, p.Kind)
		}
		return
	}

	if *persistPath != "" {
		store, err := cache.OpenSQLiteStore(*persistPath)
		if err != nil {
			log.Fatalf("checkmate-bench: opening persist store: %v", err)
		}
		defer store.Close()
		log.Printf("checkmate-bench: opened sign cache store at %s", *persistPath)
	}

	cases := demoCases()
	failed := 0
	for _, c := range cases {
		err := c.run()
		report(c.name, err, color)
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d/%d cases failed\n", failed, len(cases))
		os.Exit(1)
	}
}

type demoCase struct {
	name string
	run  func() error
}

func demoCases() []demoCase {
	return []demoCase{
		{name: "wrap add(int,int) int, called with (2,3)", run: func() error {
			add := func(a, b int) int { return a + b }
			wrapped, err := checkmate.Wrap(add, "add",
				checkmate.Hints{"arg0": reflect.TypeOf(0), "arg1": reflect.TypeOf(0)},
				reflect.TypeOf(0))
			if err != nil {
				return err
			}
			fn := wrapped.(func(int, int) int)
			if got := fn(2, 3); got != 5 {
				return fmt.Errorf("got %d, want 5", got)
			}
			return nil
		}},
		{name: "decorate greet(string) string, called with a mismatched type", run: func() error {
			greet := func(name string) string { return "hi " + name }
			s, err := sig.FromFunc(greet)
			if err != nil {
				return err
			}
			d, err := checkmate.Decorate(greet, "greet", s,
				checkmate.Hints{"arg0": reflect.TypeOf("")}, reflect.TypeOf(""))
			if err != nil {
				return err
			}
			if _, err := d.Call([]any{42}, nil); err == nil {
				return fmt.Errorf("expected a type-mismatch error, call succeeded")
			}
			return nil
		}},
	}
}

func report(name string, err error, color bool) {
	status := "PASS"
	if err != nil {
		status = "FAIL"
	}
	if color {
		status = colorize(status, err == nil)
	}
	if err != nil {
		fmt.Printf("%s  %s: %v\n", status, name, err)
		return
	}
	fmt.Printf("%s  %s\n", status, name)
}

func colorize(s string, ok bool) string {
	const (
		green = "\x1b[32m"
		red   = "\x1b[31m"
		reset = "\x1b[0m"
	)
	if ok {
		return green + s + reset
	}
	return red + s + reset
}
