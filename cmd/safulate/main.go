// Command safulate runs Safulate source files and hosts an interactive REPL.
//
// Grounded on the teacher's cmd/msg/main.go: a small subcommand dispatcher,
// a liner-backed REPL with a history file and Ctrl+C/SIGTERM handling, and
// colorized error output. `fmt`/`test`/`get` subcommands from the teacher
// have no Safulate-side counterpart (no canon/testing standard-library
// modules are part of this spec) and are left out rather than invented.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	safulate "github.com/cibere/safulate"
)

const (
	appName     = "safulate"
	historyFile = ".safulate_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var banner = "Safulate REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		// Bare `safulate <file>` runs it, matching a scripting-language CLI's
		// most common invocation shape.
		os.Exit(cmdRun(os.Args[1:]))
	}
}

func usage() {
	fmt.Printf(`Safulate

Usage:
  %s run <file.saf>    Run a script.
  %s repl              Start the REPL.
  %s <file.saf>        Shorthand for run.

`, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.saf>\n", appName)
		return 2
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	dir := filepath.Dir(file)
	it := safulate.NewRuntime(file,
		safulate.WithModuleLoader(safulate.NewFSModuleLoader(dir)),
		safulate.WithStdout(func(s string) { fmt.Print(s) }),
	)

	_, runErr := it.RunSource(file, string(src))
	if runErr != nil {
		fmt.Fprintln(os.Stderr, red(runErr.Error()))
		return 1
	}
	return 0
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	cwd, _ := os.Getwd()
	it := safulate.NewRuntime("repl",
		safulate.WithModuleLoader(safulate.NewFSModuleLoader(cwd)),
		safulate.WithStdout(func(s string) { fmt.Print(s) }),
	)

	for {
		code, ok := readBalanced(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			break
		}

		v, err := it.RunSource("<repl>", code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		if !v.IsNull() {
			fmt.Println(blue(safulate.Repr(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readBalanced reads lines until braces/parens/brackets balance, so a
// multi-line block entered at the REPL doesn't need a trailing backslash.
func readBalanced(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	depth := 0

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		depth += bracketDelta(line)

		if depth <= 0 {
			return b.String(), true
		}
	}
}

func bracketDelta(line string) int {
	delta := 0
	inStr := false
	r := bufio.NewReader(strings.NewReader(line))
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			break
		}
		if inStr {
			if c == '\\' {
				_, _, _ = r.ReadRune()
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{', '(', '[':
			delta++
		case '}', ')', ']':
			delta--
		}
	}
	return delta
}
