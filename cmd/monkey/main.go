package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	monkey "github.com/avillega/monkey"
)

const (
	appName     = "monkey"
	historyFile = ".monkey_history"
	prompt      = ">> "
)

var banner = fmt.Sprintf("Monkey %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", monkey.Version)

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(monkey.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Monkey %s

Usage:
  %s                    Start the REPL.
  %s run <file.mky>     Run a script.
  %s repl               Start the REPL.
  %s version            Print the version.

`, monkey.Version, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.mky>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	ip := monkey.NewInterpreter()
	out, perrs := ip.RunSource(string(src))
	if len(perrs) > 0 {
		fmt.Fprintln(os.Stderr, color.RedString("Parser errors: %s", strings.Join(perrs, "\n")))
		return 1
	}
	if out.Kind == monkey.OError {
		fmt.Fprintln(os.Stderr, color.RedString("%s", out.Msg))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

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

	// The top-level environment persists across inputs.
	ip := monkey.NewInterpreter()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			switch strings.TrimSpace(strings.ToLower(line)) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		out, perrs := ip.RunSource(line)
		if len(perrs) > 0 {
			fmt.Fprintln(os.Stderr, color.RedString("Parser errors: %s", strings.Join(perrs, "\n")))
			continue
		}
		if out.Kind == monkey.OError {
			fmt.Fprintln(os.Stderr, color.RedString("%s", out.Msg))
			continue
		}
		fmt.Println(color.BlueString("%s", monkey.FormatValue(out.Val)))
		ln.AppendHistory(line)
	}
}
