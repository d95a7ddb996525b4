package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wippyai/wasmrepl/engine"
	"github.com/wippyai/wasmrepl/executor"
	"github.com/wippyai/wasmrepl/parser"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Launch the interactive TUI")
		srcFile     = flag.String("src", "", "Replay a file of REPL lines non-interactively")
		debug       = flag.Bool("debug", false, "Raise the logger to debug level")
	)
	flag.Parse()

	engine.SetDebug(*debug)

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *srcFile != "" {
		if err := runSrc(*srcFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runStdin()
}

// runSrc replays a file of REPL input: blocks of one or more lines,
// separated by blank lines, each block fed to the interpreter as a
// single line (so a block may span several physical lines, e.g. to lay
// out a multi-line func definition).
func runSrc(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	exec := executor.New()
	for i, block := range splitBlocks(string(data)) {
		fmt.Printf("> %s\n", strings.TrimSpace(block))
		out, err := evalLine(exec, block)
		if err != nil {
			fmt.Printf("error (line %d): %v\n", i+1, err)
			continue
		}
		fmt.Println(out)
	}
	return nil
}

func splitBlocks(src string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return blocks
}

// runStdin is the degenerate non-TUI interactive mode: a plain
// read-eval-print loop over stdin, one line at a time.
func runStdin() {
	exec := executor.New()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Print("> ")
			continue
		}
		out, err := evalLine(exec, line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
		} else {
			fmt.Println(out)
		}
		fmt.Print("> ")
	}
}

func evalLine(exec *executor.Executor, src string) (string, error) {
	line, err := parser.ParseLine(src)
	if err != nil {
		return "", err
	}
	return exec.ExecuteLine(line)
}
