package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Stacks(ctx context.Context) error
	Study(ctx context.Context) error
	Scribble(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line, takes the first token as the command, and dispatches
// to methods on 'a'. The loop exits on reader EOF or "exit"/"quit". Command
// errors are reported by the handlers themselves; the loop keeps running.
//
// The reader is the same one the command handlers prompt on, so a line typed
// ahead of a prompt is never swallowed by a second buffer.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cc> %s ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (s)tacks, study, scribble, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "s", "stacks":
			_ = a.Stacks(ctx)

		case "study":
			_ = a.Study(ctx)

		case "scribble":
			_ = a.Scribble(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
