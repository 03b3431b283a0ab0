package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

const helpText = `Available commands:
  [1] register   create a new user
  [2] login      log in
      logout     end the current session
      whoami     show the logged in user
      strength   check a password's strength
      migrate    copy users.txt into the SQLite database
      help       show this list
  [3] exit       leave the program`

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Strength(ctx context.Context) error
	Migrate(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF or exit. Errors returned by
// handlers are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("authkeeper%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		var err error
		switch cmd := strings.ToLower(parts[0]); cmd {
		case "help", "?":
			printlnFn(helpText)
		case "register", "1":
			err = a.Register(ctx)
		case "login", "2":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "strength":
			err = a.Strength(ctx)
		case "migrate":
			err = a.Migrate(ctx)
		case "exit", "quit", "3":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
