package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	AddFriend(ctx context.Context, arg string) error
	RemoveFriend(ctx context.Context, arg string) error
	SetStatus(ctx context.Context, online bool) error
	Show(ctx context.Context) error
	Export(ctx context.Context) error
}

// runREPL reads a line from reader, parses the first token as the command
// and dispatches to methods on a. Every command runs under its own timeout.
// The loop exits on EOF, when ctx is done, or when the user types "exit"
// or "quit".
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create or load a keypair and register it
//	  - login                authenticate with the keypair file
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - addfriend <pubkey>   add a friend
//	  - removefriend <pubkey>
//	  - online | offline     publish the status
//	  - show                 show the state account
//	  - export               export the state account
//	  - whoami               show the session
//	  - logout               log out
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, timeout time.Duration) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("social> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var fn func(context.Context) error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: addfriend <pubkey>, removefriend <pubkey>, online, offline, show, export, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			fn = a.Register

		case "login":
			fn = a.Login

		case "logout":
			fn = a.Logout

		case "whoami":
			fn = a.Whoami

		case "addfriend", "removefriend":
			if len(args) != 1 {
				printlnFn("Usage:", cmd, "<pubkey>")
				continue
			}
			op := a.AddFriend
			if cmd == "removefriend" {
				op = a.RemoveFriend
			}
			fn = func(ctx context.Context) error { return op(ctx, args[0]) }

		case "online", "offline":
			online := cmd == "online"
			fn = func(ctx context.Context) error { return a.SetStatus(ctx, online) }

		case "show":
			fn = a.Show

		case "export":
			fn = a.Export

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if fn != nil {
			runCommand(ctx, fn, timeout)
		}
	}
}

func runCommand(ctx context.Context, fn func(context.Context) error, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		printlnFn("Error:", err)
	}
}
