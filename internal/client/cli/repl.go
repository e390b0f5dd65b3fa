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
	Group() Group
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context, quick string) error
	List(ctx context.Context) error
	Filter(ctx context.Context) error
	ClearFilters(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Show(ctx context.Context, id string) error
	Mine(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Profile(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the estatekeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. Which commands are accepted depends on the active
// command group, kept up to date by the route guard. The loop exits on
// scanner EOF, context cancellation, or when the user types "exit" or
// "quit".
//
// Prompt & Commands
//
//	Auth group (signed out):
//	  - help               — show available commands
//	  - register           — create an account
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Main group (signed in):
//	  - help               — show available commands
//	  - home [type|all]    — featured listings plus the quick-filtered feed
//	  - list               — listings through the advanced filter
//	  - filter             — set the advanced filter (types, price)
//	  - clear              — reset quick and advanced filters
//	  - refresh            — re-fetch listings from the backend
//	  - search <text>      — case-insensitive title/location search
//	  - show <id>          — show a single listing
//	  - mine               — listings owned by the current user
//	  - add                — create a listing
//	  - edit <id>          — update a listing
//	  - delete <id>        — delete a listing (with confirmation)
//	  - profile [edit]     — show or update the profile
//	  - logout             — sign out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ek> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if a.Group() == GroupAuth {
			switch cmd {
			case "help":
				printlnFn("Available commands: register, login, exit")
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: home, (l)ist, filter, clear, refresh, search, show, mine, add, edit, delete, profile, logout, exit")

		case "home":
			_ = a.Home(ctx, arg)

		case "l", "list":
			_ = a.List(ctx)

		case "filter":
			_ = a.Filter(ctx)

		case "clear":
			_ = a.ClearFilters(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "show":
			_ = a.Show(ctx, arg)

		case "mine":
			_ = a.Mine(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "profile":
			_ = a.Profile(ctx, arg)

		case "logout":
			_ = a.Logout(ctx)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
