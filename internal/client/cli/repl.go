package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Home(ctx context.Context) error
	Blogs(ctx context.Context) error
	Blog(ctx context.Context, slug string) error
	Like(ctx context.Context, id string) error
	Grievances(ctx context.Context) error
	Grievance(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the grievance desk CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". Commands share reader with the prompts they issue.
//
// Prompt & Commands
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate with email or phone
//	  - home           categories, sliders and blogs
//	  - blogs          list blogs
//	  - blog <slug>    show a single blog
//	  - like <id>      toggle the local like of a blog
//	  - exit | quit    leave the program
//
//	Logged in, additionally:
//	  - whoami         show the cached profile
//	  - profile        edit the cached profile
//	  - grievances     list submitted grievances
//	  - grievance      file a grievance with images
//	  - logout         sign out
//
// Errors returned by command handlers are printed and otherwise ignored.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gd> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: home, blogs, blog <slug>, like <id>, whoami, profile, grievances, grievance, logout, exit")
			} else {
				printlnFn("Available commands: register, login, home, blogs, blog <slug>, like <id>, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "home":
			cmdErr = a.Home(ctx)

		case "blogs":
			cmdErr = a.Blogs(ctx)

		case "blog":
			if len(args) == 0 {
				printlnFn("Usage: blog <slug>")
				continue
			}
			cmdErr = a.Blog(ctx, args[0])

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <id>")
				continue
			}
			cmdErr = a.Like(ctx, args[0])

		case "grievances":
			cmdErr = a.Grievances(ctx)

		case "grievance":
			cmdErr = a.Grievance(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(userMessage(cmdErr))
		}
	}
}
