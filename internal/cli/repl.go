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
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	EditSettings(ctx context.Context) error
	AddAchievement(ctx context.Context) error
	ListAchievements(ctx context.Context) error
	ReviewAchievement(ctx context.Context) error
	RemoveAchievement(ctx context.Context) error
	ShowKeys(ctx context.Context) error
	GetValue(ctx context.Context) error
	SetValue(ctx context.Context) error
	DelValue(ctx context.Context) error
	Cleanup(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the EduFolio console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - login          — sign in with an email
//	  - cleanup        — purge expired sessions
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - whoami         — show the current session
//	  - profile        — show the profile form
//	  - edit           — edit the profile form
//	  - settings       — edit dashboard settings
//	  - add            — add an achievement
//	  - (l)ist         — list achievements
//	  - review         — approve/reject an achievement
//	  - rm             — remove an achievement
//	  - keys           — list stored data keys
//	  - get | set | del — raw access to stored values
//	  - cleanup        — purge expired sessions
//	  - logout         — sign out and purge this identity's data
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("edufolio %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, edit, settings, add, (l)ist, review, rm, keys, get, set, del, cleanup, logout, exit")
			} else {
				printlnFn("Available commands: login, cleanup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "settings":
			_ = a.EditSettings(ctx)

		case "add":
			_ = a.AddAchievement(ctx)

		case "l", "list":
			_ = a.ListAchievements(ctx)

		case "review":
			_ = a.ReviewAchievement(ctx)

		case "rm":
			_ = a.RemoveAchievement(ctx)

		case "keys":
			_ = a.ShowKeys(ctx)

		case "get":
			_ = a.GetValue(ctx)

		case "set":
			_ = a.SetValue(ctx)

		case "del":
			_ = a.DelValue(ctx)

		case "cleanup":
			_ = a.Cleanup(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
