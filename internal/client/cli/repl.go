package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/profilesync/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Exists(ctx context.Context) error
	Profile(ctx context.Context) error
	CreateProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Ping(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF, on "exit"/"quit" or when ctx is done.
//
//	Always:      help, register, login, exists, ping, status, exit | quit
//	Logged in:   profile, createprofile, updateprofile, logout
//
// Command errors are reported to the user and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ps %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, createprofile, updateprofile, exists, ping, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exists, ping, status, exit")
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "exists":
			cmdErr = a.Exists(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "createprofile":
			cmdErr = a.CreateProfile(ctx)
		case "updateprofile":
			cmdErr = a.UpdateProfile(ctx)
		case "ping":
			cmdErr = a.Ping(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(formatError(cmdErr))
		}
	}
}

// formatError renders err as "Error [CODE]: detail", with a retry hint for
// transient failures.
func formatError(err error) string {
	msg := fmt.Sprintf("Error [%s]: %s", common.Code(err), common.Detail(err))
	if common.IsTransient(err) {
		msg += " (temporary failure)"
	}
	return msg
}
