package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userID == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userID)
}

// Root runs the interactive loop: read a line, dispatch the first token as
// a command. Command handlers print their own errors; the loop stays up
// until EOF or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Humi CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if !a.isLoggedIn() {
		a.Login(ctx)
	}

	go a.StartSyncWatcher(ctx, a.config.OnlineCheckInterval)

	for {
		fmt.Printf("humi %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: scan, (l)ist, rate, notes, feedback, stats, sync, logout, exit")
			} else {
				fmt.Println("Available commands: login, exit")
			}

		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "scan":
			a.scan(ctx)
		case "l", "list":
			a.list(ctx)
		case "rate":
			a.rate(ctx)
		case "notes":
			a.notes(ctx)
		case "feedback":
			a.feedback(ctx)
		case "stats":
			a.stats(ctx)
		case "sync":
			a.sync(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// requireLogin gates commands that need a user context.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Println("Please login first")
	return false
}
