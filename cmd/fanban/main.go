// Command fanban is a network diagnostics tool for the 3fenban ticketing
// backend. It exercises the same request gateway the mini-program uses:
// domain allow-listing, retry with backoff, error classification, and the
// persisted activity log.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/3fenban/fanban-cli/internal/api"
	"github.com/3fenban/fanban-cli/internal/auth"
	"github.com/3fenban/fanban-cli/internal/config"
	"github.com/3fenban/fanban-cli/internal/storage"
	"github.com/3fenban/fanban-cli/internal/ui"
)

type configCmd struct{}

type testCmd struct{}

type logsCmd struct {
	JSON bool `arg:"--json" help:"dump raw JSON log entries"`
}

type clearLogsCmd struct{}

type sessionCmd struct{}

type ticketCmd struct{}

type args struct {
	Config    *configCmd    `arg:"subcommand:config" help:"print the resolved API configuration"`
	Test      *testCmd      `arg:"subcommand:test" help:"run the network request test suite"`
	Logs      *logsCmd      `arg:"subcommand:logs" help:"show the persisted network activity log"`
	ClearLogs *clearLogsCmd `arg:"subcommand:clear-logs" help:"discard the persisted network activity log"`
	Session   *sessionCmd   `arg:"subcommand:session" help:"show the local login session status"`
	Ticket    *ticketCmd    `arg:"subcommand:ticket" help:"show the demo ticket and its QR verification URL"`
}

func (args) Description() string {
	return "fanban - network diagnostics for the 3fenban ticketing backend"
}

func main() {
	var cliArgs args
	parser := arg.MustParse(&cliArgs)

	store, err := storage.NewFileStore()
	if err != nil {
		ui.PrintError(fmt.Sprintf("failed to open local storage: %v", err))
		os.Exit(1)
	}
	cfg := config.Resolve()
	client := api.NewClient(cfg, store)
	ctx := context.Background()

	switch {
	case cliArgs.Config != nil:
		runConfig(cfg)
	case cliArgs.Test != nil:
		if !runTests(ctx, client) {
			os.Exit(1)
		}
	case cliArgs.Logs != nil:
		runLogs(client, cliArgs.Logs.JSON)
	case cliArgs.ClearLogs != nil:
		client.Log().Clear()
		ui.PrintSuccess("network activity log cleared")
	case cliArgs.Session != nil:
		runSession(ctx, store, client)
	case cliArgs.Ticket != nil:
		runTicket(cfg)
	default:
		parser.WriteHelp(os.Stdout)
	}
}

func runSession(ctx context.Context, store storage.Store, client *api.Client) {
	sessions := auth.NewSessionStore(store, client)
	ui.PrintHeader("Login Session")
	user := sessions.CurrentUser()
	if user == nil || sessions.CurrentToken() == "" {
		ui.PrintInfo("no local session")
		return
	}
	ui.PrintKV("user", fmt.Sprintf("%s (id %d)", user.Nickname, user.ID))
	ui.PrintKV("openid", user.OpenID)
	ui.PrintKV("tickets", fmt.Sprintf("%d", user.TicketCount))
	ui.PrintKV("last login", user.LastLogin)

	session, err := sessions.Load(ctx)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("session check failed: %v", err))
		return
	}
	if session == nil {
		ui.PrintWarning("session expired or rejected by the server; local copy cleared")
		return
	}
	ui.PrintSuccess("session is valid")
}
