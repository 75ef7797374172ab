package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/3fenban/fanban-cli/internal/api"
	"github.com/3fenban/fanban-cli/internal/config"
	"github.com/3fenban/fanban-cli/internal/ticket"
	"github.com/3fenban/fanban-cli/internal/ui"
)

func runConfig(cfg config.Config) {
	ui.PrintHeader("API Configuration")
	ui.PrintKV("environment", cfg.Environment.String())
	ui.PrintKV("base url", cfg.BaseURL)
	ui.PrintKV("timeout", cfg.Timeout.String())
	ui.PrintKV("retries", fmt.Sprintf("%d", cfg.RetryCount))
}

// testCase exercises one request through the dispatcher. Cases marked
// expectError verify the failure path (e.g. allow-list rejection).
type testCase struct {
	name        string
	url         string
	method      string
	expectError bool
}

func runTests(ctx context.Context, client *api.Client) bool {
	cfg := client.Config()
	cases := []testCase{
		{name: "fetch banners", url: cfg.BuildURL(config.EndpointBanners), method: http.MethodGet},
		{name: "fetch concerts", url: cfg.BuildURL(config.EndpointConcerts), method: http.MethodGet},
		{name: "reject non-allow-listed domain", url: "https://invalid-domain.example.com/api/test", method: http.MethodGet, expectError: true},
	}

	ui.PrintHeader("Network Request Tests")
	passed := 0
	for _, tc := range cases {
		_, err := client.Dispatch(ctx, api.Request{URL: tc.url, Method: tc.method})
		switch {
		case tc.expectError && err != nil:
			ui.PrintSuccess(fmt.Sprintf("%s: failed as expected (%v)", tc.name, err))
			passed++
		case tc.expectError:
			ui.PrintError(fmt.Sprintf("%s: expected a failure but the request succeeded", tc.name))
		case err != nil:
			ui.PrintError(fmt.Sprintf("%s: %v", tc.name, err))
		default:
			ui.PrintSuccess(tc.name)
			passed++
		}
	}

	entries := client.Log().Entries()
	fmt.Println()
	ui.PrintInfo(fmt.Sprintf("%d/%d tests passed, %d activity log entries recorded", passed, len(cases), len(entries)))
	return passed == len(cases)
}

func runLogs(client *api.Client, asJSON bool) {
	entries := client.Log().Entries()
	if len(entries) == 0 {
		ui.PrintInfo("network activity log is empty")
		return
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, e := range entries {
			_ = enc.Encode(e)
		}
		return
	}

	ui.PrintHeader("Network Activity Log")
	var total int
	for _, e := range entries {
		total += len(e.Payload)
		fmt.Printf("  %s %-8s %s %s\n", e.Timestamp, e.Kind, shortID(e.RequestID), e.Payload)
	}
	fmt.Println()
	ui.PrintInfo(fmt.Sprintf("%d entries, %s of payload", len(entries), humanize.Bytes(uint64(total))))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runTicket(cfg config.Config) {
	t := ticket.Demo()
	ui.PrintHeader("Demo Ticket")
	ui.PrintKV("concert", t.ConcertName)
	ui.PrintKV("city", t.City)
	ui.PrintKV("venue", t.Venue)
	ui.PrintKV("date", fmt.Sprintf("%s %s", t.Date, t.Time))
	ui.PrintKV("seat", fmt.Sprintf("%s %s", t.SeatArea, t.SeatNumber))
	ui.PrintKV("price", fmt.Sprintf("¥%d", t.Price))
	ui.PrintKV("status", ticket.StatusText(t.Status))
	ui.PrintKV("order", t.OrderNumber)

	qrURL, err := ticket.VerifyQRContent(t, cfg.BuildURL(config.EndpointTicketVerify))
	if err != nil {
		ui.PrintWarning(err.Error())
		return
	}
	fmt.Println()
	ui.PrintInfo("QR verification URL:")
	fmt.Printf("  %s\n", qrURL)
}
