package ticket

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3fenban/fanban-cli/internal/model"
)

func TestVerifyQRContentEncodesTicketParams(t *testing.T) {
	demo := Demo()
	content, err := VerifyQRContent(demo, "https://test.3fenban.com/api/verify")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(content, "https://test.3fenban.com/api/verify?"))

	parsed, err := url.Parse(content)
	require.NoError(t, err)
	params := parsed.Query()
	require.Equal(t, "1", params.Get("ticketId"))
	require.Equal(t, demo.TicketNumber, params.Get("ticketNumber"))
	require.Equal(t, demo.OrderNumber, params.Get("orderNumber"))
	require.Equal(t, demo.Venue, params.Get("venue"))
	require.Equal(t, "580", params.Get("price"))
}

func TestVerifyQRContentOnlyForConfirmedTickets(t *testing.T) {
	for _, status := range []model.TicketStatus{model.TicketPending, model.TicketRefunded, model.TicketExpired} {
		tk := Demo()
		tk.Status = status
		_, err := VerifyQRContent(tk, "https://test.3fenban.com/api/verify")
		require.ErrorIs(t, err, ErrNotConfirmed, "status %s", status)
	}
}

func TestStatusMappingsAreTotal(t *testing.T) {
	statuses := []model.TicketStatus{
		model.TicketPending,
		model.TicketConfirmed,
		model.TicketRefunded,
		model.TicketExpired,
		model.TicketStatus("bogus"),
	}
	for _, status := range statuses {
		if StatusText(status) == "" {
			t.Fatalf("empty status text for %q", status)
		}
		if ActionLabel(status) == "" {
			t.Fatalf("empty action label for %q", status)
		}
	}
}
