// Package ticket holds ticket presentation helpers and the QR verification
// payload builder used by the ticket detail view.
package ticket

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/3fenban/fanban-cli/internal/model"
)

// ErrNotConfirmed is returned when a QR payload is requested for a ticket
// that is not in the confirmed state.
var ErrNotConfirmed = errors.New("ticket is not confirmed, no QR code to generate")

// StatusText returns the short status label shown on the ticket card.
func StatusText(status model.TicketStatus) string {
	switch status {
	case model.TicketPending:
		return "awaiting payment"
	case model.TicketConfirmed:
		return "ready to use"
	case model.TicketRefunded:
		return "refunded"
	case model.TicketExpired:
		return "expired"
	default:
		return "unknown status"
	}
}

// StatusDescription returns the longer status explanation.
func StatusDescription(status model.TicketStatus) string {
	switch status {
	case model.TicketPending:
		return "order awaiting payment, please pay as soon as possible"
	case model.TicketConfirmed:
		return "ticket ready to use, please arrive on time"
	case model.TicketRefunded:
		return "refund processed, please check your account"
	case model.TicketExpired:
		return "order expired and can no longer be used"
	default:
		return ""
	}
}

// ActionLabel returns the primary action for a ticket in the given state.
func ActionLabel(status model.TicketStatus) string {
	switch status {
	case model.TicketPending:
		return "pay now"
	case model.TicketConfirmed:
		return "request refund"
	case model.TicketExpired:
		return "order again"
	case model.TicketRefunded:
		return "view refund details"
	default:
		return "ok"
	}
}

// QRData extracts the verification parameter set from a ticket.
func QRData(t model.Ticket) model.QRCodeData {
	return model.QRCodeData{
		TicketID:     t.ID,
		TicketNumber: t.TicketNumber,
		OrderNumber:  t.OrderNumber,
		ConcertName:  t.ConcertName,
		Date:         t.Date,
		Time:         t.Time,
		Venue:        t.Venue,
		SeatArea:     t.SeatArea,
		SeatNumber:   t.SeatNumber,
		Price:        t.Price,
	}
}

// VerifyQRContent builds the full backend verification URL encoded into the
// ticket's QR code. Only confirmed tickets carry a QR code.
func VerifyQRContent(t model.Ticket, verifyURL string) (string, error) {
	if t.Status != model.TicketConfirmed {
		return "", ErrNotConfirmed
	}
	data := QRData(t)
	params := url.Values{}
	params.Set("ticketId", strconv.Itoa(data.TicketID))
	params.Set("ticketNumber", data.TicketNumber)
	params.Set("orderNumber", data.OrderNumber)
	params.Set("concertName", data.ConcertName)
	params.Set("date", data.Date)
	params.Set("time", data.Time)
	params.Set("venue", data.Venue)
	params.Set("seatArea", data.SeatArea)
	params.Set("seatNumber", data.SeatNumber)
	params.Set("price", strconv.Itoa(data.Price))
	return verifyURL + "?" + params.Encode(), nil
}

// Demo returns the hardcoded demo ticket used by the detail view and the
// diagnostics CLI.
func Demo() model.Ticket {
	return model.Ticket{
		ID:             1,
		ConcertID:      1,
		City:           "Beijing",
		ConcertName:    "2025 VR Concert",
		Date:           "2025-12-31",
		Time:           "19:30",
		Venue:          "Beijing National Stadium",
		SeatArea:       "Area A",
		SeatNumber:     "Row 12 Seat 08",
		Price:          580,
		Status:         model.TicketConfirmed,
		PurchaseTime:   "2025-10-10 14:30:25",
		OrderNumber:    "T202510101430001",
		TicketNumber:   "TJ202510101430001",
		RefundDeadline: "2025-12-25 23:59:59",
		ExpireTime:     "2025-12-31 23:59:59",
	}
}
