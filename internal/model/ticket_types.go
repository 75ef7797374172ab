package model

// TicketStatus is the lifecycle state of a purchased ticket.
type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketConfirmed TicketStatus = "confirmed"
	TicketRefunded  TicketStatus = "refunded"
	TicketExpired   TicketStatus = "expired"
)

// Ticket is a purchased concert ticket as shown on the detail page.
type Ticket struct {
	ID             int          `json:"id"`
	ConcertID      int          `json:"concertId"`
	City           string       `json:"city"`
	ConcertName    string       `json:"concertName"`
	ConcertImage   string       `json:"concertImage,omitempty"`
	Date           string       `json:"date"`
	Time           string       `json:"time"`
	Venue          string       `json:"venue"`
	SeatArea       string       `json:"seatArea"`
	SeatNumber     string       `json:"seatNumber"`
	Price          int          `json:"price"`
	Status         TicketStatus `json:"status"`
	PurchaseTime   string       `json:"purchaseTime"`
	OrderNumber    string       `json:"orderNumber"`
	TicketNumber   string       `json:"ticketNumber"`
	RefundDeadline string       `json:"refundDeadline,omitempty"`
	ExpireTime     string       `json:"expireTime,omitempty"`
	RefundTime     string       `json:"refundTime,omitempty"`
}

// QRCodeData is the parameter set encoded into a ticket's verification QR
// code. Scanning the code hits the backend verify endpoint with these fields.
type QRCodeData struct {
	TicketID     int    `json:"ticketId"`
	TicketNumber string `json:"ticketNumber"`
	OrderNumber  string `json:"orderNumber"`
	ConcertName  string `json:"concertName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Venue        string `json:"venue"`
	SeatArea     string `json:"seatArea"`
	SeatNumber   string `json:"seatNumber"`
	Price        int    `json:"price"`
}
