package domain

import (
	"time"

	"github.com/google/uuid"
)

// CatalogItem is a bookable party service or rentable inventory item.
// Catalog entries are seeded reference data and are never mutated by the
// booking workflow. Price is stored in whole currency units.
type CatalogItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Features    []string `json:"features"`
	Location    string   `json:"location,omitempty"`
	Capacity    string   `json:"capacity,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

// Address is a customer delivery/venue address. At most one address per
// customer should be flagged default; when several are, the lowest ID wins.
type Address struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	IsDefault  bool   `json:"is_default"`
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "bank_transfer"
	PaymentCard     PaymentMethod = "card"
	PaymentEWallet  PaymentMethod = "e_wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCard, PaymentEWallet:
		return true
	default:
		return false
	}
}

// OrderItem is one catalog line of a submitted order. The unit price is the
// catalog price at submission time.
type OrderItem struct {
	ItemID    int64 `json:"item_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type Order struct {
	ID            uuid.UUID     `json:"id"`
	CustomerID    int64         `json:"customer_id"`
	AddressID     int64         `json:"address_id"`
	Status        OrderStatus   `json:"status"`
	EventDate     time.Time     `json:"event_date"`
	GuestCount    int           `json:"guest_count"`
	SpecialNotes  string        `json:"special_notes,omitempty"`
	MenuNotes     string        `json:"menu_notes,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         int64         `json:"total"`
	CreatedAt     time.Time     `json:"created_at"`
}

// OrderEvent is one entry of an order's append-only history.
type OrderEvent struct {
	ID        int64       `json:"id"`
	OrderID   uuid.UUID   `json:"order_id"`
	Status    OrderStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	Actor     string      `json:"actor"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderWithHistory struct {
	Order   Order        `json:"order"`
	Items   []OrderItem  `json:"items"`
	History []OrderEvent `json:"history"`
}

// Review is the one-time rating unlocked when an order completes.
type Review struct {
	OrderID   uuid.UUID `json:"order_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Ticket struct {
	ID           uuid.UUID    `json:"id"`
	CustomerID   int64        `json:"customer_id"`
	Subject      string       `json:"subject"`
	Status       TicketStatus `json:"status"`
	Satisfaction *int         `json:"satisfaction,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// TicketMessage is one entry of a ticket's append-only conversation.
type TicketMessage struct {
	ID        int64     `json:"id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Author    string    `json:"author"`
	FromStaff bool      `json:"from_staff"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketWithMessages struct {
	Ticket   Ticket          `json:"ticket"`
	Messages []TicketMessage `json:"messages"`
}

// Assignment is a unit of staff work scheduled against an order.
type Assignment struct {
	ID        uuid.UUID        `json:"id"`
	OrderID   uuid.UUID        `json:"order_id"`
	StaffID   int64            `json:"staff_id"`
	Task      string           `json:"task"`
	Status    AssignmentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

type AssignmentEvent struct {
	ID           int64            `json:"id"`
	AssignmentID uuid.UUID        `json:"assignment_id"`
	Status       AssignmentStatus `json:"status"`
	Actor        string           `json:"actor"`
	CreatedAt    time.Time        `json:"created_at"`
}
