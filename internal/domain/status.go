package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for any status move that is not a forward
// edge of the entity's transition table, including any mutation attempted on
// a terminal entity. Callers must check transitions before mutating state.
var ErrInvalidTransition = errors.New("invalid status transition")

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderInProgress, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown order status: %q", s)
	}
}

// Cancellation is only reachable before work starts.
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:    {OrderConfirmed: true, OrderCancelled: true},
	OrderConfirmed:  {OrderInProgress: true, OrderCancelled: true},
	OrderInProgress: {OrderCompleted: true},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return orderTransitions[s][to]
}

func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketPending    TicketStatus = "pending"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketOpen, TicketInProgress, TicketPending, TicketResolved, TicketClosed:
		return TicketStatus(s), nil
	default:
		return "", fmt.Errorf("unknown ticket status: %q", s)
	}
}

// The explicit table only moves forward. The one sanctioned backward move,
// a customer message sending a ticket back to pending, goes through the
// event rule table below instead.
var ticketTransitions = map[TicketStatus]map[TicketStatus]bool{
	TicketOpen:       {TicketInProgress: true},
	TicketInProgress: {TicketPending: true, TicketResolved: true},
	TicketPending:    {TicketResolved: true},
	TicketResolved:   {TicketClosed: true},
	TicketClosed:     {},
}

func (s TicketStatus) CanTransition(to TicketStatus) bool {
	return ticketTransitions[s][to]
}

func (s TicketStatus) Terminal() bool {
	return len(ticketTransitions[s]) == 0
}

// TicketEvent is a side-effect trigger that may force a ticket status change
// on its own, independently of an explicit status update.
type TicketEvent string

const (
	// EventCustomerMessage fires when the customer posts a new message.
	EventCustomerMessage TicketEvent = "customer_message"
	// EventSatisfaction fires when the customer submits the one-time
	// satisfaction rating of a resolved ticket.
	EventSatisfaction TicketEvent = "satisfaction_submitted"
)

// ticketEventRules is the declarative (event, current status) -> new status
// table. A customer message sends the ticket back to triage from any
// non-closed state; submitting satisfaction closes a resolved ticket.
// Absent pairs mean "no status change".
var ticketEventRules = map[TicketEvent]map[TicketStatus]TicketStatus{
	EventCustomerMessage: {
		TicketOpen:       TicketPending,
		TicketInProgress: TicketPending,
		TicketResolved:   TicketPending,
	},
	EventSatisfaction: {
		TicketResolved: TicketClosed,
	},
}

// ApplyTicketEvent returns the status a ticket moves to when the given event
// fires in the given state. The boolean reports whether the event changes the
// status at all.
func ApplyTicketEvent(ev TicketEvent, cur TicketStatus) (TicketStatus, bool) {
	next, ok := ticketEventRules[ev][cur]
	if !ok || next == cur {
		return cur, false
	}
	return next, true
}

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	switch AssignmentStatus(s) {
	case AssignmentPending, AssignmentInProgress, AssignmentCompleted:
		return AssignmentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown assignment status: %q", s)
	}
}

var assignmentTransitions = map[AssignmentStatus]map[AssignmentStatus]bool{
	AssignmentPending:    {AssignmentInProgress: true},
	AssignmentInProgress: {AssignmentCompleted: true},
	AssignmentCompleted:  {},
}

func (s AssignmentStatus) CanTransition(to AssignmentStatus) bool {
	return assignmentTransitions[s][to]
}

func (s AssignmentStatus) Terminal() bool {
	return len(assignmentTransitions[s]) == 0
}

// Role names used by the HTTP auth middleware.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)
