// Package booking implements the three-step booking wizard: service
// selection, event details, and confirmation. A draft lives in memory for
// the length of one customer session and is discarded once submitted.
package booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hoangtrn/fest-go/internal/domain"
)

type Step int

const (
	StepSelectingServices Step = 1
	StepEnteringDetails   Step = 2
	StepConfirming        Step = 3
)

func (s Step) String() string {
	switch s {
	case StepSelectingServices:
		return "selecting_services"
	case StepEnteringDetails:
		return "entering_details"
	case StepConfirming:
		return "confirming"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Draft is the mutable booking aggregate built across the wizard steps.
// Moving backward never discards data already entered.
type Draft struct {
	ID         uuid.UUID
	CustomerID int64
	Step       Step

	// SelectedItems maps catalog item ID to a positive quantity. Entries
	// with quantity <= 0 are removed, never stored.
	SelectedItems map[int64]int

	EventDate     time.Time
	GuestCount    int
	SpecialNotes  string
	MenuNotes     string
	AddressID     int64
	PaymentMethod domain.PaymentMethod

	CreatedAt time.Time
}

// NewDraft creates an empty draft at the first wizard step. The selected
// address defaults to the customer's default address: the lowest-ID address
// flagged default, falling back to the lowest-ID address overall.
func NewDraft(customerID int64, addresses []domain.Address) *Draft {
	d := &Draft{
		ID:            uuid.New(),
		CustomerID:    customerID,
		Step:          StepSelectingServices,
		SelectedItems: make(map[int64]int),
		CreatedAt:     time.Now(),
	}
	d.AddressID = pickDefaultAddress(addresses)
	return d
}

func pickDefaultAddress(addresses []domain.Address) int64 {
	var def, any int64
	for _, a := range addresses {
		if any == 0 || a.ID < any {
			any = a.ID
		}
		if a.IsDefault && (def == 0 || a.ID < def) {
			def = a.ID
		}
	}
	if def != 0 {
		return def
	}
	return any
}

// Clone returns an independent copy of the draft, including the selection
// map. Reads work on clones so they never touch a draft another goroutine is
// mutating under the manager's lock.
func (d *Draft) Clone() *Draft {
	cp := *d
	cp.SelectedItems = make(map[int64]int, len(d.SelectedItems))
	for id, qty := range d.SelectedItems {
		cp.SelectedItems[id] = qty
	}
	return &cp
}

// SetItemQuantity upserts the quantity for a catalog item. A quantity of
// zero or less removes the entry. The operation is idempotent.
func (d *Draft) SetItemQuantity(itemID int64, qty int) {
	if qty <= 0 {
		delete(d.SelectedItems, itemID)
		return
	}
	d.SelectedItems[itemID] = qty
}

// Total recomputes the draft total on every call from the current selection
// and the live price lookup. Nothing is cached: a catalog price change is
// reflected in any in-progress draft immediately.
func (d *Draft) Total(priceOf func(itemID int64) (int64, bool)) (int64, error) {
	var total int64
	for id, qty := range d.SelectedItems {
		price, ok := priceOf(id)
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrItemNotFound, id)
		}
		total += price * int64(qty)
	}
	return total, nil
}

// validateStep checks the gate guarding the exit of the given step.
func (d *Draft) validateStep(step Step, now time.Time) error {
	switch step {
	case StepSelectingServices:
		if len(d.SelectedItems) == 0 {
			return &ValidationError{Field: "selected_items", Reason: "select at least one service"}
		}
	case StepEnteringDetails:
		if d.EventDate.IsZero() {
			return &ValidationError{Field: "event_date", Reason: "event date is required"}
		}
		if d.EventDate.Before(now.Truncate(24 * time.Hour)) {
			return &ValidationError{Field: "event_date", Reason: "event date must not be in the past"}
		}
		if d.GuestCount <= 0 {
			return &ValidationError{Field: "guest_count", Reason: "guest count must be positive"}
		}
	}
	return nil
}

// Next advances the wizard one step after the current step's gate passes.
// Advancing past the confirmation step is an invalid transition; submission
// is a separate terminal action.
func (d *Draft) Next(now time.Time) error {
	if d.Step >= StepConfirming {
		return fmt.Errorf("%w: already at %s", domain.ErrInvalidTransition, d.Step)
	}
	if err := d.validateStep(d.Step, now); err != nil {
		return err
	}
	d.Step++
	return nil
}

// Back moves the wizard one step backward, keeping all entered data.
func (d *Draft) Back() error {
	if d.Step <= StepSelectingServices {
		return fmt.Errorf("%w: already at %s", domain.ErrInvalidTransition, d.Step)
	}
	d.Step--
	return nil
}

// Validate checks every gate up to and including final submission. It is the
// single check run before the draft is finalized into an order.
func (d *Draft) Validate(now time.Time) error {
	if d.Step != StepConfirming {
		return fmt.Errorf("%w: submit from %s", domain.ErrInvalidTransition, d.Step)
	}
	if err := d.validateStep(StepSelectingServices, now); err != nil {
		return err
	}
	if err := d.validateStep(StepEnteringDetails, now); err != nil {
		return err
	}
	if d.PaymentMethod == "" {
		return &ValidationError{Field: "payment_method", Reason: "payment method is required"}
	}
	if !d.PaymentMethod.Valid() {
		return &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if d.AddressID == 0 {
		return &ValidationError{Field: "address_id", Reason: "address is required"}
	}
	return nil
}

// Items returns the selection as order lines priced by the given lookup,
// ordered by item ID so output is deterministic.
func (d *Draft) Items(priceOf func(itemID int64) (int64, bool)) ([]domain.OrderItem, error) {
	out := make([]domain.OrderItem, 0, len(d.SelectedItems))
	for id, qty := range d.SelectedItems {
		price, ok := priceOf(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
		}
		out = append(out, domain.OrderItem{ItemID: id, Quantity: qty, UnitPrice: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}
