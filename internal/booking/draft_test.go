package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/hoangtrn/fest-go/internal/domain"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func priceOf(id int64) (int64, bool) {
	prices := map[int64]int64{1: 100, 2: 250}
	p, ok := prices[id]
	return p, ok
}

func newTestDraft() *Draft {
	return NewDraft(7, []domain.Address{{ID: 4, CustomerID: 7, IsDefault: true}})
}

func TestSetItemQuantity_Idempotent(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(1, 3)
	d.SetItemQuantity(1, 3)

	if len(d.SelectedItems) != 1 || d.SelectedItems[1] != 3 {
		t.Fatalf("expected {1:3}, got %v", d.SelectedItems)
	}
}

func TestSetItemQuantity_UpsertReplaces(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(1, 3)
	d.SetItemQuantity(1, 5)

	if d.SelectedItems[1] != 5 {
		t.Fatalf("expected quantity 5, got %d", d.SelectedItems[1])
	}
}

func TestSetItemQuantity_ZeroRemoves(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(1, 5)
	d.SetItemQuantity(1, 0)

	if _, ok := d.SelectedItems[1]; ok {
		t.Fatalf("expected item 1 absent, got %v", d.SelectedItems)
	}

	d.SetItemQuantity(2, -1)
	if _, ok := d.SelectedItems[2]; ok {
		t.Fatal("negative quantity must not be stored")
	}
}

func TestTotal(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(1, 2)
	d.SetItemQuantity(2, 1)

	total, err := d.Total(priceOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 450 {
		t.Fatalf("expected total 450, got %d", total)
	}
}

func TestTotal_UnknownItem(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(99, 1)

	if _, err := d.Total(priceOf); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestTotal_TracksLivePrices(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(1, 1)

	price := int64(100)
	lookup := func(int64) (int64, bool) { return price, true }

	if total, _ := d.Total(lookup); total != 100 {
		t.Fatalf("expected 100, got %d", total)
	}
	price = 120
	if total, _ := d.Total(lookup); total != 120 {
		t.Fatalf("expected 120 after price change, got %d", total)
	}
}

func TestNext_GateOnSelection(t *testing.T) {
	d := newTestDraft()

	err := d.Next(now)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if d.Step != StepSelectingServices {
		t.Fatalf("gate failure must not advance, step = %v", d.Step)
	}

	d.SetItemQuantity(1, 1)
	if err := d.Next(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Step != StepEnteringDetails {
		t.Fatalf("expected step 2, got %v", d.Step)
	}
}

func TestNext_GateOnDetails(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(1, 1)
	if err := d.Next(now); err != nil {
		t.Fatal(err)
	}

	// no date, no guests
	if err := d.Next(now); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	d.EventDate = now.AddDate(0, 0, -2)
	d.GuestCount = 40
	if err := d.Next(now); !IsValidation(err) {
		t.Fatalf("past date must be rejected, got %v", err)
	}

	d.EventDate = now.AddDate(0, 1, 0)
	d.GuestCount = 0
	if err := d.Next(now); !IsValidation(err) {
		t.Fatalf("zero guests must be rejected, got %v", err)
	}

	d.GuestCount = 40
	if err := d.Next(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Step != StepConfirming {
		t.Fatalf("expected step 3, got %v", d.Step)
	}
}

func TestNext_PastConfirmingIsInvalid(t *testing.T) {
	d := draftAtConfirm(t)
	if err := d.Next(now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBack_PreservesData(t *testing.T) {
	d := draftAtConfirm(t)

	if err := d.Back(); err != nil {
		t.Fatal(err)
	}
	if err := d.Back(); err != nil {
		t.Fatal(err)
	}
	if err := d.Back(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition at first step, got %v", err)
	}

	if d.GuestCount != 40 || d.EventDate.IsZero() || len(d.SelectedItems) == 0 {
		t.Fatal("going back must not discard entered data")
	}
}

func TestValidate_RequiresPaymentMethod(t *testing.T) {
	d := draftAtConfirm(t)

	err := d.Validate(now)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	d.PaymentMethod = "gold_bars"
	if err := d.Validate(now); !IsValidation(err) {
		t.Fatalf("unknown payment method must be rejected, got %v", err)
	}

	d.PaymentMethod = domain.PaymentCash
	if err := d.Validate(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_WrongStep(t *testing.T) {
	d := newTestDraft()
	d.PaymentMethod = domain.PaymentCash
	if err := d.Validate(now); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNewDraft_DefaultAddressLowestID(t *testing.T) {
	addrs := []domain.Address{
		{ID: 9, IsDefault: true},
		{ID: 3, IsDefault: true},
		{ID: 1},
	}
	d := NewDraft(7, addrs)
	if d.AddressID != 3 {
		t.Fatalf("expected lowest default address 3, got %d", d.AddressID)
	}

	d = NewDraft(7, []domain.Address{{ID: 5}, {ID: 2}})
	if d.AddressID != 2 {
		t.Fatalf("expected fallback to lowest address 2, got %d", d.AddressID)
	}
}

func TestItems_DeterministicOrder(t *testing.T) {
	d := newTestDraft()
	d.SetItemQuantity(2, 1)
	d.SetItemQuantity(1, 2)

	items, err := d.Items(priceOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ItemID != 1 || items[1].ItemID != 2 {
		t.Fatalf("expected items ordered by ID, got %+v", items)
	}
	if items[0].UnitPrice != 100 || items[0].Quantity != 2 {
		t.Fatalf("unexpected first line: %+v", items[0])
	}
}

func draftAtConfirm(t *testing.T) *Draft {
	t.Helper()

	d := newTestDraft()
	d.SetItemQuantity(1, 2)
	if err := d.Next(now); err != nil {
		t.Fatal(err)
	}
	d.EventDate = now.AddDate(0, 1, 0)
	d.GuestCount = 40
	if err := d.Next(now); err != nil {
		t.Fatal(err)
	}
	return d
}
