package booking

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/hoangtrn/fest-go/internal/domain"
)

func TestManager_PutGetDelete(t *testing.T) {
	m := NewManager()
	d := NewDraft(1, nil)
	m.Put(d)

	got, err := m.Get(d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != d.ID {
		t.Fatalf("expected draft %s, got %s", d.ID, got.ID)
	}

	m.Delete(d.ID)
	if _, err := m.Get(d.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestManager_UpdateUnknownDraft(t *testing.T) {
	m := NewManager()
	err := m.Update(uuid.New(), func(d *Draft) error { return nil })
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestManager_UpdateMutates(t *testing.T) {
	m := NewManager()
	d := NewDraft(1, nil)
	m.Put(d)

	err := m.Update(d.ID, func(d *Draft) error {
		d.PaymentMethod = domain.PaymentCard
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := m.Get(d.ID)
	if got.PaymentMethod != domain.PaymentCard {
		t.Fatalf("expected card, got %s", got.PaymentMethod)
	}
}

func TestManager_GetReturnsIndependentCopy(t *testing.T) {
	m := NewManager()
	d := NewDraft(1, nil)
	d.SetItemQuantity(7, 2)
	m.Put(d)

	got, err := m.Get(d.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.SelectedItems[7] = 99
	got.GuestCount = 50

	again, _ := m.Get(d.ID)
	if again.SelectedItems[7] != 2 {
		t.Fatalf("stored selection mutated through a copy: %v", again.SelectedItems)
	}
	if again.GuestCount != 0 {
		t.Fatalf("stored guest count mutated through a copy: %d", again.GuestCount)
	}
}

func TestManager_ConcurrentReadWrite(t *testing.T) {
	m := NewManager()
	d := NewDraft(1, nil)
	m.Put(d)

	priceOf := func(int64) (int64, bool) { return 100, true }

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = m.Update(d.ID, func(d *Draft) error {
				d.SetItemQuantity(int64(i%10), i)
				return nil
			})
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			got, err := m.Get(d.ID)
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			if _, err := got.Total(priceOf); err != nil {
				t.Errorf("total: %v", err)
				return
			}
		}
	}()

	wg.Wait()
}
