package tickets

import (
	"errors"
	"testing"

	"github.com/hoangtrn/fest-go/internal/domain"
)

func TestSatisfactionGate(t *testing.T) {
	tests := []struct {
		status domain.TicketStatus
		want   error
	}{
		{domain.TicketOpen, ErrNotResolved},
		{domain.TicketInProgress, ErrNotResolved},
		{domain.TicketPending, ErrNotResolved},
		{domain.TicketResolved, nil},
		{domain.TicketClosed, domain.ErrInvalidTransition},
	}
	for _, tt := range tests {
		if err := satisfactionGate(tt.status); !errors.Is(err, tt.want) {
			t.Errorf("status %s: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

// Rating a ticket closes it, and the gate rejects the closed ticket, so a
// second submission can never pass regardless of interleaving.
func TestSatisfactionGate_RejectsAfterClose(t *testing.T) {
	cur := domain.TicketResolved
	if err := satisfactionGate(cur); err != nil {
		t.Fatalf("first submission rejected: %v", err)
	}

	next, changed := domain.ApplyTicketEvent(domain.EventSatisfaction, cur)
	if !changed || next != domain.TicketClosed {
		t.Fatalf("expected resolved -> closed, got (%s, %v)", next, changed)
	}

	if err := satisfactionGate(next); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second submission: expected ErrInvalidTransition, got %v", err)
	}
}
