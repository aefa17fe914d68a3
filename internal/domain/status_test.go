package domain

import "testing"

func TestOrderStatus_ForwardPath(t *testing.T) {
	path := []OrderStatus{OrderPending, OrderConfirmed, OrderInProgress, OrderCompleted}
	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransition(path[i+1]) {
			t.Errorf("%s -> %s should be allowed", path[i], path[i+1])
		}
	}
	// No backward edge anywhere along the path.
	for i := range path {
		for j := 0; j <= i; j++ {
			if path[i].CanTransition(path[j]) {
				t.Errorf("%s -> %s must be rejected", path[i], path[j])
			}
		}
	}
}

func TestOrderStatus_CancelOnlyBeforeWork(t *testing.T) {
	if !OrderPending.CanTransition(OrderCancelled) {
		t.Error("pending -> cancelled should be allowed")
	}
	if !OrderConfirmed.CanTransition(OrderCancelled) {
		t.Error("confirmed -> cancelled should be allowed")
	}
	if OrderInProgress.CanTransition(OrderCancelled) {
		t.Error("in_progress -> cancelled must be rejected")
	}
	if OrderCompleted.CanTransition(OrderCancelled) {
		t.Error("completed -> cancelled must be rejected")
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderCompleted, OrderCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderInProgress} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestTicketStatus_ForwardPath(t *testing.T) {
	path := []TicketStatus{TicketOpen, TicketInProgress, TicketPending, TicketResolved, TicketClosed}
	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransition(path[i+1]) {
			t.Errorf("%s -> %s should be allowed", path[i], path[i+1])
		}
	}
	// No backward edge anywhere, so the explicit machine has no cycles;
	// only the customer-message event may move a ticket back to pending.
	for i := range path {
		for j := 0; j <= i; j++ {
			if path[i].CanTransition(path[j]) {
				t.Errorf("%s -> %s must be rejected", path[i], path[j])
			}
		}
	}
}

func TestTicketStatus_ClosedIsFinal(t *testing.T) {
	for _, to := range []TicketStatus{TicketOpen, TicketInProgress, TicketPending, TicketResolved} {
		if TicketClosed.CanTransition(to) {
			t.Errorf("closed -> %s must be rejected", to)
		}
	}
	if !TicketClosed.Terminal() {
		t.Error("closed should be terminal")
	}
}

func TestApplyTicketEvent_CustomerMessageReopensTriage(t *testing.T) {
	tests := []struct {
		from    TicketStatus
		want    TicketStatus
		changed bool
	}{
		{TicketOpen, TicketPending, true},
		{TicketInProgress, TicketPending, true},
		{TicketResolved, TicketPending, true},
		{TicketPending, TicketPending, false},
		{TicketClosed, TicketClosed, false}, // closed tickets stay closed
	}
	for _, tt := range tests {
		got, changed := ApplyTicketEvent(EventCustomerMessage, tt.from)
		if got != tt.want || changed != tt.changed {
			t.Errorf("message on %s: got (%s, %v), want (%s, %v)",
				tt.from, got, changed, tt.want, tt.changed)
		}
	}
}

func TestApplyTicketEvent_SatisfactionClosesResolved(t *testing.T) {
	got, changed := ApplyTicketEvent(EventSatisfaction, TicketResolved)
	if got != TicketClosed || !changed {
		t.Fatalf("expected resolved -> closed, got (%s, %v)", got, changed)
	}

	for _, from := range []TicketStatus{TicketOpen, TicketInProgress, TicketPending, TicketClosed} {
		if got, changed := ApplyTicketEvent(EventSatisfaction, from); changed {
			t.Errorf("satisfaction on %s must not change status, got %s", from, got)
		}
	}
}

func TestAssignmentStatus_LinearPath(t *testing.T) {
	if !AssignmentPending.CanTransition(AssignmentInProgress) ||
		!AssignmentInProgress.CanTransition(AssignmentCompleted) {
		t.Fatal("forward path should be allowed")
	}
	if AssignmentPending.CanTransition(AssignmentCompleted) {
		t.Fatal("skipping in_progress must be rejected")
	}
	if AssignmentCompleted.CanTransition(AssignmentInProgress) {
		t.Fatal("completed is terminal")
	}
}

func TestParseStatuses(t *testing.T) {
	if _, err := ParseOrderStatus("confirmed"); err != nil {
		t.Errorf("confirmed should parse: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Error("shipped should not parse")
	}
	if _, err := ParseTicketStatus("resolved"); err != nil {
		t.Errorf("resolved should parse: %v", err)
	}
	if _, err := ParseAssignmentStatus("in_progress"); err != nil {
		t.Errorf("in_progress should parse: %v", err)
	}
	if _, err := ParseAssignmentStatus("paused"); err == nil {
		t.Error("paused should not parse")
	}
}
