package httpgin

import "time"

type CreateDraftRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
}

type SetItemRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

type UpdateDetailsRequest struct {
	EventDate     *string `json:"event_date,omitempty"`
	GuestCount    *int    `json:"guest_count,omitempty"`
	SpecialNotes  *string `json:"special_notes,omitempty"`
	MenuNotes     *string `json:"menu_notes,omitempty"`
	AddressID     *int64  `json:"address_id,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

type DraftResponse struct {
	DraftID       string        `json:"draft_id"`
	Step          int           `json:"step"`
	StepName      string        `json:"step_name"`
	SelectedItems map[int64]int `json:"selected_items"`
	EventDate     string        `json:"event_date,omitempty"`
	GuestCount    int           `json:"guest_count"`
	SpecialNotes  string        `json:"special_notes,omitempty"`
	MenuNotes     string        `json:"menu_notes,omitempty"`
	AddressID     int64         `json:"address_id"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Total         int64         `json:"total"`
}

type SubmitResponse struct {
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Actor  string `json:"actor"`
	Note   string `json:"note"`
}

type CreateTicketRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
}

type AppendMessageRequest struct {
	Author    string `json:"author" binding:"required"`
	Body      string `json:"body" binding:"required"`
	FromStaff bool   `json:"from_staff"`
}

type RatingRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type CreateAssignmentRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
	StaffID int64  `json:"staff_id" binding:"required"`
	Task    string `json:"task" binding:"required"`
}

type CreateCatalogItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"gte=0"`
	Category    string   `json:"category" binding:"required"`
	Rating      float64  `json:"rating" binding:"gte=0,lte=5"`
	ReviewCount int      `json:"review_count" binding:"gte=0"`
	Features    []string `json:"features"`
	Location    string   `json:"location"`
	Capacity    string   `json:"capacity"`
	Duration    string   `json:"duration"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func parseDateOnly(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
