package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hoangtrn/fest-go/internal/booking"
	"github.com/hoangtrn/fest-go/internal/catalog"
	"github.com/hoangtrn/fest-go/internal/domain"
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
	"github.com/hoangtrn/fest-go/internal/service"
	"github.com/hoangtrn/fest-go/internal/service/admin"
	"github.com/hoangtrn/fest-go/internal/service/assignments"
	"github.com/hoangtrn/fest-go/internal/service/bookings"
	"github.com/hoangtrn/fest-go/internal/service/orders"
	"github.com/hoangtrn/fest-go/internal/service/query"
	"github.com/hoangtrn/fest-go/internal/service/tickets"
)

type RouterConfig struct {
	JWTSecret string
}

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	cfg RouterConfig,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog browsing
	r.GET("/catalog", handleBrowseCatalog(svcs))
	r.GET("/catalog/:id", handleGetCatalogItem(svcs))

	// Customer reference data
	r.GET("/addresses", handleListAddresses(svcs))

	// Booking wizard
	r.POST("/drafts", handleCreateDraft(svcs))
	r.GET("/drafts/:id", handleGetDraft(svcs))
	r.POST("/drafts/:id/items", handleSetDraftItem(svcs))
	r.PATCH("/drafts/:id/details", handleUpdateDraftDetails(svcs))
	r.POST("/drafts/:id/next", handleDraftNext(svcs))
	r.POST("/drafts/:id/back", handleDraftBack(svcs))
	r.POST("/drafts/:id/submit", handleSubmitDraft(svcs, idem))

	// Orders
	r.GET("/orders", handleListOrders(svcs))
	r.GET("/orders/:id", handleGetOrder(svcs))
	r.POST("/orders/:id/review", handleSubmitReview(svcs))

	// Tickets
	r.POST("/tickets", handleCreateTicket(svcs))
	r.GET("/tickets", handleListTickets(svcs))
	r.GET("/tickets/:id", handleGetTicket(svcs))
	r.POST("/tickets/:id/messages", handleAppendMessage(svcs))
	r.POST("/tickets/:id/satisfaction", handleSubmitSatisfaction(svcs))

	// Staff-side actions
	staff := r.Group("/", RequireRoles(cfg.JWTSecret,
		string(domain.RoleAdmin), string(domain.RoleManager), string(domain.RoleStaff)))
	{
		staff.POST("/orders/:id/status", handleUpdateOrderStatus(svcs))
		staff.POST("/tickets/:id/status", handleUpdateTicketStatus(svcs))
		staff.GET("/assignments", handleListAssignments(svcs))
		staff.GET("/assignments/:id", handleGetAssignment(svcs))
		staff.POST("/assignments/:id/status", handleUpdateAssignmentStatus(svcs))
	}

	// Admin API
	adm := r.Group("/admin", RequireRoles(cfg.JWTSecret,
		string(domain.RoleAdmin), string(domain.RoleManager)))
	{
		adm.POST("/catalog", handleCreateCatalogItem(svcs))
		adm.POST("/catalog/seed", handleSeedCatalog(svcs))
		adm.POST("/assignments", handleCreateAssignment(svcs))
	}

	return r
}

// --- Catalog ---

// @Summary  Browse catalog
// @Param    search    query  string  false  "free-text search"
// @Param    category  query  string  false  "category or 'all'"
// @Param    price_min query  int     false  "inclusive lower bound"
// @Param    price_max query  int     false  "inclusive upper bound"
// @Param    location  query  string  false  "exact location match"
// @Param    sort      query  string  false  "name|price-low|price-high|rating|popular|newest"
// @Success  200  {array}  domain.CatalogItem
// @Router   /catalog [get]
func handleBrowseCatalog(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := catalog.NewFilter()
		f.Search = c.Query("search")
		if v := c.Query("category"); v != "" {
			f.Category = v
		}
		if v := c.Query("price_min"); v != "" {
			f.PriceMin = parseInt64Default(v, 0)
		}
		if v := c.Query("price_max"); v != "" {
			f.PriceMax = parseInt64Default(v, f.PriceMax)
		}
		f.Location = c.Query("location")
		if v := c.Query("sort"); v != "" {
			key, ok := catalog.ParseSortKey(v)
			if !ok {
				badRequest(c, "invalid sort key")
				return
			}
			f.Sort = key
		}

		items, err := svcs.Query.BrowseCatalog(c.Request.Context(), f)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, items, "public, max-age=60", true)
	}
}

// @Summary  Get catalog item
// @Param    id  path  int  true  "Item ID"
// @Success  200  {object}  domain.CatalogItem
// @Failure  404  {object}  ErrorResponse
// @Router   /catalog/{id} [get]
func handleGetCatalogItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		it, err := svcs.Query.GetItem(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, it, "public, max-age=60", true)
	}
}

// @Summary  List customer addresses
// @Param    customer_id  query  int  true  "Customer ID"
// @Success  200  {array}  domain.Address
// @Router   /addresses [get]
func handleListAddresses(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := parseInt64Default(c.Query("customer_id"), 0)
		if customerID == 0 {
			badRequest(c, "customer_id is required")
			return
		}
		addrs, err := svcs.Query.Addresses(c.Request.Context(), customerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, addrs)
	}
}

// --- Booking wizard ---

// @Summary  Create booking draft
// @Param    req body CreateDraftRequest true "payload"
// @Success  201  {object}  DraftResponse
// @Router   /drafts [post]
func handleCreateDraft(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateDraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		d, err := svcs.Bookings.CreateDraft(c.Request.Context(), req.CustomerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, draftResponse(d, 0))
	}
}

// @Summary  Get draft with derived total
// @Param    id  path  string  true  "Draft ID (uuid)"
// @Success  200  {object}  DraftResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /drafts/{id} [get]
func handleGetDraft(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		view, err := svcs.Bookings.GetDraft(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, draftResponse(view.Draft, view.Total))
	}
}

// @Summary  Set draft item quantity (idempotent upsert; zero removes)
// @Param    id  path  string  true  "Draft ID (uuid)"
// @Param    req body SetItemRequest true "payload"
// @Success  204
// @Router   /drafts/{id}/items [post]
func handleSetDraftItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req SetItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Bookings.SetItemQuantity(c.Request.Context(), id, req.ItemID, req.Quantity); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Update draft details
// @Param    id  path  string  true  "Draft ID (uuid)"
// @Param    req body UpdateDetailsRequest true "payload"
// @Success  204
// @Router   /drafts/{id}/details [patch]
func handleUpdateDraftDetails(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		det := bookings.Details{
			GuestCount:   req.GuestCount,
			SpecialNotes: req.SpecialNotes,
			MenuNotes:    req.MenuNotes,
			AddressID:    req.AddressID,
		}
		if req.EventDate != nil {
			t, err := parseDateOnly(*req.EventDate)
			if err != nil {
				badRequest(c, "invalid event_date")
				return
			}
			det.EventDate = &t
		}
		if req.PaymentMethod != nil {
			pm := domain.PaymentMethod(*req.PaymentMethod)
			det.PaymentMethod = &pm
		}

		if err := svcs.Bookings.UpdateDetails(c.Request.Context(), id, det); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Advance the wizard one step
// @Param    id  path  string  true  "Draft ID (uuid)"
// @Success  200  {object}  DraftResponse
// @Failure  422  {object}  ErrorResponse "gate failed"
// @Router   /drafts/{id}/next [post]
func handleDraftNext(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		d, err := svcs.Bookings.Next(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, draftResponse(d, 0))
	}
}

// @Summary  Move the wizard one step back
// @Param    id  path  string  true  "Draft ID (uuid)"
// @Success  200  {object}  DraftResponse
// @Router   /drafts/{id}/back [post]
func handleDraftBack(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		d, err := svcs.Bookings.Back(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, draftResponse(d, 0))
	}
}

// @Summary  Submit draft (idempotent)
// @Param    id  path  string  true  "Draft ID (uuid)"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} SubmitResponse
// @Failure  422 {object} ErrorResponse "validation failed"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /drafts/{id}/submit [post]
func handleSubmitDraft(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemSubmit(id.String(), idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		order, err := svcs.Bookings.Submit(c.Request.Context(), id, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if errors.Is(err, bookings.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
				return
			}
			respondErr(c, err)
			return
		}

		resp := SubmitResponse{OrderID: order.ID.String(), Total: order.Total}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// --- Orders ---

// @Summary  List customer orders
// @Param    customer_id  query  int  true  "Customer ID"
// @Success  200  {array}  domain.Order
// @Router   /orders [get]
func handleListOrders(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := parseInt64Default(c.Query("customer_id"), 0)
		if customerID == 0 {
			badRequest(c, "customer_id is required")
			return
		}
		limit := parseIntDefault(c.Query("limit"), 50)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Orders.ListByCustomer(c.Request.Context(), customerID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get order with items and history
// @Param    id  path  string  true  "Order ID (uuid)"
// @Success  200  {object}  domain.OrderWithHistory
// @Failure  404  {object}  ErrorResponse
// @Router   /orders/{id} [get]
func handleGetOrder(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		o, err := svcs.Orders.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// @Summary  Update order status
// @Param    id  path  string  true  "Order ID (uuid)"
// @Param    req body UpdateStatusRequest true "payload"
// @Success  204
// @Failure  409  {object}  ErrorResponse "invalid transition"
// @Router   /orders/{id}/status [post]
func handleUpdateOrderStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		to, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		actor := req.Actor
		if actor == "" {
			actor = c.GetString("subject")
		}
		if err := svcs.Orders.UpdateStatus(c.Request.Context(), id, to, actor, req.Note); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Review a completed order (one-time)
// @Param    id  path  string  true  "Order ID (uuid)"
// @Param    req body RatingRequest true "payload"
// @Success  204
// @Failure  409  {object}  ErrorResponse "not completed / already reviewed"
// @Router   /orders/{id}/review [post]
func handleSubmitReview(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req RatingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Orders.SubmitReview(c.Request.Context(), id, req.Rating, req.Comment); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Tickets ---

// @Summary  Open support ticket
// @Param    req body CreateTicketRequest true "payload"
// @Success  201  {object}  domain.Ticket
// @Router   /tickets [post]
func handleCreateTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		t, err := svcs.Tickets.Create(c.Request.Context(), req.CustomerID, req.Subject)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// @Summary  List customer tickets
// @Param    customer_id  query  int  true  "Customer ID"
// @Success  200  {array}  domain.Ticket
// @Router   /tickets [get]
func handleListTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := parseInt64Default(c.Query("customer_id"), 0)
		if customerID == 0 {
			badRequest(c, "customer_id is required")
			return
		}
		limit := parseIntDefault(c.Query("limit"), 50)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Tickets.ListByCustomer(c.Request.Context(), customerID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get ticket with conversation
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Success  200  {object}  domain.TicketWithMessages
// @Failure  404  {object}  ErrorResponse
// @Router   /tickets/{id} [get]
func handleGetTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Tickets.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Append message to ticket
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Param    req body AppendMessageRequest true "payload"
// @Success  204
// @Router   /tickets/{id}/messages [post]
func handleAppendMessage(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req AppendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Tickets.AppendMessage(c.Request.Context(), id, req.Author, req.Body, req.FromStaff); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Update ticket status
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Param    req body UpdateStatusRequest true "payload"
// @Success  204
// @Failure  409  {object}  ErrorResponse "invalid transition"
// @Router   /tickets/{id}/status [post]
func handleUpdateTicketStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		to, err := domain.ParseTicketStatus(req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Tickets.UpdateStatus(c.Request.Context(), id, to); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Submit one-time satisfaction rating (closes ticket)
// @Param    id  path  string  true  "Ticket ID (uuid)"
// @Param    req body RatingRequest true "payload"
// @Success  204
// @Failure  409  {object}  ErrorResponse "already rated / not resolved"
// @Router   /tickets/{id}/satisfaction [post]
func handleSubmitSatisfaction(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req RatingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Tickets.SubmitSatisfaction(c.Request.Context(), id, req.Rating); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Assignments ---

// @Summary  List staff assignments
// @Param    staff_id  query  int  true  "Staff ID"
// @Success  200  {array}  domain.Assignment
// @Router   /assignments [get]
func handleListAssignments(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := parseInt64Default(c.Query("staff_id"), 0)
		if staffID == 0 {
			badRequest(c, "staff_id is required")
			return
		}
		limit := parseIntDefault(c.Query("limit"), 50)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Assignments.ListByStaff(c.Request.Context(), staffID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get assignment
// @Param    id  path  string  true  "Assignment ID (uuid)"
// @Success  200  {object}  domain.Assignment
// @Failure  404  {object}  ErrorResponse
// @Router   /assignments/{id} [get]
func handleGetAssignment(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		a, err := svcs.Assignments.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// @Summary  Update assignment status
// @Param    id  path  string  true  "Assignment ID (uuid)"
// @Param    req body UpdateStatusRequest true "payload"
// @Success  204
// @Failure  409  {object}  ErrorResponse "invalid transition"
// @Router   /assignments/{id}/status [post]
func handleUpdateAssignmentStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		to, err := domain.ParseAssignmentStatus(req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		actor := req.Actor
		if actor == "" {
			actor = c.GetString("subject")
		}
		if err := svcs.Assignments.UpdateStatus(c.Request.Context(), id, to, actor); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create staff assignment
// @Param    req body CreateAssignmentRequest true "payload"
// @Success  201  {object}  domain.Assignment
// @Router   /admin/assignments [post]
func handleCreateAssignment(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAssignmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			badRequest(c, "invalid order_id")
			return
		}
		a, err := svcs.Assignments.Create(c.Request.Context(), orderID, req.StaffID, req.Task)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

// --- Admin catalog ---

// @Summary  Create catalog item
// @Param    req body CreateCatalogItemRequest true "payload"
// @Success  201  {object}  CreatedResponse
// @Failure  409  {object}  ErrorResponse
// @Router   /admin/catalog [post]
func handleCreateCatalogItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCatalogItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateItem(c.Request.Context(), domain.CatalogItem{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Rating:      req.Rating,
			ReviewCount: req.ReviewCount,
			Features:    req.Features,
			Location:    req.Location,
			Capacity:    req.Capacity,
			Duration:    req.Duration,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatedResponse{ID: strconv.FormatInt(id, 10)})
	}
}

// @Summary  Seed the default catalog
// @Success  201  {object}  map[string]int
// @Router   /admin/catalog/seed [post]
func handleSeedCatalog(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := catalog.SeedItems()
		if err := svcs.Admin.SeedCatalog(c.Request.Context(), items); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"seeded": len(items)})
	}
}

// --- Helpers ---

func draftResponse(d *booking.Draft, total int64) DraftResponse {
	resp := DraftResponse{
		DraftID:       d.ID.String(),
		Step:          int(d.Step),
		StepName:      d.Step.String(),
		SelectedItems: d.SelectedItems,
		GuestCount:    d.GuestCount,
		SpecialNotes:  d.SpecialNotes,
		MenuNotes:     d.MenuNotes,
		AddressID:     d.AddressID,
		PaymentMethod: string(d.PaymentMethod),
		Total:         total,
	}
	if !d.EventDate.IsZero() {
		resp.EventDate = d.EventDate.Format(time.RFC3339)
	}
	return resp
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseInt64Default(s string, def int64) int64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "invalid transition"})
	// bookings service
	case errors.Is(err, bookings.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "draft not found"})
	case errors.Is(err, bookings.ErrItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "catalog item not found"})
	case errors.Is(err, bookings.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "address not found"})
	// query service
	case errors.Is(err, query.ErrItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "catalog item not found"})
	// orders service
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	case errors.Is(err, orders.ErrNotCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "order is not completed"})
	case errors.Is(err, orders.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "order already reviewed"})
	// tickets service
	case errors.Is(err, tickets.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
	case errors.Is(err, tickets.ErrNotResolved):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "ticket is not resolved"})
	case errors.Is(err, tickets.ErrAlreadyRated):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "satisfaction already submitted"})
	// assignments service
	case errors.Is(err, assignments.ErrAssignmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "assignment not found"})
	case errors.Is(err, assignments.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	// admin service
	case errors.Is(err, admin.ErrItemConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "catalog item already exists"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
