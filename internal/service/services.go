package service

import (
	"github.com/hoangtrn/fest-go/internal/notify"
	redisx "github.com/hoangtrn/fest-go/internal/redis"
	postgresrepo "github.com/hoangtrn/fest-go/internal/repository/postgres"
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
	"github.com/hoangtrn/fest-go/internal/service/admin"
	"github.com/hoangtrn/fest-go/internal/service/assignments"
	"github.com/hoangtrn/fest-go/internal/service/bookings"
	"github.com/hoangtrn/fest-go/internal/service/orders"
	"github.com/hoangtrn/fest-go/internal/service/query"
	"github.com/hoangtrn/fest-go/internal/service/tickets"
)

type Services struct {
	Bookings    *bookings.Service
	Orders      *orders.Service
	Tickets     *tickets.Service
	Assignments *assignments.Service
	Query       *query.Service
	Admin       *admin.Service
}

type Config struct {
	Bookings bookings.Config
	Query    query.Config
}

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.EntityPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	notifier notify.Notifier,
	cfg Config,
) *Services {
	queries := query.New(store, cache, cfg.Query)

	return &Services{
		Bookings:    bookings.New(store, cache, pubsub, limiter, notifier, queries, cfg.Bookings),
		Orders:      orders.New(store, cache, pubsub, notifier),
		Tickets:     tickets.New(store, cache, pubsub, notifier),
		Assignments: assignments.New(store, pubsub, notifier),
		Query:       queries,
		Admin:       admin.New(store, cache, pubsub),
	}
}
