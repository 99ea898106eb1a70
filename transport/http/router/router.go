package router

import (
	"nightlife/internal/handlers/alcoholbalance"
	"nightlife/internal/handlers/auth"
	"nightlife/internal/handlers/booking"
	"nightlife/internal/handlers/cart"
	"nightlife/internal/handlers/favourite"
	"nightlife/internal/handlers/ledger"
	"nightlife/internal/handlers/merchant"
	"nightlife/internal/handlers/profile"
	"nightlife/internal/handlers/review"
	"nightlife/internal/handlers/venue"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "/v1"

// mountable is any domain handler that registers its own sub-routes.
type mountable interface {
	Router(r chi.Router)
}

type DomainHandlers struct {
	Auth           auth.Handler
	Profile        profile.Handler
	Venue          venue.Handler
	Ledger         ledger.Handler
	Cart           cart.Handler
	Booking        booking.Handler
	Merchant       merchant.Handler
	AlcoholBalance alcoholbalance.Handler
	Favourite      favourite.Handler
	Review         review.Handler
}

func (d *DomainHandlers) all() []mountable {
	return []mountable{
		&d.Auth,
		&d.Profile,
		&d.Venue,
		&d.Ledger,
		&d.Cart,
		&d.Booking,
		&d.Merchant,
		&d.AlcoholBalance,
		&d.Favourite,
		&d.Review,
	}
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts every domain under /v1. Each handler owns a distinct
// prefix; chi panics on a duplicate mount.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(apiVersion, func(v1 chi.Router) {
		for _, handler := range r.DomainHandlers.all() {
			handler.Router(v1)
		}
	})
}
