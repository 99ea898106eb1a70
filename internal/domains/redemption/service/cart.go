package service

//go:generate go run go.uber.org/mock/mockgen -source=./cart.go -destination=../mocks/cart_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"nightlife/config"
	"nightlife/infras/otel"
	catalogService "nightlife/internal/domains/catalog/service"
	ledgerService "nightlife/internal/domains/ledger/service"
	"nightlife/internal/domains/redemption/cart"
	"nightlife/internal/domains/redemption/model/dto"
	"nightlife/shared"
	"nightlife/shared/cache"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
	"nightlife/shared/identity"

	"github.com/rs/zerolog/log"
)

const (
	cacheCart          = "cart"
	defaultCartTTLSecs = 3600
)

var ErrCartNotOpen = failure.NotFound("no open cart for this venue")

// Cart keeps one redemption cart per user and venue in Redis. The balance is read once,
// when the cart is opened, and every add is checked against that figure.
type Cart interface {
	Open(ctx context.Context, venueID string) (dto.CartResponse, error)
	Get(ctx context.Context, venueID string) (dto.CartResponse, error)
	AddItem(ctx context.Context, venueID, itemID string) (dto.CartResponse, error)
	RemoveItem(ctx context.Context, venueID, itemID string) (dto.CartResponse, error)
	Clear(ctx context.Context, venueID string) error
	Lines(ctx context.Context, venueID string) ([]cart.Line, error)
}

type cartImpl struct {
	catalog catalogService.Catalog
	ledger  ledgerService.Ledger
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func NewCart(catalog catalogService.Catalog, ledger ledgerService.Ledger, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Cart {
	return &cartImpl{
		catalog: catalog,
		ledger:  ledger,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *cartImpl) Open(ctx context.Context, venueID string) (res dto.CartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cart.Open")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	balance, err := s.ledger.Balance(ctx, caller.UserID)
	if err != nil {
		return res, err
	}

	priceList, err := s.catalog.PriceList(ctx, venueID)
	if err != nil {
		return res, err
	}

	items := make(map[string]cart.Item, len(priceList.Items))
	for _, item := range priceList.Items {
		items[item.ID] = cart.Item{ID: item.ID, Name: item.Name, UnitPrice: item.Amount}
	}

	c := cart.New(balance, items)

	if err = s.save(ctx, caller.UserID, venueID, c); err != nil {
		return res, err
	}

	log.Info().Str("user_id", caller.UserID).Str("venue_id", venueID).Int64("balance", balance).Msg("cart opened")

	res.FromCart(venueID, c)

	return res, nil
}

func (s *cartImpl) Get(ctx context.Context, venueID string) (res dto.CartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cart.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	c, err := s.load(ctx, caller.UserID, venueID)
	if err != nil {
		return res, err
	}

	res.FromCart(venueID, c)

	return res, nil
}

func (s *cartImpl) AddItem(ctx context.Context, venueID, itemID string) (res dto.CartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cart.AddItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.mutate(ctx, venueID, func(c *cart.Cart) error {
		return c.AddItem(itemID)
	})
}

func (s *cartImpl) RemoveItem(ctx context.Context, venueID, itemID string) (res dto.CartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cart.RemoveItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.mutate(ctx, venueID, func(c *cart.Cart) error {
		c.RemoveItem(itemID)

		return nil
	})
}

func (s *cartImpl) Clear(ctx context.Context, venueID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cart.Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	if err = s.cache.Delete(ctx, cartKey(caller.UserID, venueID)); err != nil {
		log.Error().Err(err).Msg("failed to clear cart")

		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// Lines returns the finalized selection of the caller's cart at venueID.
func (s *cartImpl) Lines(ctx context.Context, venueID string) (lines []cart.Line, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cart.Lines")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, caller.UserID, venueID)
	if err != nil {
		return nil, err
	}

	return c.Finalize(), nil
}

func (s *cartImpl) mutate(ctx context.Context, venueID string, fn func(c *cart.Cart) error) (res dto.CartResponse, err error) {
	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	c, err := s.load(ctx, caller.UserID, venueID)
	if err != nil {
		return res, err
	}

	if err = fn(c); err != nil {
		return res, err
	}

	if err = s.save(ctx, caller.UserID, venueID, c); err != nil {
		return res, err
	}

	res.FromCart(venueID, c)

	return res, nil
}

func (s *cartImpl) load(ctx context.Context, userID, venueID string) (*cart.Cart, error) {
	var snapshot cart.Snapshot

	if err := s.cache.Get(ctx, cartKey(userID, venueID), &snapshot); err != nil {
		if errors.Is(err, cache.Nil) {
			return nil, ErrCartNotOpen
		}

		log.Error().Err(err).Msg("failed to load cart")

		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return cart.Restore(snapshot), nil
}

func (s *cartImpl) save(ctx context.Context, userID, venueID string, c *cart.Cart) error {
	ttl := s.cfg.Booking.CartTTLSeconds
	if ttl <= 0 {
		ttl = defaultCartTTLSecs
	}

	if err := s.cache.Save(ctx, cartKey(userID, venueID), c.Snapshot(), ttl); err != nil {
		log.Error().Err(err).Msg("failed to save cart")

		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func cartKey(userID, venueID string) string {
	return shared.BuildCacheKey(cacheCart, userID, venueID)
}
