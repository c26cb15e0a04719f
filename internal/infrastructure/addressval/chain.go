package addressval

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

// Chain runs providers in priority order until one reports the address
// valid. Failures and rejections both advance to the next provider; the
// heuristic fallback is always last and always answers, so Validate
// never returns nil.
type Chain struct {
	providers      []Provider
	fallback       Provider
	cache          *ReviewCache
	timeout        time.Duration
	maxConcurrency int
	logger         *zap.Logger
}

// ChainOption is a functional option for Chain configuration
type ChainOption func(*Chain)

// WithCache attaches a review cache to the chain
func WithCache(cache *ReviewCache) ChainOption {
	return func(c *Chain) { c.cache = cache }
}

// WithTimeout sets the per-provider call timeout
func WithTimeout(timeout time.Duration) ChainOption {
	return func(c *Chain) { c.timeout = timeout }
}

// WithMaxConcurrency caps concurrent provider calls during batch validation
func WithMaxConcurrency(n int) ChainOption {
	return func(c *Chain) { c.maxConcurrency = n }
}

// WithLogger sets the chain logger
func WithLogger(logger *zap.Logger) ChainOption {
	return func(c *Chain) { c.logger = logger }
}

// NewChain creates a provider chain. providers are tried in the order
// given; the heuristic fallback is appended automatically.
func NewChain(providers []Provider, opts ...ChainOption) *Chain {
	c := &Chain{
		providers:      providers,
		fallback:       NewHeuristicProvider(),
		timeout:        10 * time.Second,
		maxConcurrency: 8,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate runs the chain for one address
func (c *Chain) Validate(ctx context.Context, addr shipping.Address) *shipping.AddressReview {
	if cached := c.cache.Get(ctx, addr); cached != nil {
		return cached
	}

	for _, provider := range c.providers {
		if !provider.Configured() {
			continue
		}

		review, err := c.callProvider(ctx, provider, addr)
		if err != nil {
			c.logger.Warn("address provider failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}

		// Only a pass ends the chain; a rejection may be a false
		// negative, so the remaining providers get their turn.
		if review.Valid {
			c.cache.Set(ctx, addr, review)
			return review
		}
		c.logger.Warn("address provider rejected, trying next",
			zap.String("provider", provider.Name()),
			zap.String("reason", review.Error))
	}

	// The fallback cannot fail
	review, _ := c.fallback.Validate(ctx, addr)
	c.cache.Set(ctx, addr, review)
	return review
}

func (c *Chain) callProvider(ctx context.Context, provider Provider, addr shipping.Address) (*shipping.AddressReview, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return provider.Validate(callCtx, addr)
}

// ValidateBatch validates many addresses concurrently. The result
// slice is index-aligned with the input.
func (c *Chain) ValidateBatch(ctx context.Context, addrs []shipping.Address) []*shipping.AddressReview {
	reviews := make([]*shipping.AddressReview, len(addrs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)

	for i, addr := range addrs {
		i, addr := i, addr
		g.Go(func() error {
			reviews[i] = c.Validate(gctx, addr)
			return nil
		})
	}

	// Workers never return errors; Wait is for completion only
	_ = g.Wait()

	return reviews
}
