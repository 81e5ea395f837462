package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/obs"
	"github.com/noah-isme/toko-pricing/internal/order"
	"github.com/noah-isme/toko-pricing/internal/pricing"
)

// ErrOrderNotReady is returned when an order fails its structural validation.
var ErrOrderNotReady = errors.New("order not ready for checkout")

// Output is the priced order returned to the checkout layer.
type Output struct {
	OrderID         string          `json:"orderId"`
	ItemsCount      int             `json:"itemsCount"`
	DiscountPercent int             `json:"discountPercent"`
	VATPercent      int             `json:"vatPercent"`
	Pricing         pricing.Summary `json:"pricing"`
}

// Service prices orders with the configured VAT and default discount.
// It holds no per-order state; callers own the orders they pass in.
type Service struct {
	Logger                 zerolog.Logger
	Metrics                *obs.PricingMetrics
	VATPercent             int
	DefaultDiscountPercent int
}

// Quote validates o and prices it. A nil discountPercent means the default.
func (s *Service) Quote(ctx context.Context, o *order.Order, discountPercent *int) (Output, error) {
	if s == nil {
		return Output{}, errors.New("checkout service not configured")
	}
	if o == nil {
		return Output{}, common.InvalidArgument("order is required")
	}
	discount := s.DefaultDiscountPercent
	if discountPercent != nil {
		discount = *discountPercent
	}

	ctx, span := otel.Tracer("checkout").Start(ctx, "checkout.Quote", trace.WithAttributes(
		attribute.String("order.id", o.ID().String()),
		attribute.Int("order.items", o.ItemsCount()),
		attribute.Int("pricing.discount_percent", discount),
		attribute.Int("pricing.vat_percent", s.VATPercent),
	))
	defer span.End()

	if s.Metrics != nil {
		s.Metrics.InFlight.Inc()
		defer s.Metrics.InFlight.Dec()
	}
	start := time.Now()

	out, err := s.quote(o, discount)
	result := resultOf(err)
	s.Metrics.Observe(result, time.Since(start), o.ItemsCount())

	logger := s.Logger.With().
		Str("order_id", o.ID().String()).
		Int("items", o.ItemsCount()).
		Int("discount_percent", discount).
		Int("vat_percent", s.VATPercent).
		Str("result", result).
		Logger()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
		logger.Warn().Ctx(ctx).Err(err).Msg("quote_rejected")
		return Output{}, err
	}
	span.SetAttributes(attribute.Int64("pricing.total_minor", out.Pricing.Total.Cents()))
	logger.Info().Ctx(ctx).
		Int64("subtotal", out.Pricing.Subtotal.Cents()).
		Int64("total", out.Pricing.Total.Cents()).
		Msg("quote_computed")
	return out, nil
}

func (s *Service) quote(o *order.Order, discount int) (Output, error) {
	if err := o.Validate(); err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrOrderNotReady, err)
	}
	summary, err := o.Quote(discount, s.VATPercent)
	if err != nil {
		return Output{}, err
	}
	return Output{
		OrderID:         o.ID().String(),
		ItemsCount:      o.ItemsCount(),
		DiscountPercent: discount,
		VATPercent:      s.VATPercent,
		Pricing:         summary,
	}, nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return obs.ResultOK
	case errors.Is(err, ErrOrderNotReady):
		return obs.ResultNotReady
	case common.IsInvalidArgument(err):
		return obs.ResultInvalidArgument
	default:
		return obs.ResultError
	}
}
