package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/ecommerce-services/internal/order-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
)

const instrumentationName = "github.com/jcmexdev/ecommerce-services/internal/order-service/app"

const (
	msgInvalidOrder       = "Invalid order data"
	msgProductNotFound    = "Product not found"
	msgCatalogUnavailable = "Product service unavailable"
)

// Stage is the position of a single CreateOrder invocation in its state
// machine. Every invocation starts in StageValidating and ends in
// StageDone or StageFailed.
type Stage string

const (
	StageValidating       Stage = "validating"
	StageResolvingProduct Stage = "resolving_product"
	StagePricing          Stage = "pricing"
	StagePersisting       Stage = "persisting"
	StageDone             Stage = "done"
	StageFailed           Stage = "failed"
)

// OutcomeCreated labels a successful CreateOrder in the outcomes counter.
// Failures are labelled with their apperr.Kind.
const OutcomeCreated = "created"

// Orchestrator places orders: it validates the request, resolves the
// product from the catalog, prices the order and persists it. Nothing is
// written before the catalog has answered, so a failed invocation leaves
// no partial state behind and needs no compensation.
type Orchestrator struct {
	catalog  ports.ProductCatalog
	orders   ports.OrderRepository
	logger   *slog.Logger
	tracer   trace.Tracer
	outcomes metric.Int64Counter
}

type OrchestratorOption func(*orchestratorOptions)

type orchestratorOptions struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

func WithTracerProvider(tp trace.TracerProvider) OrchestratorOption {
	return func(o *orchestratorOptions) { o.tracerProvider = tp }
}

func WithMeterProvider(mp metric.MeterProvider) OrchestratorOption {
	return func(o *orchestratorOptions) { o.meterProvider = mp }
}

// NewOrchestrator uses the global OTel providers unless overridden.
func NewOrchestrator(catalog ports.ProductCatalog, orders ports.OrderRepository, logger *slog.Logger, opts ...OrchestratorOption) (*Orchestrator, error) {
	cfg := orchestratorOptions{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	outcomes, err := cfg.meterProvider.Meter(instrumentationName).Int64Counter(
		"orders.create.outcomes",
		metric.WithDescription("CreateOrder invocations by final outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		catalog:  catalog,
		orders:   orders,
		logger:   logger,
		tracer:   cfg.tracerProvider.Tracer(instrumentationName),
		outcomes: outcomes,
	}, nil
}

// CreateOrder runs one invocation of the state machine. Errors are
// *apperr.Error values: InvalidArgument, NotFound, Unavailable or Internal.
func (o *Orchestrator) CreateOrder(ctx context.Context, productID string, quantity int32) (*domain.Order, error) {
	ctx, span := o.tracer.Start(ctx, "OrderOrchestrator.CreateOrder", trace.WithAttributes(
		attribute.String("product.id", productID),
		attribute.Int("order.quantity", int(quantity)),
	))
	defer span.End()

	inv := &invocation{logger: o.logger, span: span}
	inv.enter(ctx, StageValidating)

	order, err := o.run(ctx, inv, productID, quantity)
	if err != nil {
		inv.fail(ctx, err)
		o.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", apperr.KindOf(err).String())))
		return nil, err
	}

	inv.enter(ctx, StageDone)
	span.SetAttributes(attribute.String("order.id", order.ID))
	o.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", OutcomeCreated)))
	o.logger.InfoContext(ctx, "order created", "order_id", order.ID, "product_id", productID, "total_price", order.TotalPrice)
	return order, nil
}

func (o *Orchestrator) run(ctx context.Context, inv *invocation, productID string, quantity int32) (*domain.Order, error) {
	if err := domain.ValidateRequest(productID, quantity); err != nil {
		return nil, apperr.InvalidArgument(msgInvalidOrder)
	}

	inv.enter(ctx, StageResolvingProduct)
	product, found, err := o.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, apperr.Unavailable(msgCatalogUnavailable, err)
	}
	if !found {
		return nil, apperr.NotFound(msgProductNotFound)
	}

	inv.enter(ctx, StagePricing)
	total := domain.TotalPrice(product.Price, quantity)

	inv.enter(ctx, StagePersisting)
	order := domain.NewOrder(productID, quantity, total)
	if err := o.orders.Create(ctx, order); err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	return order, nil
}

// invocation tracks the stage of a single CreateOrder call.
type invocation struct {
	stage  Stage
	logger *slog.Logger
	span   trace.Span
}

func (inv *invocation) enter(ctx context.Context, next Stage) {
	inv.logger.DebugContext(ctx, "create order transition", "from", string(inv.stage), "to", string(next))
	inv.span.AddEvent(string(next))
	inv.stage = next
}

func (inv *invocation) fail(ctx context.Context, err error) {
	kind := apperr.KindOf(err)
	failedAt := inv.stage
	rejected := kind == apperr.KindInvalidArgument || kind == apperr.KindNotFound

	if !rejected {
		inv.span.RecordError(err)
	}
	inv.logger.DebugContext(ctx, "create order transition", "from", string(failedAt), "to", string(StageFailed), "reason", kind.String())
	inv.span.AddEvent(string(StageFailed), trace.WithAttributes(
		attribute.String("failed_at", string(failedAt)),
		attribute.String("reason", kind.String()),
	))
	inv.span.SetStatus(otelcodes.Error, apperr.PublicMessage(err))
	inv.stage = StageFailed

	if rejected {
		inv.logger.InfoContext(ctx, "order rejected", "stage", string(failedAt), "reason", kind.String())
		return
	}
	inv.logger.ErrorContext(ctx, "order failed", "stage", string(failedAt), "reason", kind.String(), "error", err)
}
