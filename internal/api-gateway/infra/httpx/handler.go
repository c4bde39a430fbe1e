package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
)

const (
	serviceName      = "api-gateway"
	readinessTimeout = 2 * time.Second
)

// Handler translates HTTP requests into exactly one backend call each and
// maps the outcome back onto HTTP. It keeps no state between requests.
type Handler struct {
	catalog ports.CatalogService
	orders  ports.OrderService
	probes  []ports.ReadinessProbe
	logger  *slog.Logger
}

// NewHandler builds the handler. probes back GET /health/ready; with none
// the gateway always reports ready.
func NewHandler(catalog ports.CatalogService, orders ports.OrderService, logger *slog.Logger, probes ...ports.ReadinessProbe) *Handler {
	return &Handler{catalog: catalog, orders: orders, probes: probes, logger: logger}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	out := ProductListResponse{Products: make([]ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, mapProductToResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductToResponse(*p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), entity.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductToResponse(*p))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	out := OrderListResponse{Orders: make([]OrderResponse, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, mapOrderToResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(*o))
}

// CreateOrder forwards the request to the order service, which owns
// validation, pricing and persistence.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.logger.InfoContext(r.Context(), "creating order", "request_id", middleware.GetReqID(r.Context()), "product_id", req.ProductID)

	o, err := h.orders.CreateOrder(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(*o))
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: serviceName})
}

// Ready probes every backend; any failing probe makes the gateway unready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	res := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(h.probes))}
	code := http.StatusOK
	for _, p := range h.probes {
		if err := p.Check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness probe failed", "backend", p.Name(), "error", err)
			res.Checks[p.Name()] = "unavailable"
			res.Status = "unready"
			code = http.StatusServiceUnavailable
			continue
		}
		res.Checks[p.Name()] = "ok"
	}
	writeJSON(w, code, res)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid_json", "Malformed JSON body")
		return false
	}
	return true
}

// writeAppError maps an apperr classification onto the HTTP response. Only
// InvalidArgument and NotFound messages reach the client; everything else
// is logged with its cause and answered with a generic 500.
func (h *Handler) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	switch kind {
	case apperr.KindInvalidArgument:
		h.writeError(w, r, status, "invalid_argument", apperr.PublicMessage(err))
	case apperr.KindNotFound:
		h.writeError(w, r, status, "not_found", apperr.PublicMessage(err))
	default:
		h.logger.ErrorContext(r.Context(), "backend call failed", "kind", kind.String(), "error", err)
		h.writeError(w, r, status, "internal_error", apperr.MsgInternal)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
		TraceID:   telemetry.ExtractTraceInfo(r.Context()).TraceID,
	})
}

func mapProductToResponse(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
}

func mapOrderToResponse(o entity.Order) OrderResponse {
	return OrderResponse{ID: o.ID, ProductID: o.ProductID, Quantity: o.Quantity, TotalPrice: o.TotalPrice}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
