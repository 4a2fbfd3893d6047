package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/glaucia86/mercado-libre-clone/internal/engine"
	"github.com/glaucia86/mercado-libre-clone/internal/service"
	"github.com/glaucia86/mercado-libre-clone/pkg/httputil"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new catalog HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.parseQuerySpec(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListProducts(r.Context(), spec)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// Similar handles GET /api/v1/products/{id}/similar
func (h *ProductHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeParamError(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	result, err := h.service.GetSimilar(r.Context(), id, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Installments handles GET /api/v1/products/{id}/installments
func (h *ProductHandler) Installments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	methodID := r.URL.Query().Get("paymentMethodId")

	plan, err := h.service.GetInstallmentPlan(r.Context(), id, methodID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: plan})
}

// parseQuerySpec maps the list endpoint's query parameters onto an
// engine QuerySpec. Malformed numeric and boolean values are rejected;
// range consistency is the engine's responsibility.
func (h *ProductHandler) parseQuerySpec(w http.ResponseWriter, r *http.Request) (engine.QuerySpec, bool) {
	q := r.URL.Query()
	spec := engine.QuerySpec{}

	spec.Filters.Query = strings.TrimSpace(q.Get("q"))

	if v := q.Get("category"); v != "" {
		spec.Filters.Category = &v
	}
	if v := q.Get("subcategory"); v != "" {
		spec.Filters.Subcategory = &v
	}
	if v := q.Get("sellerId"); v != "" {
		spec.Filters.SellerID = &v
	}
	if v := q.Get("condition"); v != "" {
		spec.Filters.Condition = &v
	}
	if v := q.Get("tags"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				spec.Filters.Tags = append(spec.Filters.Tags, tag)
			}
		}
	}

	var ok bool
	if spec.Filters.MinPrice, ok = parseFloatParam(w, q.Get("minPrice"), "minPrice"); !ok {
		return spec, false
	}
	if spec.Filters.MaxPrice, ok = parseFloatParam(w, q.Get("maxPrice"), "maxPrice"); !ok {
		return spec, false
	}
	if spec.Filters.MinRating, ok = parseFloatParam(w, q.Get("minRating"), "minRating"); !ok {
		return spec, false
	}
	if spec.Filters.IsActive, ok = parseBoolParam(w, q.Get("isActive"), "isActive"); !ok {
		return spec, false
	}
	if spec.Filters.HasDiscount, ok = parseBoolParam(w, q.Get("hasDiscount"), "hasDiscount"); !ok {
		return spec, false
	}
	if spec.Filters.InStock, ok = parseBoolParam(w, q.Get("inStock"), "inStock"); !ok {
		return spec, false
	}

	spec.Sort.Field = q.Get("sortBy")
	spec.Sort.Direction = q.Get("sortDirection")

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeParamError(w, "page must be an integer")
			return spec, false
		}
		spec.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeParamError(w, "limit must be an integer")
			return spec, false
		}
		spec.Limit = n
	}

	spec.IncludeFacets = q.Get("includeFacets") == "true"
	spec.IncludeMetadata = q.Get("includeMetadata") == "true"

	return spec, true
}

func parseFloatParam(w http.ResponseWriter, raw, name string) (*float64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeParamError(w, name+" must be a valid number")
		return nil, false
	}
	return &v, true
}

func parseBoolParam(w http.ResponseWriter, raw, name string) (*bool, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		writeParamError(w, name+" must be true or false")
		return nil, false
	}
	return &v, true
}

func writeParamError(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: message},
	})
}
