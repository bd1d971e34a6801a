package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type CouponHandler struct {
	service usecase.CouponService
	log     *zap.Logger
}

func NewCouponHandler(service usecase.CouponService, log *zap.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log.With(zap.String("handler", "coupon")),
	}
}

// ListCoupons handles GET /api/coupons (public)
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListPublished(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list coupons")
		return
	}

	utils.ResponseSuccess(w, "success", offers)
}

// ValidateCoupon handles POST /api/coupons/validate (protected)
func (h *CouponHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	application, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "validate coupon")
		return
	}

	utils.ResponseSuccess(w, "success", application)
}
