package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/pricing"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	// CreateOrder prices the submitted draft server-side and issues a
	// one-time gateway order tied to that exact amount.
	CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.CheckoutConfigResponse, error)
	// VerifyPayment checks the gateway signature and marks the order paid.
	// This is the trust boundary: a client success callback proves nothing.
	VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.CheckoutConfigResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	quote, trip, err := quoteDraft(ctx, s.repo, s.config, &req.DraftPayload)
	if err != nil {
		return nil, err
	}

	if quote.GrandTotal <= 0 {
		return nil, fmt.Errorf("cannot create order for a zero amount")
	}

	currency := trip.Currency
	if currency == "" {
		currency = s.config.Gateway.Currency
	}

	now := time.Now()
	order := &entity.PaymentOrder{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:  utils.GenerateOrderID(),
		UserID:   userUUID,
		TripID:   trip.ID,
		Amount:   quote.GrandTotal,
		Currency: currency,
		Status:   entity.PaymentOrderStatusCreated,
	}

	if err := s.repo.PaymentOrder.Create(ctx, order); err != nil {
		s.log.Error("Failed to create payment order",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("trip_id", trip.ID.String()),
		)
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	s.log.Info("Payment order created",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", userID),
		zap.String("trip_id", trip.ID.String()),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)

	return &response.CheckoutConfigResponse{
		KeyID:    s.config.Gateway.KeyID,
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.PaymentOrder.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		s.log.Error("Failed to load payment order", zap.Error(err), zap.String("order_id", req.OrderID))
		return nil, fmt.Errorf("load payment order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("payment order %s not found", req.OrderID)
	}

	// Re-verification with the same payment id is a no-op success so a
	// retried callback cannot fail a payment that already went through.
	if order.Status == entity.PaymentOrderStatusPaid || order.Status == entity.PaymentOrderStatusConsumed {
		if order.PaymentID != nil && *order.PaymentID == req.PaymentID {
			return &response.VerifyPaymentResponse{
				OrderID:   order.OrderID,
				PaymentID: req.PaymentID,
				Verified:  true,
			}, nil
		}
		return nil, fmt.Errorf("payment order %s already settled with a different payment", req.OrderID)
	}

	if !utils.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, s.config.Gateway.KeySecret) {
		s.log.Warn("Payment signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		// A forged or corrupted callback burns the order; the client has to
		// create a fresh one, which is safe pre-payment.
		if err := s.repo.PaymentOrder.MarkFailed(ctx, req.OrderID); err != nil {
			s.log.Error("Failed to mark order failed", zap.Error(err), zap.String("order_id", req.OrderID))
		}
		return nil, fmt.Errorf("payment verification failed for order %s", req.OrderID)
	}

	if err := s.repo.PaymentOrder.MarkPaid(ctx, req.OrderID, req.PaymentID); err != nil {
		s.log.Error("Failed to mark order paid",
			zap.Error(err),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	s.log.Info("Payment verified",
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID),
	)

	return &response.VerifyPaymentResponse{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Verified:  true,
	}, nil
}

// quoteDraft prices a submitted draft against the catalog: trip and add-on
// prices come from the database, the coupon discount from the coupon rules.
// Shared by order creation and booking creation so both always agree.
func quoteDraft(ctx context.Context, repo *repository.Repository, config *utils.Config, draft *request.DraftPayload) (*pricing.Breakdown, *entity.Trip, error) {
	tripID, err := uuid.Parse(draft.TripID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trip ID format %s: %w", draft.TripID, err)
	}

	trip, err := repo.Trip.FindByID(ctx, tripID)
	if err != nil || trip == nil {
		return nil, nil, fmt.Errorf("trip %s not found", draft.TripID)
	}
	if !trip.IsActive {
		return nil, nil, fmt.Errorf("trip %s is not open for booking", draft.TripID)
	}

	if len(draft.Travelers) != draft.TravelerCount {
		return nil, nil, fmt.Errorf("traveler list length %d does not match traveler count %d",
			len(draft.Travelers), draft.TravelerCount)
	}
	if trip.MaxTravelers > 0 && draft.TravelerCount > trip.MaxTravelers {
		return nil, nil, fmt.Errorf("trip %s allows at most %d travelers", draft.TripID, trip.MaxTravelers)
	}

	var addons []pricing.AddOn
	if len(draft.AddOnIDs) > 0 {
		addonUUIDs := make([]uuid.UUID, len(draft.AddOnIDs))
		for i, idStr := range draft.AddOnIDs {
			id, err := uuid.Parse(idStr)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid add-on ID format %s: %w", idStr, err)
			}
			addonUUIDs[i] = id
		}

		rows, err := repo.AddOn.FindByIDs(ctx, addonUUIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("load add-ons: %w", err)
		}
		if len(rows) != len(addonUUIDs) {
			return nil, nil, fmt.Errorf("one or more selected add-ons not found")
		}
		for _, row := range rows {
			if row.TripID != trip.ID {
				return nil, nil, fmt.Errorf("add-on %s does not belong to trip %s", row.ID.String(), draft.TripID)
			}
			addons = append(addons, pricing.AddOn{
				ID:        row.ID.String(),
				Price:     row.Price,
				PerPerson: row.PerPerson,
			})
		}
	}

	// Price without discount first; the coupon minimum applies to the
	// subtotal, which the engine has to produce.
	quote := pricing.Compute(pricing.Input{
		UnitPrice:     trip.UnitPrice,
		SingleRoomFee: trip.SingleRoomFee,
		TravelerCount: draft.TravelerCount,
		RoomTier:      entity.RoomTier(draft.RoomTier),
		AddOns:        addons,
		TaxRateBps:    config.Pricing.TaxRateBps,
	})

	if draft.CouponCode != "" {
		coupon, err := repo.Coupon.FindByCode(ctx, draft.CouponCode)
		if err != nil {
			return nil, nil, fmt.Errorf("look up coupon: %w", err)
		}
		if coupon == nil {
			return nil, nil, fmt.Errorf("coupon %s not found", draft.CouponCode)
		}
		if err := checkCouponEligibility(coupon, quote.Subtotal, time.Now()); err != nil {
			return nil, nil, err
		}

		quote = pricing.Compute(pricing.Input{
			UnitPrice:     trip.UnitPrice,
			SingleRoomFee: trip.SingleRoomFee,
			TravelerCount: draft.TravelerCount,
			RoomTier:      entity.RoomTier(draft.RoomTier),
			AddOns:        addons,
			Discount:      couponDiscount(coupon, quote.Subtotal),
			TaxRateBps:    config.Pricing.TaxRateBps,
		})
	}

	return &quote, trip, nil
}
