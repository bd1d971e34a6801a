package usecase

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking persists the final record for a verified payment.
	// The payment order is consumed first, so there is exactly one booking
	// per verified payment no matter how the request is replayed.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	departureDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %s: %w", req.DepartureDate, err)
	}

	order, err := s.repo.PaymentOrder.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		s.log.Error("Failed to load payment order", zap.Error(err), zap.String("order_id", req.OrderID))
		return nil, fmt.Errorf("load payment order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("payment order %s not found", req.OrderID)
	}
	if order.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to book against this payment order")
	}
	if order.PaymentID == nil || *order.PaymentID != req.PaymentID {
		return nil, fmt.Errorf("payment %s does not match order %s", req.PaymentID, req.OrderID)
	}

	// Signature travels with the booking request as well; checking it again
	// costs nothing and catches a tampered replay between verify and book.
	if !utils.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, s.config.Gateway.KeySecret) {
		s.log.Warn("Booking request signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, fmt.Errorf("payment verification failed for order %s", req.OrderID)
	}

	quote, trip, err := quoteDraft(ctx, s.repo, s.config, &req.DraftPayload)
	if err != nil {
		return nil, err
	}
	if quote.GrandTotal != order.Amount {
		s.log.Warn("Draft total does not match paid order",
			zap.String("order_id", req.OrderID),
			zap.Int64("draft_total", quote.GrandTotal),
			zap.Int64("order_amount", order.Amount),
		)
		return nil, fmt.Errorf("draft total %d does not match paid amount %d", quote.GrandTotal, order.Amount)
	}

	consumed, err := s.repo.PaymentOrder.Consume(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("consume payment order: %w", err)
	}
	if !consumed {
		// Either never verified or already booked. Surface the existing
		// booking for replays instead of creating a second one.
		if existing, findErr := s.repo.Booking.FindByOrderID(ctx, req.OrderID); findErr == nil && existing != nil {
			s.log.Info("Booking already exists for order",
				zap.String("order_id", req.OrderID),
				zap.String("booking_id", existing.ID.String()),
			)
			resp := response.BookingToResponse(existing, trip)
			return &resp, nil
		}
		return nil, fmt.Errorf("payment order %s is not in a bookable state", req.OrderID)
	}

	travelers := make([]entity.Traveler, len(req.Travelers))
	for i, t := range req.Travelers {
		travelers[i] = entity.Traveler{
			Name:             t.Name,
			Age:              t.Age,
			Gender:           entity.GenderType(t.Gender),
			EmergencyContact: t.EmergencyContact,
		}
	}

	addonIDs := make([]uuid.UUID, len(req.AddOnIDs))
	for i, idStr := range req.AddOnIDs {
		// Already validated by quoteDraft
		addonIDs[i], _ = uuid.Parse(idStr)
	}

	var couponCode *string
	if req.CouponCode != "" {
		couponCode = &req.CouponCode
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:       utils.GenerateBookingReference(),
		UserID:          userUUID,
		TripID:          trip.ID,
		DepartureDate:   departureDate,
		TravelerCount:   req.TravelerCount,
		Travelers:       travelers,
		RoomTier:        entity.RoomTier(req.RoomTier),
		AddOnIDs:        addonIDs,
		SpecialRequests: req.SpecialRequests,
		CouponCode:      couponCode,
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		Taxes:           quote.Taxes,
		GrandTotal:      quote.GrandTotal,
		OrderID:         req.OrderID,
		PaymentID:       req.PaymentID,
		Status:          entity.BookingStatusConfirmed,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// The order is consumed but no booking row exists. This is the
		// paid-but-unrecorded case; keep the identifiers loud in the log
		// for support-side reconciliation.
		s.log.Error("Booking creation failed after payment",
			zap.Error(err),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("create booking for order %s: %w", req.OrderID, err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("order_id", booking.OrderID),
		zap.String("payment_id", booking.PaymentID),
		zap.String("user_id", userID),
		zap.Int("traveler_count", booking.TravelerCount),
		zap.Int64("grand_total", booking.GrandTotal),
	)

	resp := response.BookingToResponse(booking, trip)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to view this booking")
	}

	trip, _ := s.repo.Trip.FindByID(ctx, booking.TripID)

	resp := response.BookingToResponse(booking, trip)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		trip, _ := s.repo.Trip.FindByID(ctx, booking.TripID)
		bookingResponses[i] = response.BookingToResponse(booking, trip)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, limit, total), nil
}
