package usecase

import (
	"context"
	"fmt"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripService interface {
	GetTripByID(ctx context.Context, tripID string) (*response.TripResponse, error)
	ListTrips(ctx context.Context) ([]*response.TripResponse, error)
}

type tripService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTripService(repo *repository.Repository, log *zap.Logger) TripService {
	return &tripService{
		repo: repo,
		log:  log.With(zap.String("service", "trip")),
	}
}

func (s *tripService) GetTripByID(ctx context.Context, tripID string) (*response.TripResponse, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID format %s: %w", tripID, err)
	}

	trip, err := s.repo.Trip.FindByID(ctx, id)
	if err != nil || trip == nil {
		return nil, fmt.Errorf("trip %s not found", tripID)
	}

	addons, err := s.repo.AddOn.FindByTripID(ctx, trip.ID)
	if err != nil {
		s.log.Error("Failed to load trip add-ons", zap.Error(err), zap.String("trip_id", tripID))
		return nil, fmt.Errorf("load trip add-ons: %w", err)
	}

	resp := response.TripToResponse(trip, addons)
	return &resp, nil
}

func (s *tripService) ListTrips(ctx context.Context) ([]*response.TripResponse, error) {
	trips, err := s.repo.Trip.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to list trips", zap.Error(err))
		return nil, fmt.Errorf("list trips: %w", err)
	}

	responses := make([]*response.TripResponse, len(trips))
	for i, trip := range trips {
		resp := response.TripToResponse(trip, nil)
		responses[i] = &resp
	}

	s.log.Info("Trips listed", zap.Int("count", len(trips)))
	return responses, nil
}
