package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TripRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
	FindAllActive(ctx context.Context) ([]*entity.Trip, error)
}

type tripRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTripRepository(db database.PgxIface, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	query := `
		SELECT id, title, destination, duration_days, unit_price, single_room_fee,
		       currency, max_travelers, is_active, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	var trip entity.Trip
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Title,
		&trip.Destination,
		&trip.DurationDays,
		&trip.UnitPrice,
		&trip.SingleRoomFee,
		&trip.Currency,
		&trip.MaxTravelers,
		&trip.IsActive,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip by ID",
			zap.Error(err),
			zap.String("trip_id", id.String()),
		)
		return nil, fmt.Errorf("find trip by ID %s: %w", id.String(), err)
	}

	return &trip, nil
}

func (r *tripRepository) FindAllActive(ctx context.Context) ([]*entity.Trip, error) {
	query := `
		SELECT id, title, destination, duration_days, unit_price, single_room_fee,
		       currency, max_travelers, is_active, created_at, updated_at
		FROM trips
		WHERE is_active = true
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active trips", zap.Error(err))
		return nil, fmt.Errorf("find active trips: %w", err)
	}
	defer rows.Close()

	var trips []*entity.Trip
	for rows.Next() {
		var trip entity.Trip
		err := rows.Scan(
			&trip.ID,
			&trip.Title,
			&trip.Destination,
			&trip.DurationDays,
			&trip.UnitPrice,
			&trip.SingleRoomFee,
			&trip.Currency,
			&trip.MaxTravelers,
			&trip.IsActive,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan trip row", zap.Error(err))
			return nil, fmt.Errorf("scan trip row: %w", err)
		}
		trips = append(trips, &trip)
	}

	return trips, nil
}
