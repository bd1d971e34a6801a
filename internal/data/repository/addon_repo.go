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

type AddOnRepository interface {
	FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*entity.AddOn, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error)
}

type addOnRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddOnRepository(db database.PgxIface, log *zap.Logger) AddOnRepository {
	return &addOnRepository{
		db:  db,
		log: log.With(zap.String("repository", "addon")),
	}
}

func (r *addOnRepository) FindByTripID(ctx context.Context, tripID uuid.UUID) ([]*entity.AddOn, error) {
	query := `
		SELECT id, trip_id, name, price, per_person, is_active, created_at
		FROM trip_addons
		WHERE trip_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, tripID)
	if err != nil {
		r.log.Error("Failed to find add-ons by trip ID",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
		)
		return nil, fmt.Errorf("find add-ons by trip ID %s: %w", tripID.String(), err)
	}
	defer rows.Close()

	return r.scanAddOns(rows)
}

func (r *addOnRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error) {
	query := `
		SELECT id, trip_id, name, price, per_person, is_active, created_at
		FROM trip_addons
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find add-ons by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find add-ons by IDs: %w", err)
	}
	defer rows.Close()

	return r.scanAddOns(rows)
}

func (r *addOnRepository) scanAddOns(rows pgx.Rows) ([]*entity.AddOn, error) {
	var addons []*entity.AddOn
	for rows.Next() {
		var addon entity.AddOn
		err := rows.Scan(
			&addon.ID,
			&addon.TripID,
			&addon.Name,
			&addon.Price,
			&addon.PerPerson,
			&addon.IsActive,
			&addon.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan add-on row: %w", err)
		}
		addons = append(addons, &addon)
	}
	return addons, nil
}
