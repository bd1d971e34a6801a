package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *entity.PaymentOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error)
	MarkPaid(ctx context.Context, orderID, paymentID string) error
	// Consume flips a paid order to consumed. Returns false when the order
	// was not in the paid state, which is the write-once guard for bookings.
	Consume(ctx context.Context, orderID string) (bool, error)
	MarkFailed(ctx context.Context, orderID string) error
}

type paymentOrderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentOrderRepository(db database.PgxIface, log *zap.Logger) PaymentOrderRepository {
	return &paymentOrderRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_order")),
	}
}

func (r *paymentOrderRepository) Create(ctx context.Context, order *entity.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (id, order_id, user_id, trip_id, amount, currency,
		                            status, payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.OrderID,
		order.UserID,
		order.TripID,
		order.Amount,
		order.Currency,
		order.Status,
		order.PaymentID,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment order",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create payment order %s: %w", order.OrderID, err)
	}

	return nil
}

func (r *paymentOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	query := `
		SELECT id, order_id, user_id, trip_id, amount, currency, status, payment_id,
		       created_at, updated_at
		FROM payment_orders
		WHERE order_id = $1
	`

	var order entity.PaymentOrder
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.OrderID,
		&order.UserID,
		&order.TripID,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&order.PaymentID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment order",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find payment order %s: %w", orderID, err)
	}

	return &order, nil
}

func (r *paymentOrderRepository) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	query := `
		UPDATE payment_orders
		SET status = $2, payment_id = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = $4
	`

	result, err := r.db.Exec(ctx, query, orderID,
		entity.PaymentOrderStatusPaid, paymentID, entity.PaymentOrderStatusCreated)
	if err != nil {
		r.log.Error("Failed to mark payment order paid",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("payment_id", paymentID),
		)
		return fmt.Errorf("mark payment order %s paid: %w", orderID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment order %s not in created state", orderID)
	}

	return nil
}

func (r *paymentOrderRepository) Consume(ctx context.Context, orderID string) (bool, error) {
	query := `
		UPDATE payment_orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, orderID,
		entity.PaymentOrderStatusConsumed, entity.PaymentOrderStatusPaid)
	if err != nil {
		r.log.Error("Failed to consume payment order",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return false, fmt.Errorf("consume payment order %s: %w", orderID, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *paymentOrderRepository) MarkFailed(ctx context.Context, orderID string) error {
	query := `
		UPDATE payment_orders
		SET status = $2, updated_at = NOW()
		WHERE order_id = $1
	`

	result, err := r.db.Exec(ctx, query, orderID, entity.PaymentOrderStatusFailed)
	if err != nil {
		r.log.Error("Failed to mark payment order failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return fmt.Errorf("mark payment order %s failed: %w", orderID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment order %s not found", orderID)
	}

	return nil
}
