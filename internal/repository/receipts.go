package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/receipt-reader-api/internal/models"
	"github.com/jmoiron/sqlx"
)

var ErrDuplicateReceipt = errors.New("receipt already exists for this order")

type Repository interface {
	CreateReceipt(ctx context.Context, receipt *models.Receipt, items []models.Item) error
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)
	ListReceipts(ctx context.Context, groupID *int64) ([]models.Receipt, error)
	ListItems(ctx context.Context, receiptID string) ([]models.Item, error)
	DeleteReceipt(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateReceipt inserts the receipt and its items in one transaction.
func (r *repository) CreateReceipt(ctx context.Context, receipt *models.Receipt, items []models.Item) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO receipts (id, order_id, group_id, slot_time, total_price, payment_card,
		                      card_layout, filename, content_type, storage_key, created_at)
		VALUES (:id, :order_id, :group_id, :slot_time, :total_price, :payment_card,
		        :card_layout, :filename, :content_type, :storage_key, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, receipt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateReceipt, receipt.OrderID)
		}
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	itemQuery := `
		INSERT INTO items (receipt_id, position, item_name, quantity, weight, price)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i := range items {
		item := &items[i]
		item.ReceiptID = receipt.ID
		item.Position = i

		res, err := tx.ExecContext(ctx, itemQuery,
			item.ReceiptID,
			item.Position,
			item.Name,
			item.Quantity,
			item.Weight,
			item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item %d: %w", i, err)
		}

		if item.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read item id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit receipt: %w", err)
	}

	return nil
}

func (r *repository) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	var receipt models.Receipt

	query := `
		SELECT id, order_id, group_id, slot_time, total_price, payment_card,
		       card_layout, filename, content_type, storage_key, created_at
		FROM receipts
		WHERE id = ?
	`

	err := r.db.GetContext(ctx, &receipt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}

// ListReceipts returns receipts newest slot first, optionally for one group.
func (r *repository) ListReceipts(ctx context.Context, groupID *int64) ([]models.Receipt, error) {
	query := `
		SELECT id, order_id, group_id, slot_time, total_price, payment_card,
		       card_layout, filename, content_type, storage_key, created_at
		FROM receipts
	`
	var args []any
	if groupID != nil {
		query += ` WHERE group_id = ?`
		args = append(args, *groupID)
	}
	query += ` ORDER BY slot_time DESC`

	receipts := []models.Receipt{}
	if err := r.db.SelectContext(ctx, &receipts, query, args...); err != nil {
		return nil, err
	}

	return receipts, nil
}

func (r *repository) ListItems(ctx context.Context, receiptID string) ([]models.Item, error) {
	query := `
		SELECT id, receipt_id, position, item_name, quantity, weight, price
		FROM items
		WHERE receipt_id = ?
		ORDER BY position
	`

	items := []models.Item{}
	if err := r.db.SelectContext(ctx, &items, query, receiptID); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) DeleteReceipt(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, id)
	return err
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
