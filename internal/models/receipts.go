package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Receipt struct {
	ID          string          `json:"id" db:"id"`
	OrderID     string          `json:"order_id" db:"order_id"`
	GroupID     int64           `json:"group_id" db:"group_id"`
	SlotTime    time.Time       `json:"slot_time" db:"slot_time"`
	TotalPrice  decimal.Decimal `json:"total_price" db:"total_price"`
	PaymentCard int             `json:"payment_card" db:"payment_card"`
	CardLayout  string          `json:"card_layout" db:"card_layout"`
	Filename    string          `json:"filename" db:"filename"`
	ContentType string          `json:"content_type" db:"content_type"`
	StorageKey  string          `json:"storage_key" db:"storage_key"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	Items       []Item          `json:"items,omitempty" db:"-"`
}

// Item is one logical receipt entry as stored, before unit projection.
type Item struct {
	ID        int64               `json:"item_id" db:"id"`
	ReceiptID string              `json:"receipt_id" db:"receipt_id"`
	Position  int                 `json:"position" db:"position"`
	Name      string              `json:"item_name" db:"item_name"`
	Quantity  *int64              `json:"quantity" db:"quantity"`
	Weight    decimal.NullDecimal `json:"weight" db:"weight"`
	Price     decimal.Decimal     `json:"price" db:"price"`
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
	GroupID     int64
}

type ParseRequest struct {
	File        []byte
	ContentType string
}

// StoredDocument is an original upload read back from storage.
type StoredDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ItemCount int       `json:"item_count"`
	UnitCount int       `json:"unit_count"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
}

type ItemsResponse struct {
	ReceiptID string `json:"receipt_id"`
	Items     []Item `json:"items"`
}

type ReceiptListResponse struct {
	Receipts []Receipt `json:"receipts"`
}
