package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BerylCAtieno/receipt-reader-api/internal/extractor"
	"github.com/BerylCAtieno/receipt-reader-api/internal/models"
	"github.com/BerylCAtieno/receipt-reader-api/internal/receipt"
	"github.com/BerylCAtieno/receipt-reader-api/internal/repository"
	"github.com/BerylCAtieno/receipt-reader-api/internal/storage"
	"github.com/BerylCAtieno/receipt-reader-api/internal/utils"
)

type ReceiptService interface {
	UploadReceipt(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	ParseReceipt(ctx context.Context, req *models.ParseRequest) (*receipt.Result, error)
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)
	ListReceipts(ctx context.Context, groupID *int64) ([]models.Receipt, error)
	GetItems(ctx context.Context, id string) ([]models.Item, error)
	GetUnitTable(ctx context.Context, id string) (receipt.Table, error)
	GetDocument(ctx context.Context, id string) (*models.StoredDocument, error)
	DeleteReceipt(ctx context.Context, id string) error
}

type receiptService struct {
	repo    repository.Repository
	storage storage.Storage
	parser  *receipt.Parser
	logger  *utils.Logger
	now     func() time.Time
}

func NewService(repo repository.Repository, store storage.Storage, logger *utils.Logger) ReceiptService {
	return &receiptService{
		repo:    repo,
		storage: store,
		parser:  receipt.NewParser(receipt.DefaultLayout()),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	result, err := s.parse(req.File, req.ContentType, req.Filename)
	if err != nil {
		return nil, err
	}

	receiptID := utils.GenerateID()
	key := storage.ReceiptKey(receiptID, req.Filename)
	if err := s.storage.Upload(ctx, key, req.File, req.ContentType); err != nil {
		s.logger.Error("Failed to store receipt document", "error", err, "key", key)
		return nil, utils.NewInternalError("Failed to store receipt")
	}

	now := s.now().UTC()
	rec := &models.Receipt{
		ID:          receiptID,
		OrderID:     result.Header.OrderID,
		GroupID:     req.GroupID,
		SlotTime:    result.Header.SlotTime,
		TotalPrice:  result.Header.TotalPrice,
		PaymentCard: result.Header.PaymentCardSuffix,
		CardLayout:  result.Header.CardLayout,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		StorageKey:  key,
		CreatedAt:   now,
	}

	if err := s.repo.CreateReceipt(ctx, rec, toModelItems(result.Items)); err != nil {
		// Attempt to cleanup storage
		_ = s.storage.Delete(ctx, key)

		if errors.Is(err, repository.ErrDuplicateReceipt) {
			s.logger.Warn("Duplicate receipt upload", "order_id", rec.OrderID, "group_id", rec.GroupID)
			return nil, utils.NewConflictError(fmt.Sprintf("Receipt for order %s already exists in this group", rec.OrderID))
		}
		s.logger.Error("Failed to save receipt", "error", err, "id", receiptID)
		return nil, utils.NewInternalError("Failed to save receipt")
	}

	s.logger.Info("Receipt uploaded successfully",
		"id", receiptID,
		"order_id", rec.OrderID,
		"items", len(result.Items),
		"units", len(result.Units))

	return &models.UploadResponse{
		ID:        receiptID,
		OrderID:   rec.OrderID,
		ItemCount: len(result.Items),
		UnitCount: len(result.Units),
		CreatedAt: now,
		Message:   "Receipt uploaded successfully",
	}, nil
}

func (s *receiptService) ParseReceipt(ctx context.Context, req *models.ParseRequest) (*receipt.Result, error) {
	return s.parse(req.File, req.ContentType, "")
}

func (s *receiptService) parse(data []byte, contentType, filename string) (*receipt.Result, error) {
	lines, err := extractor.ExtractLines(data, contentType)
	if err != nil {
		s.logger.Warn("Failed to extract receipt text", "error", err, "content_type", contentType, "filename", filename)
		if errors.Is(err, extractor.ErrUnsupportedContentType) {
			return nil, utils.NewBadRequestError("Only PDF and plain text receipts are allowed")
		}
		return nil, utils.NewUnprocessableError("Could not read text from the receipt", err)
	}

	result, err := s.parser.Parse(lines)
	if err != nil {
		s.logger.Warn("Failed to parse receipt", "error", err, "filename", filename, "lines", len(lines))
		return nil, utils.NewUnprocessableError(fmt.Sprintf("Could not parse receipt: %v", err), err)
	}

	s.logger.Debug("Receipt parsed", "order_id", result.Header.OrderID, "items", len(result.Items))
	return result, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	rec, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get receipt", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve receipt")
	}
	if rec == nil {
		return nil, utils.NewNotFoundError("Receipt not found")
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		s.logger.Error("Failed to list items", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve receipt items")
	}
	rec.Items = items

	return rec, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, groupID *int64) ([]models.Receipt, error) {
	receipts, err := s.repo.ListReceipts(ctx, groupID)
	if err != nil {
		s.logger.Error("Failed to list receipts", "error", err)
		return nil, utils.NewInternalError("Failed to list receipts")
	}
	return receipts, nil
}

func (s *receiptService) GetItems(ctx context.Context, id string) ([]models.Item, error) {
	rec, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Items, nil
}

// GetUnitTable rebuilds the one-row-per-unit projection of a stored receipt.
func (s *receiptService) GetUnitTable(ctx context.Context, id string) (receipt.Table, error) {
	rec, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	units := receipt.Normalize(rec.OrderID, fromModelItems(rec.Items))
	return receipt.NewTable(units), nil
}

// GetDocument fetches the original upload of a stored receipt.
func (s *receiptService) GetDocument(ctx context.Context, id string) (*models.StoredDocument, error) {
	logger := s.logger.With("id", id)

	rec, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		logger.Error("Failed to get receipt", "error", err)
		return nil, utils.NewInternalError("Failed to retrieve receipt")
	}
	if rec == nil {
		return nil, utils.NewNotFoundError("Receipt not found")
	}

	data, err := s.storage.Download(ctx, rec.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Receipt document missing from storage", "key", rec.StorageKey)
			return nil, utils.NewNotFoundError("Receipt document not found")
		}
		logger.Error("Failed to download receipt document", "error", err, "key", rec.StorageKey)
		return nil, utils.NewInternalError("Failed to retrieve receipt document")
	}

	return &models.StoredDocument{
		Filename:    rec.Filename,
		ContentType: rec.ContentType,
		Data:        data,
	}, nil
}

// DeleteReceipt removes the receipt, its items and the stored original.
// A storage failure after the rows are gone is logged, not returned.
func (s *receiptService) DeleteReceipt(ctx context.Context, id string) error {
	logger := s.logger.With("id", id)

	rec, err := s.repo.GetReceipt(ctx, id)
	if err != nil {
		logger.Error("Failed to get receipt", "error", err)
		return utils.NewInternalError("Failed to retrieve receipt")
	}
	if rec == nil {
		return utils.NewNotFoundError("Receipt not found")
	}

	if err := s.repo.DeleteReceipt(ctx, id); err != nil {
		logger.Error("Failed to delete receipt", "error", err)
		return utils.NewInternalError("Failed to delete receipt")
	}

	if err := s.storage.Delete(ctx, rec.StorageKey); err != nil {
		logger.Warn("Failed to delete receipt document", "error", err, "key", rec.StorageKey)
	}

	logger.Info("Receipt deleted", "order_id", rec.OrderID)
	return nil
}

func toModelItems(items []receipt.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		m := models.Item{Name: it.Name, Price: it.Price}
		if it.Quantity != nil {
			q := int64(*it.Quantity)
			m.Quantity = &q
		}
		if it.Weight != nil {
			m.Weight = decimal.NewNullDecimal(*it.Weight)
		}
		out = append(out, m)
	}
	return out
}

func fromModelItems(items []models.Item) []receipt.Item {
	out := make([]receipt.Item, 0, len(items))
	for _, m := range items {
		it := receipt.Item{Name: m.Name, Price: m.Price}
		if m.Quantity != nil {
			q := int(*m.Quantity)
			it.Quantity = &q
		}
		if m.Weight.Valid {
			w := m.Weight.Decimal
			it.Weight = &w
		}
		out = append(out, it)
	}
	return out
}
