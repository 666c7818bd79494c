package storage

import (
	"context"
	"testing"

	"github.com/BerylCAtieno/receipt-reader-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key := ReceiptKey("r1", "order.pdf")
	require.NoError(t, s.Upload(ctx, key, []byte("%PDF-1.4"), "application/pdf"))

	data, err := s.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Download(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Upload(context.Background(), "../outside.pdf", []byte("x"), "application/pdf")
	assert.Error(t, err)
}

func TestReceiptKey(t *testing.T) {
	assert.Equal(t, "receipts/r1/order.pdf", ReceiptKey("r1", "order.pdf"))
	assert.Equal(t, "receipts/r1/passwd", ReceiptKey("r1", "../../etc/passwd"))
	assert.Equal(t, "receipts/r1/my_order.pdf", ReceiptKey("r1", "C:\\Users\\me\\my order.pdf"))
	assert.Equal(t, "receipts/r1/receipt", ReceiptKey("r1", ""))
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), &config.Config{StorageBackend: config.StorageLocal, StorageDir: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = New(context.Background(), &config.Config{StorageBackend: "ftp"})
	assert.Error(t, err)
}
