package dispatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/retailpos/internal/billing/domain"
)

func TestKafkaNotifierSkipsWithoutPhone(t *testing.T) {
	n := NewKafkaNotifier(nil, "pos.sms.commands")

	res := n.Notify(context.Background(), &domain.Invoice{InvoiceNo: "INV1"})
	assert.False(t, res.Delivered)
	assert.NoError(t, res.Err)
}

func TestFileBackupStorePush(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	store := NewFileBackupStore(dir)

	res := store.Push(context.Background(), []byte(`{"products":[],"invoices":[]}`))
	require.NoError(t, res.Err)
	assert.True(t, res.Pushed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[],"invoices":[]}`, string(data))
}

func TestDispatcherWithoutNotifier(t *testing.T) {
	d := New(nil, NewFileBackupStore(t.TempDir()))

	res := d.Notify(context.Background(), &domain.Invoice{InvoiceNo: "INV1", CustomerPhone: "9999999999"})
	assert.False(t, res.Delivered)
	assert.NoError(t, res.Err)

	backup := d.Backup(context.Background(), []byte(`{}`))
	assert.True(t, backup.Pushed)
}

func TestNoopDispatcher(t *testing.T) {
	var d Noop
	assert.False(t, d.Notify(context.Background(), &domain.Invoice{}).Delivered)
	assert.False(t, d.Backup(context.Background(), nil).Pushed)
}
