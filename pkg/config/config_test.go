package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
service_name = "retailpos"

[database]
dsn = "root:root@tcp(127.0.0.1:3306)/retailpos"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "retailpos", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "strict", cfg.Inventory.Policy)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "Smart Desk Mart", cfg.Store.Name)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "invoices", cfg.Billing.InvoiceDir)
	assert.Equal(t, "backups", cfg.Billing.BackupDir)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
service_name = "retailpos"

[http]
port = 9090

[database]
dsn = "root:root@tcp(127.0.0.1:3306)/retailpos"

[inventory]
policy = "permissive"
seed_target = 1100

[store]
name = "Corner Store"

[kafka]
enabled = true
brokers = ["127.0.0.1:9092"]
sms_topic = "pos.sms.commands"
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "permissive", cfg.Inventory.Policy)
	assert.Equal(t, 1100, cfg.Inventory.SeedTarget)
	assert.Equal(t, "Corner Store", cfg.Store.Name)
	assert.True(t, cfg.Kafka.Enabled)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	_, err := Load(writeConfig(t, `
service_name = "retailpos"

[database]
dsn = "root:root@tcp(127.0.0.1:3306)/retailpos"

[inventory]
policy = "lenient"
`))
	assert.Error(t, err)
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	_, err := Load(writeConfig(t, `service_name = "retailpos"`))
	assert.Error(t, err)
}

func TestLoadRejectsKafkaWithoutBrokers(t *testing.T) {
	_, err := Load(writeConfig(t, `
service_name = "retailpos"

[database]
dsn = "root:root@tcp(127.0.0.1:3306)/retailpos"

[kafka]
enabled = true
`))
	assert.Error(t, err)
}
