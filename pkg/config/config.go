// Package config 提供 TOML 配置加载、环境变量覆盖与加载期校验。
// 所有可识别的配置项都在这里枚举为强类型字段，取代运行期的松散键值表。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wyfcoding/retailpos/pkg/logger"
)

// Config 应用配置结构
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 数据库配置
	Database DatabaseConfig `mapstructure:"database"`
	// Kafka 配置
	Kafka KafkaConfig `mapstructure:"kafka"`
	// 日志配置
	Logger logger.Config `mapstructure:"logger"`
	// 门店配置
	Store StoreConfig `mapstructure:"store"`
	// 库存配置
	Inventory InventoryConfig `mapstructure:"inventory"`
	// 开票配置
	Billing BillingConfig `mapstructure:"billing"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// 读超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// 写超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// 数据源名称
	DSN string `mapstructure:"dsn"`
	// 最大连接数
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// 最大空闲连接数
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// 连接最大生命周期（秒）
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	// 是否启用（未启用时通知派发降级为 Noop）
	Enabled bool `mapstructure:"enabled"`
	// Broker 地址列表
	Brokers []string `mapstructure:"brokers"`
	// 短信指令主题
	SMSTopic string `mapstructure:"sms_topic"`
	// 最大重试次数
	MaxRetries int `mapstructure:"max_retries"`
	// 重试退避（毫秒）
	RetryBackoff int `mapstructure:"retry_backoff"`
}

// StoreConfig 门店配置
type StoreConfig struct {
	// 门店展示名称，打印在发票抬头
	Name string `mapstructure:"name"`
	// 收款 UPI ID，允许为空
	UPIID string `mapstructure:"upi_id"`
}

// InventoryConfig 库存配置
type InventoryConfig struct {
	// 负库存策略：strict 拒绝，permissive 允许欠库存
	Policy string `mapstructure:"policy"`
	// 低库存阈值（报表用）
	LowStockThreshold int `mapstructure:"low_stock_threshold"`
	// 启动播种目标商品数，0 表示不播种
	SeedTarget int `mapstructure:"seed_target"`
}

// BillingConfig 开票配置
type BillingConfig struct {
	// 发票导出目录
	InvoiceDir string `mapstructure:"invoice_dir"`
	// 备份导出目录
	BackupDir string `mapstructure:"backup_dir"`
}

// Load 从 TOML 文件加载配置，支持 APP_ 前缀环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置的有效性，未识别的取值在加载期即报错
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	switch c.Inventory.Policy {
	case "strict", "permissive":
	default:
		return fmt.Errorf("unknown inventory policy: %q", c.Inventory.Policy)
	}
	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must not be negative")
	}
	if c.Store.Name == "" {
		return fmt.Errorf("store name is required")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers are required when kafka is enabled")
		}
		if c.Kafka.SMSTopic == "" {
			return fmt.Errorf("kafka sms_topic is required when kafka is enabled")
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30)
	v.SetDefault("http.write_timeout", 30)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("store.name", "Smart Desk Mart")
	v.SetDefault("store.upi_id", "")

	v.SetDefault("inventory.policy", "strict")
	v.SetDefault("inventory.low_stock_threshold", 5)
	v.SetDefault("inventory.seed_target", 0)

	v.SetDefault("billing.invoice_dir", "invoices")
	v.SetDefault("billing.backup_dir", "backups")
}
