package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	billingapp "github.com/wyfcoding/retailpos/internal/billing/application"
	billingdomain "github.com/wyfcoding/retailpos/internal/billing/domain"
	"github.com/wyfcoding/retailpos/internal/billing/infrastructure/dispatcher"
	"github.com/wyfcoding/retailpos/internal/billing/infrastructure/export"
	billingmysql "github.com/wyfcoding/retailpos/internal/billing/infrastructure/persistence/mysql"
	billinghttp "github.com/wyfcoding/retailpos/internal/billing/interfaces/http"
	cartapp "github.com/wyfcoding/retailpos/internal/cart/application"
	catalogapp "github.com/wyfcoding/retailpos/internal/catalog/application"
	catalogmysql "github.com/wyfcoding/retailpos/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/retailpos/internal/catalog/interfaces/http"
	inventoryapp "github.com/wyfcoding/retailpos/internal/inventory/application"
	inventorydomain "github.com/wyfcoding/retailpos/internal/inventory/domain"
	inventorymysql "github.com/wyfcoding/retailpos/internal/inventory/infrastructure/persistence/mysql"
	inventoryhttp "github.com/wyfcoding/retailpos/internal/inventory/interfaces/http"
	reportingapp "github.com/wyfcoding/retailpos/internal/reporting/application"
	reportinghttp "github.com/wyfcoding/retailpos/internal/reporting/interfaces/http"
	"github.com/wyfcoding/retailpos/pkg/config"
	"github.com/wyfcoding/retailpos/pkg/logger"
	"github.com/wyfcoding/retailpos/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/pos/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	if err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx := context.Background()

	db, err := gorm.Open(gorm_mysql.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal(ctx, "connect database failed", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal(ctx, "get sql db failed", "error", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	policy, err := inventorydomain.ParsePolicy(cfg.Inventory.Policy)
	if err != nil {
		logger.Fatal(ctx, "parse inventory policy failed", "error", err)
	}

	productRepo := catalogmysql.NewProductRepository(db)
	invoiceRepo := billingmysql.NewInvoiceRepository(db)
	ledger := inventorymysql.NewStockLedger(db, policy)

	catalogService, err := catalogapp.NewCatalogService(productRepo)
	if err != nil {
		logger.Fatal(ctx, "catalog enumeration invalid", "error", err)
	}

	if cfg.Inventory.SeedTarget > 0 {
		seeder := catalogapp.NewSeeder(productRepo, time.Now().UnixNano())
		if err := seeder.Seed(ctx, cfg.Inventory.SeedTarget); err != nil {
			logger.Fatal(ctx, "seed catalog failed", "error", err)
		}
	}

	var disp billingdomain.Dispatcher
	var producer *mq.Producer
	backupStore := dispatcher.NewFileBackupStore(cfg.Billing.BackupDir)
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "create kafka producer failed", "error", err)
		}
		disp = dispatcher.New(dispatcher.NewKafkaNotifier(producer, cfg.Kafka.SMSTopic), backupStore)
	} else {
		disp = dispatcher.New(nil, backupStore)
	}

	cartService := cartapp.NewCartService(productRepo)
	inventoryService := inventoryapp.NewInventoryService(ledger)
	reportService := reportingapp.NewReportService(productRepo, invoiceRepo, cfg.Inventory.LowStockThreshold)
	finalizer := billingapp.NewFinalizerService(
		invoiceRepo,
		productRepo,
		ledger,
		disp,
		export.NewInvoiceWriter(cfg.Billing.InvoiceDir),
		export.NewStateExporter(productRepo, invoiceRepo),
		cfg.Store.Name,
	)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.GET("/sys/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName, "version": cfg.Version})
	})

	cataloghttp.NewCatalogHandler(catalogService).RegisterRoutes(router)
	billinghttp.NewBillingHandler(cartService, finalizer).RegisterRoutes(router)
	inventoryhttp.NewInventoryHandler(inventoryService).RegisterRoutes(router)
	reportinghttp.NewReportHandler(reportService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown failed", "error", err)
	}
	if producer != nil {
		_ = producer.Close()
	}
}
