package service

import (
	"time"

	"github.com/InfoRubix/stationery/internal/config"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services 服务集合
type Services struct {
	Auth    *AuthService
	Item    *ItemService
	Stock   *StockService
	Order   *OrderService
	Planner *PlannerService
	Expense *ExpenseService
	Asset   *AssetService
	Sheet   *SheetService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	// 初始化MinIO客户端
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("minio client init failed, asset uploads disabled", zap.Error(err))
			minioClient = nil
		}
	}

	// 订单时间戳的本地时区
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC",
			zap.String("timezone", cfg.App.Timezone), zap.Error(err))
		loc = time.UTC
	}

	stockSvc := NewStockService(repos.Item, rdb, logger)
	itemSvc := NewItemService(repos.Item, repos.Price, stockSvc, rdb, logger)

	return &Services{
		Auth:    NewAuthService(cfg),
		Item:    itemSvc,
		Stock:   stockSvc,
		Order:   NewOrderService(repos.Order, stockSvc, loc, logger),
		Planner: NewPlannerService(repos.Item, repos.Price),
		Expense: NewExpenseService(repos.Expense, repos.Price, stockSvc, logger),
		Asset:   NewAssetService(minioClient, cfg.MinIO.Bucket, cfg.MinIO.BaseURL),
		Sheet:   NewSheetService(repos, itemSvc, logger),
	}
}
