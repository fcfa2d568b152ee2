package routes

import (
	"context"
	"log"
	"strconv"

	_ "roofing_crm/docs" // This will be auto-generated
	"roofing_crm/internal/adapter/http/handlers"
	"roofing_crm/internal/adapter/http/middleware"
	repository2 "roofing_crm/internal/adapter/persistence/repository"
	"roofing_crm/internal/infrastructure/config"
	"roofing_crm/internal/infrastructure/database"
	"roofing_crm/internal/infrastructure/logging"
	"roofing_crm/internal/infrastructure/payments"
	"roofing_crm/internal/usecase"
	"roofing_crm/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

var router = gin.Default()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	setMiddlewares(logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := getRoutes(cfg, logger); err != nil {
		logger.Fatal("[app] failed wiring routes", zap.Error(err))
	}

	logger.Info("[app] listening", zap.Int("port", cfg.Port))
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		logger.Fatal("[app] failed to startup the application", zap.Error(err))
	}
}

func getRoutes(cfg config.Config, logger *zap.Logger) error {
	ddb, err := database.ConnectDynamoDB(context.Background())
	if err != nil {
		return err
	}

	dealRepo := repository2.NewDealDynamoRepository(ddb)
	pinRepo := repository2.NewPinDynamoRepository(ddb)
	repRepo := repository2.NewRepDynamoRepository(ddb)
	paymentRepo := repository2.NewInvoicePaymentDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, logger)
	if err != nil {
		logger.Warn("[app] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mpGateway
	}

	dealUseCase := usecase.NewDealWorkflowUseCase(dealRepo, pinRepo, repRepo, cfg.Commission, logger)
	pinUseCase := usecase.NewPinUseCase(pinRepo, dealUseCase, logger)
	paymentUseCase := usecase.NewPaymentRequestUseCase(paymentRepo, dealUseCase, paymentGateway, logger)

	dealHandler := handlers.NewDealHandler(dealUseCase, logger)
	pinHandler := handlers.NewPinHandler(pinUseCase, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, logger)

	if cfg.JWTSecret == "" {
		logger.Warn("[app] JWT_SECRET is empty; every authenticated route will reject")
	}

	v1 := router.Group("/v1")
	v1.Use(middleware.Auth([]byte(cfg.JWTSecret)))
	addPingRoutes(v1)
	addDealRoutes(v1, dealHandler, paymentHandler)
	addPinRoutes(v1, pinHandler)
	return nil
}

func setMiddlewares(logger *zap.Logger) {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("[app] recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(500)
	}))
}
