package main

import (
	"time"

	"credchain/src/config"
	"credchain/src/credential"
	"credchain/src/database"
	"credchain/src/encryption"
	"credchain/src/logger"
	"credchain/src/middleware"
	"credchain/src/minting"
	"credchain/src/queues"
	"credchain/src/register"
	"credchain/src/superadmin"
	"credchain/src/university"

	"github.com/gin-gonic/gin"
)

// @title           CredChain Platform API
// @version         1.0
// @description     University onboarding, wallet provisioning and NFT credential issuance
// @host localhost:4000
// @BasePath /api
func main() {
	logger.InitDefaultLogger(logger.GlobalLoggerConfig{})
	log := logger.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "Failed to load configuration")
	}

	db, err := database.ConnectToDatabase(cfg.Database)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal(err, "Failed to run migrations")
	}

	keyring, err := encryption.NewKeyring(cfg.MasterEncryptionKey, cfg.SecondaryDecryptionKeys)
	if err != nil {
		log.Fatal(err, "Failed to build encryption keyring")
	}

	sessions := middleware.NewSessionIssuer(cfg.Session.Secret, time.Duration(cfg.Session.TTLHours)*time.Hour)
	minter := minting.NewClient(cfg.MintService.BaseURL, cfg.MintService.MaxRetries, time.Duration(cfg.MintService.TimeoutSec)*time.Second)

	// ----- SERVICES -----
	registerService := register.NewService(register.NewRepository(db))
	superadminService := superadmin.NewService(superadmin.NewRepository(db), keyring, cfg.APIDocsURL)
	universityService := university.NewService(university.NewRepository(db), cfg.APIDocsURL)

	var publisher credential.Publisher
	var rabbitPublisher *queues.RabbitPublisher
	if cfg.Rabbitmq.Enabled {
		rabbitPublisher, err = queues.NewRabbitPublisher(cfg.Rabbitmq.URL, cfg.Rabbitmq.Exchange, cfg.Rabbitmq.IssuedQueue, cfg.Rabbitmq.IssuedKey)
		if err != nil {
			log.Fatal(err, "Failed to connect to RabbitMQ")
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	}

	credentialService := credential.NewService(credential.NewRepository(db), minter, publisher)

	// ----- MINT STATUS CONSUMER -----
	if rabbitPublisher != nil {
		consumer, err := queues.NewRabbitConsumer(rabbitPublisher.Conn, cfg.Rabbitmq.MintStatusQueue)
		if err != nil {
			log.Fatal(err, "Failed to open mint status consumer channel")
		}
		if err := consumer.StartConsume(credential.MintStatusHandler(credentialService)); err != nil {
			log.Fatal(err, "Failed to start mint status consumer")
		}
		log.Infof("Consuming mint confirmations from %s", cfg.Rabbitmq.MintStatusQueue)
	}

	// ----- MIDDLEWARE -----
	requireAdmin := middleware.RequireAdminSession(db, sessions)
	requireSuperAdmin := middleware.RequireSuperAdminSession(db, sessions)
	requireToken := middleware.RequireAPIToken(db)
	requireInternal := middleware.RequireInternal(cfg.InternalServiceToken)

	// ----- ROUTER -----
	engine := gin.Default()
	engine.Use(middleware.CORS(cfg.FrontendOrigin))
	engine.MaxMultipartMemory = 8 << 20

	// Verification documents are retained and reviewed from the console.
	engine.Static("/storage", cfg.StorageDir)

	api := engine.Group("/api")
	register.RegisterRoutes(api, register.NewHandler(registerService, sessions, cfg.StorageDir))
	superadmin.RegisterRoutes(api, superadmin.NewHandler(superadminService, sessions), requireSuperAdmin)
	university.RegisterRoutes(api, university.NewHandler(universityService, sessions), requireAdmin, requireToken)
	credential.RegisterRoutes(api, credential.NewHandler(credentialService, cfg.UploadDir), requireToken, requireInternal)

	log.Infof("Server running at 0.0.0.0:%s", cfg.Port)
	if err := engine.Run("0.0.0.0:" + cfg.Port); err != nil {
		log.Fatal(err, "Server stopped")
	}
}
