package main

import (
	"math/big"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/pkg/rabbitmq"
	"github.com/FinCube-23/transferPoC-sub001/pkg/rest"
	"github.com/FinCube-23/transferPoC-sub001/pkg/utilities"
	"github.com/FinCube-23/transferPoC-sub001/src/batch"
	"github.com/FinCube-23/transferPoC-sub001/src/database"
	"github.com/FinCube-23/transferPoC-sub001/src/health"
	"github.com/FinCube-23/transferPoC-sub001/src/organization"
	"github.com/FinCube-23/transferPoC-sub001/src/proof"
	"github.com/FinCube-23/transferPoC-sub001/src/queues"
	"github.com/FinCube-23/transferPoC-sub001/src/user"
)

const serviceName = "membership-proof-api"

func main() {
	logger.InitDefaultLogger(logger.GlobalLoggerConfig{
		Args: []struct {
			Key   string
			Value string
		}{
			{"application", serviceName},
		},
	})
	mainLogger := logger.Default()

	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	mainLogger.Infof("Preparing to load config from %s ...", configPath)
	config, err := utilities.ReadConfig[AppConfigJson, AppConfig](configPath)
	if err != nil {
		mainLogger.Fatal(err, "Failed to load config")
	}

	zerolog.SetGlobalLevel(config.LoggerConf.LogLevel)

	verifierKey, ok := new(big.Int).SetString(config.ProverConf.VerifierKey, 10)
	if !ok || verifierKey.Sign() == 0 {
		mainLogger.Fatal(nil, "prover.verifier_key must be a non-zero decimal integer")
	}

	// ----- DATABASE + MIGRATIONS -----
	database.InitializeDatabaseConnection(config.DatabaseConf.ConnectionString)
	if err := database.AutoMigrate(database.GetDatabaseConnection()); err != nil {
		mainLogger.Fatal(err, "Migrating database failed")
	}

	// ----- REPOSITORIES + SERVICES -----
	orgRepo := organization.NewRepository()
	userRepo := user.NewRepository()
	batchRepo := batch.NewRepository()

	orgService := organization.NewService(orgRepo)
	batchService := batch.NewService(batchRepo, userRepo, orgRepo)
	proofService := proof.NewService(orgRepo, userRepo, batchRepo, proof.NewGnarkProver(), verifierKey)

	orgHandler := organization.NewHandler(orgService)
	batchHandler := batch.NewHandler(batchService)
	userHandler := user.NewHandler(userRepo)
	proofHandler := proof.NewHandler(proofService)

	// ----- QUEUE CONSUMER -----
	consumer := queues.NewConsumer(queues.ConsumerConfig{
		URL:           config.RabbitmqConf.URL(),
		ConsumerTag:   config.RabbitmqConf.ConsumerTag,
		PrefetchCount: config.RabbitmqConf.PrefetchCount,
	}, proofService)

	// ----- RABBITMQ LOGGING SINK -----
	attachLogSink(config.RabbitmqConf)

	healthHandler := health.NewHandler(serviceName, database.Ping, consumer.IsConnected)

	// ----- ROUTES -----
	router := gin.Default()
	router.Use(rest.CORSMiddleware("*"))
	rest.RegisterRoutes(router,
		rest.NewRoute(rest.POST, "api", "proof/generate", proofHandler.GenerateProof),
		rest.NewRoute(rest.GET, "api", "health", healthHandler.GetHealth),

		rest.NewRoute(rest.POST, "api", "organization", orgHandler.CreateOrganization),
		rest.NewRoute(rest.GET, "api", "organization/:id", orgHandler.GetOrganization),

		rest.NewRoute(rest.POST, "api", "batch", batchHandler.CreateBatch),
		rest.NewRoute(rest.GET, "api", "batch/:id", batchHandler.GetBatch),
		rest.NewRoute(rest.POST, "api", "batch/:id/members", batchHandler.RegisterMember),

		rest.NewRoute(rest.GET, "api", "user/:id", userHandler.GetUser),
	)

	app := &Application{
		Logger:   mainLogger,
		Addr:     listenAddr(config.RestConf.Port),
		Engine:   router,
		Consumer: consumer,
	}
	app.Start()
}

// attachLogSink ships WARN+ log lines to the broker when a LogPublisher is
// configured. The sink connection is separate from the consumer's, which
// exclusively owns its own.
func attachLogSink(cfg rabbitmq.RabbitmqConfig) {
	mainLogger := logger.Default()

	var publisherConfig *rabbitmq.RabbitmqPublisherConfig
	for i := range cfg.PublishersConfig {
		if cfg.PublishersConfig[i].PublisherAlias == "LogPublisher" {
			publisherConfig = &cfg.PublishersConfig[i]
			break
		}
	}
	if publisherConfig == nil {
		return
	}

	conn, err := rabbitmq.ConnectToRabbitmq(cfg.URL())
	if err != nil {
		mainLogger.Warnf("Log sink disabled, broker unreachable: %v", err)
		return
	}

	publisher, err := rabbitmq.NewPublisher(conn, *publisherConfig)
	if err != nil {
		mainLogger.Warnf("Log sink disabled, channel setup failed: %v", err)
		return
	}

	logger.AddSinkToLoggerInstance(mainLogger, rabbitmq.CreateRabbitmqLoggerSink(publisher))
	mainLogger.Info("RabbitMQ log sink attached")
}
