package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"roodi/cmd"
	httpadapter "roodi/internal/adapters/in/http"
	"roodi/internal/adapters/out/postgres/bairrorepo"
	"roodi/internal/adapters/out/postgres/offerrepo"
	"roodi/internal/adapters/out/postgres/orderrepo"
	"roodi/internal/adapters/out/postgres/pricingrepo"
	"roodi/internal/adapters/out/postgres/quoterepo"
	"roodi/internal/adapters/out/postgres/riderrepo"
	"roodi/internal/adapters/out/postgres/walletrepo"
	"roodi/internal/jobs"
)

func main() {
	configs := getConfigs()

	db := mustConnectDB(configs)
	app := cmd.NewCompositionRoot(configs, db)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		app.CreateExpireOffersCommandHandler(),
		app.CreateAdvanceDispatchCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		Timezone:             goDotEnvVariable("TIMEZONE"),
		OfferTTLSeconds:      intEnvVariable("OFFER_TTL_SECONDS", 120),
		TomTomMatrixEndpoint: goDotEnvVariable("TOMTOM_MATRIX_ENDPOINT"),
		TomTomAPIKey:         goDotEnvVariable("TOMTOM_API_KEY"),
		OpenWeatherEndpoint:  goDotEnvVariable("OPENWEATHER_ENDPOINT"),
		OpenWeatherAPIKey:    goDotEnvVariable("OPENWEATHER_API_KEY"),
		MetNoEndpoint:        goDotEnvVariable("MET_NO_ENDPOINT"),
		RainThresholdMmH:     floatEnvVariable("RAIN_THRESHOLD_MMH", 0.2),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func floatEnvVariable(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderEventDTO{},
		&offerrepo.OfferDTO{},
		&quoterepo.QuoteDTO{},
		&quoterepo.AttemptDTO{},
		&pricingrepo.RuleVersionDTO{},
		&pricingrepo.ZoneRuleDTO{},
		&pricingrepo.UrgencyAddonDTO{},
		&pricingrepo.ConditionalAddonDTO{},
		&pricingrepo.PeakWindowDTO{},
		&pricingrepo.HolidayDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.LedgerEntryDTO{},
		&bairrorepo.BairroDTO{},
		&bairrorepo.MatrixEntryDTO{},
		&riderrepo.RiderDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	server := httpadapter.NewServer(
		app.CreateCreateQuoteCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateOpenDispatchCommandHandler(),
		app.CreateAppendOrderEventCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateAcceptOfferCommandHandler(),
		app.CreateRejectOfferCommandHandler(),
		app.CreateReplacePricingRulesCommandHandler(),
		app.CreateApplyCreditsAdjustmentCommandHandler(),
		app.CreateGetCurrentOfferQueryHandler(),
		app.CreateGetPricingRulesQueryHandler(),
		logger,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
