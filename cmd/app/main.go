package main

import (
	"fmt"
	"os"

	"shipping/cmd"
	adapterhttp "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/locationrepo"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/parcelrepo"
	"shipping/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateCheckPendingShipmentsCommandHandler(),
		app.CreateSyncLocationsCommandHandler(),
		app.Logger(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		CourierBaseURL:   goDotEnvVariable("YALIDINE_BASE_URL"),
		CourierAPIID:     goDotEnvVariable("YALIDINE_API_ID"),
		CourierAPIToken:  goDotEnvVariable("YALIDINE_API_TOKEN"),
		AutoCreateParcel: goDotEnvVariable("PARCEL_AUTO_CREATE") == "true",
		AdminAPIToken:    goDotEnvVariable("ADMIN_API_TOKEN"),
		ViewerAPIToken:   goDotEnvVariable("VIEWER_API_TOKEN"),
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

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&parcelrepo.ParcelDTO{},
		&locationrepo.RegionDTO{},
		&locationrepo.SubRegionDTO{},
		&locationrepo.PickupPointDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server := adapterhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateCheckPendingShipmentsCommandHandler(),
		app.CreateSyncLocationsCommandHandler(),
		app.CreateGetOrderViewQueryHandler(),
		app.CreateGetActiveRegionsQueryHandler(),
	)

	tokens := map[string]adapterhttp.Role{}
	if configs.AdminAPIToken != "" {
		tokens[configs.AdminAPIToken] = adapterhttp.RoleAdmin
	}
	if configs.ViewerAPIToken != "" {
		tokens[configs.ViewerAPIToken] = adapterhttp.RoleViewer
	}

	e := echo.New()
	server.RegisterRoutes(e, tokens)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
