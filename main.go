package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-catalog-backend/api"
	"github.com/rpupo63/project-catalog-backend/config"
	"github.com/rpupo63/project-catalog-backend/database"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/rpupo63/project-catalog-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	opts, err := database.OptionsFromConfig(c)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}
	log.Info().Str("dbType", opts.Type).Msg("connecting to database")

	db, err := database.Open(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	// If generating models, run migration + generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		if err := models.GenerateModels(db, config.GetString(c, "GENERATE_OUT_PATH", "./generated")); err != nil {
			log.Fatal().Err(err).Msg("model generation failed")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		mismatches, err := models.GenerateColumnMismatchReport(db, os.Stdout)
		if err != nil {
			log.Fatal().Err(err).Msg("column report failed")
		}
		if mismatches > 0 {
			os.Exit(1)
		}
		return
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	currentDB := database.New(db)
	defer func() {
		if err := currentDB.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminPassword, err := resolveAdminPassword(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("could not resolve admin password")
	}

	images, err := storage.New(ctx, storage.ConfigFromMap(c))
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize image storage")
	}

	// buffered so Start can still report ErrServerClosed after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB,
		api.WithConfig(c),
		api.WithAdminPassword(adminPassword),
		api.WithImageStore(images),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// resolveAdminPassword reads ADMIN_PASSWORD, or fetches it from SSM when ADMIN_PASSWORD_SSM_PARAM is set.
func resolveAdminPassword(ctx context.Context, c map[string]string) (string, error) {
	if config.GetString(c, "ADMIN_PASSWORD_SSM_PARAM", "") == "" {
		return config.ResolveSecret(ctx, c, "ADMIN_PASSWORD", nil)
	}
	client, err := config.NewSSMClient(ctx, config.GetString(c, "AWS_REGION", ""))
	if err != nil {
		return "", err
	}
	return config.ResolveSecret(ctx, c, "ADMIN_PASSWORD", client)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
