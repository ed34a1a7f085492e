// Package main is the entry point for the secondhand market.
// Secondhand is a single-user desktop marketplace for trading used goods,
// backed by two JSON documents on local disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/XiPingo/secondhand/cmd/secondhand/tui"
	"github.com/XiPingo/secondhand/internal/assets"
	"github.com/XiPingo/secondhand/internal/config"
	"github.com/XiPingo/secondhand/internal/logging"
	"github.com/XiPingo/secondhand/internal/repository/jsonfile"
	"github.com/XiPingo/secondhand/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (YAML)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("secondhand %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		return
	}

	// A .env beside the binary may carry SECONDHAND_* overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "secondhand: %v\n", err)
		os.Exit(1)
	}

	logger, logClose, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "secondhand: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Str("users_file", cfg.Data.UsersFile).
		Str("products_file", cfg.Data.ProductsFile).
		Msg("Starting secondhand market")

	store, err := jsonfile.Open(jsonfile.Config{
		UsersPath:     cfg.Data.UsersFile,
		ProductsPath:  cfg.Data.ProductsFile,
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
		AdminNickname: cfg.Admin.Nickname,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open document store")
		fmt.Fprintf(os.Stderr, "secondhand: %v\n", err)
		os.Exit(1)
	}

	library, err := assets.New(cfg.Assets.Dir, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to prepare image library")
		fmt.Fprintf(os.Stderr, "secondhand: %v\n", err)
		os.Exit(1)
	}

	userRepo := jsonfile.NewUserRepository(store)
	productRepo := jsonfile.NewProductRepository(store)

	svc := tui.Services{
		Accounts:  service.NewAccountService(userRepo, logger),
		Catalog:   service.NewCatalogService(productRepo, userRepo, logger),
		Favorites: service.NewFavoriteService(userRepo, productRepo, logger),
		Admin:     service.NewAdminService(userRepo, productRepo, logger),
		Library:   library,
	}

	if err := tui.Run(svc, logger); err != nil {
		logger.Error().Err(err).Msg("Interface exited with error")
		fmt.Fprintf(os.Stderr, "secondhand: %v\n", err)
		os.Exit(1)
	}

	logger.Info().Msg("Shutting down")
}
