// Package commands implements the secondhand-admin command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/XiPingo/secondhand/internal/assets"
	"github.com/XiPingo/secondhand/internal/config"
	"github.com/XiPingo/secondhand/internal/logging"
	"github.com/XiPingo/secondhand/internal/repository"
	"github.com/XiPingo/secondhand/internal/repository/jsonfile"
	"github.com/XiPingo/secondhand/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "secondhand-admin",
	Short: "Administration tool for the secondhand market",
	Long: `secondhand-admin manages the secondhand market documents from the command
line: inspect accounts and listings, delete them with the same cascade rules
the application enforces, and check or repair the documents and image
directory.

The tool reads the same configuration as the application, so it operates on
the same users.json and products.json unless told otherwise.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to the terminal")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// env bundles the opened store and the services built over it. Commands
// open one env, run against it, and close it before returning.
type env struct {
	users repository.UserRepository
	admin *service.AdminService
	maint *service.MaintenanceService
	close func()
}

// openEnv loads configuration and opens the documents the same way the
// application does, so every command sees the bootstrapped admin account
// and the same cascade rules.
func openEnv() (*env, error) {
	// A .env beside the binary may carry SECONDHAND_* overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if verbose {
		// Route debug logging to the terminal instead of the log file.
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "console"
		cfg.Logging.Output = "stderr"
	}

	logger, logClose, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	store, err := jsonfile.Open(jsonfile.Config{
		UsersPath:     cfg.Data.UsersFile,
		ProductsPath:  cfg.Data.ProductsFile,
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
		AdminNickname: cfg.Admin.Nickname,
	}, logger)
	if err != nil {
		_ = logClose.Close()
		return nil, err
	}

	library, err := assets.New(cfg.Assets.Dir, logger)
	if err != nil {
		_ = logClose.Close()
		return nil, err
	}

	userRepo := jsonfile.NewUserRepository(store)
	productRepo := jsonfile.NewProductRepository(store)

	return &env{
		users: userRepo,
		admin: service.NewAdminService(userRepo, productRepo, logger),
		maint: service.NewMaintenanceService(userRepo, productRepo, library, logger),
		close: func() { _ = logClose.Close() },
	}, nil
}
