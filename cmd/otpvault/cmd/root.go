package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/otpvault/libotp-go/config"
	"github.com/otpvault/libotp-go/keeper"
)

var (
	cfgFile string
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "otpvault",
	Short: "One-time-pad encryption with a durable, never-reused pad",
	Long: `otpvault encrypts messages against a shared one-time pad. Pad bytes
are consumed exactly once: every encrypt atomically burns its range and
persists the new offset, so the same bytes can never be reused, even
across process restarts.

The cipher provides confidentiality only. Nothing detects tampering: a
flipped bit in a token silently corrupts the recovered plaintext.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default {data-dir}/otpvault.conf)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.otpvault)")
	rootCmd.PersistentFlags().String("backend", "", `pad store backend: "file" or "bolt"`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("otpvault")
	viper.AutomaticEnv()
}

// resolveDataDir returns the data directory from the flag or the
// default under the user's home.
func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".otpvault"), nil
}

// loadConfig builds the effective configuration from the config file,
// environment, and flags. A missing config file falls back to defaults.
func loadConfig() (config.Config, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return config.Config{}, err
	}

	path := cfgFile
	if path == "" {
		path = config.ConfigPath(dir)
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return config.Config{}, err
		}
		cfg = config.Default(dir)
	}
	cfg.DataDir = dir

	if backend := viper.GetString("backend"); backend != "" {
		cfg.Backend = backend
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, config.ValidateConfig(cfg)
}

// newLogger builds a console logger on stderr at the configured level,
// keeping stdout clean for tokens and plaintext.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// newKeeper builds a Keeper from the effective configuration.
// The caller must Close it.
func newKeeper() (*keeper.Keeper, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return keeper.New(cfg, logger)
}
