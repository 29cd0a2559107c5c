package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tlqiu/quic3/internal/config"
)

var (
	cfg     *config.Config
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quic3",
	Short: "quic3 - single-file transfer over QUIC",
	Long: `quic3 transfers a single named file from a sender to a receiver over a
TLS-secured QUIC connection.

The receiver runs as a server, provisioning its own self-signed certificate
and writing every received file into an output directory. The sender dials
the server directly, trusting that same certificate.

Usage:
  Receive files:  quic3 serve --output ./received
  Send a file:    quic3 send --file ./report.pdf --server 127.0.0.1:4433`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize viper configuration
		initConfig()

		logrus.SetLevel(logrus.InfoLevel)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		// Initialize configuration
		cfg = config.NewDefaultConfig()
		applyConfigOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quic3.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Set up viper environment variable support
	viper.SetEnvPrefix("QUIC3")
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			logrus.Warnf("Could not find home directory: %v", err)
			return
		}

		// Search config in home directory with name ".quic3" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".quic3")
	}

	// Read in environment variables that match
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// applyConfigOverrides layers viper values (config file or environment) on
// top of the defaults. Flags still win because commands read their own flag
// values after this runs.
func applyConfigOverrides(cfg *config.Config) {
	if v := viper.GetString("quic.addr"); v != "" {
		cfg.QUIC.Addr = v
	}
	if v := viper.GetString("quic.server_name"); v != "" {
		cfg.QUIC.ServerName = v
	}
	if v := viper.GetString("quic.cert_path"); v != "" {
		cfg.QUIC.CertPath = v
	}
	if v := viper.GetString("quic.key_path"); v != "" {
		cfg.QUIC.KeyPath = v
	}
	if v := viper.GetStringSlice("quic.hosts"); len(v) > 0 {
		cfg.QUIC.Hosts = v
	}
	if v := viper.GetInt("transfer.chunk_size"); v > 0 {
		cfg.Transfer.ChunkSize = v
	}
	if v := viper.GetString("transfer.output_dir"); v != "" {
		cfg.Transfer.OutputDir = v
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// createContext creates a context that cancels on interrupt signals
func createContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	return ctx
}
