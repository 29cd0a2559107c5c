package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tlqiu/quic3/internal/app"
	"github.com/tlqiu/quic3/internal/transport"
)

type ServeFlags struct {
	Addr      string
	CertPath  string
	KeyPath   string
	OutputDir string
}

var serveFlags ServeFlags

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Receive files (runs the QUIC server)",
	Long: `Run the receiving server. This will:

1. Generate a self-signed TLS certificate if one does not exist yet
2. Listen for QUIC connections on the configured address
3. Store one file per incoming stream in the output directory

Received file names are sanitized to their last path component, so a sender
cannot write outside the output directory. A file with the same name as an
earlier transfer is overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReceiverApp(&serveFlags); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Define flags with struct binding
	serveCmd.Flags().StringVar(&serveFlags.Addr, "addr", "", "address to listen on (default 0.0.0.0:4433)")
	serveCmd.Flags().StringVar(&serveFlags.CertPath, "cert", "", "path to the TLS certificate, generated if missing (default certs/server-cert.pem)")
	serveCmd.Flags().StringVar(&serveFlags.KeyPath, "key", "", "path to the TLS private key, generated if missing (default certs/server-key.pem)")
	serveCmd.Flags().StringVarP(&serveFlags.OutputDir, "output", "o", "", "directory where received files are written (default received)")

	// Bind flags to viper for environment variable support
	viper.BindPFlag("quic.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("quic.cert_path", serveCmd.Flags().Lookup("cert"))
	viper.BindPFlag("quic.key_path", serveCmd.Flags().Lookup("key"))
	viper.BindPFlag("transfer.output_dir", serveCmd.Flags().Lookup("output"))
}

// runReceiverApp creates and runs the receiver application
func runReceiverApp(flags *ServeFlags) error {
	ctx := createContext()

	// Flags override config file and environment values
	if flags.Addr != "" {
		cfg.QUIC.Addr = flags.Addr
	}
	if flags.CertPath != "" {
		cfg.QUIC.CertPath = flags.CertPath
	}
	if flags.KeyPath != "" {
		cfg.QUIC.KeyPath = flags.KeyPath
	}
	if flags.OutputDir != "" {
		cfg.Transfer.OutputDir = flags.OutputDir
	}

	opts := &app.ReceiverOptions{
		CertPath:  cfg.QUIC.CertPath,
		KeyPath:   cfg.QUIC.KeyPath,
		OutputDir: cfg.Transfer.OutputDir,
	}

	listenerService := transport.NewListenerService(cfg)
	receiverApp := app.NewReceiverApp(cfg, listenerService)
	return receiverApp.Run(ctx, opts)
}
