package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tlqiu/quic3/internal/app"
	"github.com/tlqiu/quic3/internal/transport"
	"github.com/tlqiu/quic3/internal/ui"
)

type SendFlags struct {
	FilePath   string
	ServerAddr string
	ServerName string
	CACertPath string
}

var sendFlags SendFlags

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a file to a receiving server",
	Long: `Send a file to a running server over QUIC. This will:

1. Connect to the server, validating its TLS identity against --ca-cert
2. Open a stream and send the file header (name and size)
3. Stream the raw file bytes and close the stream

Use --file to specify the path of the file you want to send. The server's
certificate file must be reachable locally; it acts as the trust root.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateSendFlags(&sendFlags)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSenderApp(&sendFlags); err != nil {
			logrus.Fatalf("Sender failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	// Define flags with struct binding
	sendCmd.Flags().StringVarP(&sendFlags.FilePath, "file", "f", "", "Path to file to send (required)")
	sendCmd.Flags().StringVarP(&sendFlags.ServerAddr, "server", "s", "127.0.0.1:4433", "Server address")
	sendCmd.Flags().StringVar(&sendFlags.ServerName, "server-name", "", "Expected TLS server name (default localhost)")
	sendCmd.Flags().StringVar(&sendFlags.CACertPath, "ca-cert", "", "Path to the server certificate used for validation (default certs/server-cert.pem)")

	// Mark required flags
	sendCmd.MarkFlagRequired("file")

	// Bind flags to viper for environment variable support
	viper.BindPFlag("send.file", sendCmd.Flags().Lookup("file"))
	viper.BindPFlag("send.server", sendCmd.Flags().Lookup("server"))
}

// validateSendFlags validates the send command flags
func validateSendFlags(flags *SendFlags) error {
	if flags.FilePath == "" {
		return fmt.Errorf("file path is required")
	}
	if _, err := os.Stat(flags.FilePath); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", flags.FilePath)
	}
	return nil
}

// runSenderApp creates and runs the sender application
func runSenderApp(flags *SendFlags) error {
	ctx := createContext()

	serverName := flags.ServerName
	if serverName == "" {
		serverName = cfg.QUIC.ServerName
	}
	caCertPath := flags.CACertPath
	if caCertPath == "" {
		caCertPath = cfg.QUIC.CertPath
	}

	if _, err := os.Stat(caCertPath); os.IsNotExist(err) {
		return fmt.Errorf("CA certificate not found at %s", caCertPath)
	}

	opts := &app.SenderOptions{
		FilePath:   flags.FilePath,
		ServerAddr: flags.ServerAddr,
		ServerName: serverName,
		CACertPath: caCertPath,
	}

	dialerService := transport.NewDialerService()
	senderApp := app.NewSenderApp(cfg, dialerService, ui.NewProgressUI())
	return senderApp.Run(ctx, opts)
}
