// Package app wires the transport, protocol, and transfer layers into the
// runnable sender and receiver applications.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tlqiu/quic3/internal/config"
	"github.com/tlqiu/quic3/internal/protocol"
	"github.com/tlqiu/quic3/internal/transport"
	"github.com/tlqiu/quic3/internal/ui"
	"github.com/tlqiu/quic3/pkg/utils"
)

// SenderOptions configures the sender application behavior
type SenderOptions struct {
	FilePath   string // Required: path to file to send
	ServerAddr string // server address, e.g. 127.0.0.1:4433
	ServerName string // expected TLS server name
	CACertPath string // server certificate used as trust root
}

// SenderApp implements sender application logic
type SenderApp struct {
	config        *config.Config
	dialerService *transport.DialerService
	progress      *ui.ProgressUI
}

// NewSenderApp creates a new sender application
func NewSenderApp(cfg *config.Config, dialerService *transport.DialerService, progress *ui.ProgressUI) *SenderApp {
	return &SenderApp{
		config:        cfg,
		dialerService: dialerService,
		progress:      progress,
	}
}

// Run sends one file: open a stream, write the header once, then forward
// the raw file bytes unmodified until EOF.
func (s *SenderApp) Run(ctx context.Context, opts *SenderOptions) error {
	stat, err := os.Stat(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", opts.FilePath)
	}

	fileName := filepath.Base(opts.FilePath)
	header, err := protocol.EncodeHeader(fileName, uint64(stat.Size()))
	if err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"server":      opts.ServerAddr,
		"server_name": opts.ServerName,
	}).Info("Connecting")

	conn, err := s.dialerService.Dial(ctx, opts.ServerAddr, opts.ServerName, opts.CACertPath)
	if err != nil {
		return err
	}
	defer conn.CloseWithError(0, "")

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if _, err := stream.Write(header); err != nil {
		return fmt.Errorf("failed to send header: %w", err)
	}

	file, err := os.Open(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	s.progress.StartSending(fileName, stat.Size())

	buf := make([]byte, s.config.Transfer.ChunkSize)
	var totalSent int64
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			if _, err := stream.Write(buf[:n]); err != nil {
				return fmt.Errorf("failed to send file data: %w", err)
			}
			totalSent += int64(n)
			s.progress.Add(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read file: %w", readErr)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}

	// The receiver closes its side of the stream once it has consumed the
	// whole body; draining until EOF keeps us from tearing the connection
	// down under in-flight data.
	if _, err := io.Copy(io.Discard, stream); err != nil {
		logrus.WithError(err).Debug("Stream closed by peer")
	}

	s.progress.Complete(totalSent)
	logrus.WithFields(logrus.Fields{
		"file":   fileName,
		"bytes":  totalSent,
		"size":   utils.FormatFileSize(totalSent),
		"server": opts.ServerAddr,
	}).Info("File sent")
	return nil
}
