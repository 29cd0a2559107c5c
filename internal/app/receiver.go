package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quic-go/quic-go"
	"github.com/sirupsen/logrus"

	"github.com/tlqiu/quic3/internal/cert"
	"github.com/tlqiu/quic3/internal/config"
	"github.com/tlqiu/quic3/internal/protocol"
	"github.com/tlqiu/quic3/internal/transfer"
	"github.com/tlqiu/quic3/internal/transport"
	"github.com/tlqiu/quic3/pkg/utils"
)

// ReceiverOptions configures the receiver application behavior
type ReceiverOptions struct {
	CertPath  string // path to the TLS certificate, generated if missing
	KeyPath   string // path to the TLS private key, generated if missing
	OutputDir string // directory where received files are written
}

// ReceiverApp accepts QUIC connections and stores one file per incoming
// stream. Streams are handled fully in parallel; the only state they share
// is the immutable output directory path, so no locking is needed.
type ReceiverApp struct {
	config          *config.Config
	listenerService *transport.ListenerService
}

// NewReceiverApp creates a new receiver application
func NewReceiverApp(cfg *config.Config, listenerService *transport.ListenerService) *ReceiverApp {
	return &ReceiverApp{
		config:          cfg,
		listenerService: listenerService,
	}
}

// Run starts the receiver application with the given options. It returns
// when ctx is cancelled or the listener fails.
func (r *ReceiverApp) Run(ctx context.Context, opts *ReceiverOptions) error {
	if err := utils.EnsureDir(opts.OutputDir); err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	certPath, keyPath, err := cert.EnsureSelfSigned(opts.CertPath, opts.KeyPath, r.config.QUIC.Hosts)
	if err != nil {
		return fmt.Errorf("failed to provision TLS certificate: %w", err)
	}

	listener, err := r.listenerService.Listen(certPath, keyPath)
	if err != nil {
		return err
	}
	defer listener.Close()

	logrus.WithFields(logrus.Fields{
		"addr":   r.config.QUIC.Addr,
		"output": opts.OutputDir,
	}).Info("Server listening")

	for {
		conn, err := listener.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logrus.Info("Shutting down")
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}
		go r.handleConnection(ctx, conn, opts.OutputDir)
	}
}

// handleConnection accepts streams until the connection closes, spawning
// one independent handler per stream. Errors stay local to their stream.
func (r *ReceiverApp) handleConnection(ctx context.Context, conn quic.Connection, outputDir string) {
	logger := logrus.WithField("remote", conn.RemoteAddr().String())
	logger.Info("Accepted connection")

	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			logger.WithError(err).Debug("Connection closed")
			return
		}
		go r.handleStream(stream, outputDir, logger.WithField("stream", stream.StreamID()))
	}
}

// handleStream runs one stream's receive state machine: buffer deliveries
// until the header decodes, then stream every remaining byte into the
// destination file.
func (r *ReceiverApp) handleStream(stream quic.Stream, outputDir string, logger *logrus.Entry) {
	reassembler := transfer.NewReassembler(func(header protocol.FileHeader) (string, io.WriteCloser, error) {
		safeName := protocol.SanitizeFileName(header.FileName)
		destPath := filepath.Join(outputDir, safeName)

		file, err := os.Create(destPath)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create destination file: %w", err)
		}

		logger.WithFields(logrus.Fields{
			"file": header.FileName,
			"size": header.FileSize,
			"dest": destPath,
		}).Info("Receiving file")
		return destPath, file, nil
	})

	buf := make([]byte, r.config.Transfer.ChunkSize)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if pushErr := reassembler.Push(buf[:n]); pushErr != nil {
				logger.WithError(pushErr).Error("Failed to store file")
				reassembler.Abort()
				return
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.WithError(err).Error("Failed to read stream")
			reassembler.Abort()
			return
		}
	}

	summary, err := reassembler.Finish()
	if err != nil {
		logger.WithError(err).Error("Transfer failed")
		return
	}

	// Closing our send side lets the sender observe that the body was
	// fully consumed before it tears the connection down.
	_ = stream.Close()

	fields := logrus.Fields{
		"file":  summary.FileName,
		"dest":  summary.DestPath,
		"bytes": summary.BytesWritten,
	}
	if !summary.SizeMatches() {
		fields["expected"] = summary.DeclaredSize
		logger.WithFields(fields).Warn("Size mismatch, file retained")
		return
	}
	logger.WithFields(fields).Info("Received file")
}
