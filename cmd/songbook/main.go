// Command songbook runs the song record service and its operator
// tooling.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sethvargo/go-retry"
	"github.com/urfave/cli/v2"

	"github.com/jacentio/songbook/api"
	"github.com/jacentio/songbook/config"
	"github.com/jacentio/songbook/songs"
	"github.com/jacentio/songbook/store"
)

// Version is stamped at build time:
//
//	go build -ldflags "-X main.Version=v1.2.3" ./cmd/songbook
var Version = "dev"

const (
	// startupWait bounds how long serve waits for the store to answer
	// before giving up.
	startupWait = 30 * time.Second

	// shutdownWait bounds graceful shutdown after SIGINT or SIGTERM.
	shutdownWait = 30 * time.Second
)

func main() {
	app := &cli.App{
		Name:    "songbook",
		Usage:   "CRUD service for song records backed by DynamoDB",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serveAction,
			},
			{
				Name:   "create-table",
				Usage:  "Create the songs table if it does not exist",
				Action: createTableAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Fail fast when the table never becomes reachable instead of
	// serving guaranteed 500s.
	if err := waitForStore(ctx, st, logger); err != nil {
		return fmt.Errorf("store not reachable: %w", err)
	}

	service := songs.NewService(st, logger)
	server := api.NewServer(api.ServerConfig{
		Host:           cfg.Host,
		Port:           cfg.Port,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Version:        Version,
	}, service, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", server.Addr(),
			"table", cfg.TableName,
			"region", cfg.Region,
		)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func createTableAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	ctx := c.Context
	st, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	created, err := st.EnsureTable(ctx)
	if err != nil {
		return err
	}
	if !created {
		logger.Info("table already exists", "table", cfg.TableName)
	} else {
		logger.Info("table created", "table", cfg.TableName)
		if err := st.EnablePointInTimeRecovery(ctx); err != nil {
			logger.Warn("could not enable point-in-time recovery", "error", err)
		} else {
			logger.Info("point-in-time recovery enabled", "table", cfg.TableName)
		}
	}

	status, err := st.DescribeStatus(ctx)
	if err != nil {
		return err
	}
	logger.Info("table status",
		"table", status.Name,
		"status", status.Status,
		"items", status.ItemCount,
	)
	return nil
}

// buildStore loads the AWS configuration and wires the DynamoDB-backed
// store. Static credentials apply only when both halves are set.
func buildStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return store.New(dynamodb.NewFromConfig(awscfg), cfg.TableName), nil
}

// waitForStore blocks until the store answers a ping, backing off
// exponentially up to startupWait.
func waitForStore(ctx context.Context, st *store.Store, logger *slog.Logger) error {
	backoff := retry.WithMaxDuration(startupWait, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := st.Ping(ctx); err != nil {
			logger.Warn("store not ready, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
