package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/David01mc/CarnavalWEB-sub000/auth"
	"github.com/David01mc/CarnavalWEB-sub000/catalog"
	"github.com/David01mc/CarnavalWEB-sub000/cliparse"
	"github.com/David01mc/CarnavalWEB-sub000/db"
	"github.com/David01mc/CarnavalWEB-sub000/middleware"
	"github.com/David01mc/CarnavalWEB-sub000/router"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.IssueToken != "" {
		if err := issueToken(os.Stdout, cfg, time.Now()); err != nil {
			slog.Error("Error issuing token", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Storage ready", "type", cfg.DatabaseType)

	if cfg.CatalogSeed != "" {
		n, err := catalog.NewService(store).ImportFile(ctx, cfg.CatalogSeed)
		if err != nil {
			slog.Error("catalog seed failed", "error", err, "path", cfg.CatalogSeed)
			os.Exit(1)
		}
		slog.Info("Catalog seeded", "count", n)
	}

	// Create router
	mux := router.NewRouter(store, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// Wait for Ctrl-C / SIGTERM or a listener failure
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")
}

// issueToken prints a token for the -issue-token subject, signed with the
// server's secret.
func issueToken(w io.Writer, cfg cliparse.Config, now time.Time) error {
	id, err := auth.ParseIdentity(cfg.IssueToken)
	if err != nil {
		return err
	}
	token, err := auth.IssueToken(id, cfg.TokenSecret, cfg.TokenTTL, now)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

// openStore connects the configured backend and prepares its schema or indexes.
func openStore(ctx context.Context, cfg cliparse.Config) (router.Store, func(), error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseMongo:
		client, err := db.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := db.NewMongoStore(client.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return store, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		conn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if cfg.DatabaseType == cliparse.DatabaseSQLite {
			// SQLite allows a single writer
			conn.SetMaxOpenConns(1)
		}

		// Verify connection
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}

		// Create schema (tables)
		if err := db.CreateSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return db.NewSQLStore(conn), func() { conn.Close() }, nil
	}
}
