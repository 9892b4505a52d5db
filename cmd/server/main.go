/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env + environment), then flags override
  2. Open the snapshot store (json files, sqlite, or none)
  3. Restore the last snapshot into the in-memory store
  4. Optionally seed demo data when starting empty
  5. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default from PORT, else 8080)
  -driver  snapshot driver: json | sqlite | none (default from SNAPSHOT_DRIVER)
  -data    directory for the json driver (default from DATA_DIR)
  -db      database file for the sqlite driver (default from DB_PATH)
           Use ":memory:" for an in-memory database
  -seed    seed demo data when the store starts empty (default from SEED)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Flat JSON files under ./data
  ./server -driver=json -data=./data

  # SQLite persistence, seeded demo data
  ./server -driver=sqlite -db=./data/leave.db -seed

  # Purely in-memory
  ./server -driver=none

SEE ALSO:
  - api/server.go: router configuration
  - config/config.go: environment settings
  - store/jsonfile, store/sqlite: snapshot drivers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumahr/leave-engine/api"
	"github.com/lumahr/leave-engine/config"
	"github.com/lumahr/leave-engine/leave"
	"github.com/lumahr/leave-engine/seed"
	"github.com/lumahr/leave-engine/store/jsonfile"
	"github.com/lumahr/leave-engine/store/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load(logger)

	port := flag.Int("port", cfg.Port, "HTTP server port")
	driver := flag.String("driver", cfg.SnapshotDriver, "snapshot driver: json | sqlite | none")
	dataDir := flag.String("data", cfg.DataDir, "data directory for the json driver")
	dbPath := flag.String("db", cfg.DBPath, "database file for the sqlite driver")
	seedDemo := flag.Bool("seed", cfg.Seed, "seed demo data when starting empty")
	flag.Parse()

	ctx := context.Background()

	snapshots, closeStore, err := openSnapshotStore(*driver, *dataDir, *dbPath)
	if err != nil {
		logger.Error("failed to open snapshot store", "driver", *driver, "error", err)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}

	newService := func() *leave.Service {
		opts := []leave.Option{leave.WithLogger(logger)}
		if snapshots != nil {
			opts = append(opts, leave.WithSnapshotStore(snapshots))
		}
		return leave.NewService(leave.NewStore(), opts...)
	}

	svc, restored, err := restoreService(ctx, snapshots, logger)
	if err != nil {
		logger.Error("failed to restore snapshot", "error", err)
		os.Exit(1)
	}

	if *seedDemo && !restored {
		logger.Info("seeding demo data")
		if err := seed.SmallTeam(ctx, svc); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	handler := api.NewHandler(svc,
		api.WithLogger(logger),
		api.WithScenarioReset(newService),
	)
	router := api.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"addr", fmt.Sprintf("http://localhost:%d", *port),
			"driver", *driver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// openSnapshotStore builds the persistence backend for the chosen driver.
// The "none" driver returns a nil store: state lives only in memory.
func openSnapshotStore(driver, dataDir, dbPath string) (leave.SnapshotStore, func() error, error) {
	switch driver {
	case "json":
		s, err := jsonfile.New(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case "sqlite":
		s, err := sqlite.New(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "none":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot driver %q", driver)
	}
}

// restoreService loads the persisted snapshot (if any) into a fresh service.
// The second return reports whether prior state was restored.
func restoreService(ctx context.Context, snapshots leave.SnapshotStore, logger *slog.Logger) (*leave.Service, bool, error) {
	opts := []leave.Option{leave.WithLogger(logger)}
	if snapshots == nil {
		return leave.NewService(leave.NewStore(), opts...), false, nil
	}
	opts = append(opts, leave.WithSnapshotStore(snapshots))

	snap, err := snapshots.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	if snap == nil {
		return leave.NewService(leave.NewStore(), opts...), false, nil
	}

	logger.Info("restored snapshot",
		"employees", len(snap.Employees),
		"requests", len(snap.LeaveRequests))
	return leave.NewService(leave.NewStoreFromSnapshot(snap), opts...), true, nil
}
