package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	inventoryobs "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application"
	platformobservability "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/observability"
	platformtemporal "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal"
	ledgeractivities "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal/activities/ledger"
	ledgerworkflows "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal/workflows/ledger"
)

const workerServiceName = "pharmatrack-worker"

// RunWorker processes ledger confirmation workflows until ctx is cancelled.
// It must share the API's storage backend, otherwise settlements land in a private store.
func RunWorker(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, workerServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.StorageBackend == StorageMemory {
		logger.Warn("worker running with in-memory storage, confirmations will not reach the API process")
	}
	stores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.close()

	inventoryService := inventoryobs.New(
		inventoryapp.NewService(stores.medicines, inventoryapp.WithLogger(logger)),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
	activities := ledgeractivities.NewActivities(inventoryService)

	temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	}, logger, instruments.Tracer("temporal-worker"))
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, ledgerworkflows.LedgerConfirmationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(ledgerworkflows.LedgerConfirmationWorkflow, workflow.RegisterOptions{Name: ledgerworkflows.LedgerConfirmationWorkflowName})
	w.RegisterActivityWithOptions(activities.ConfirmLedger, activity.RegisterOptions{Name: ledgeractivities.ConfirmLedgerActivityName})

	stop := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()
	logger.Info("worker listening", slog.String("taskQueue", ledgerworkflows.LedgerConfirmationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(stop); err != nil {
		return fmt.Errorf("temporal worker exited: %w", err)
	}
	logger.Info("Temporal worker stopped")
	return nil
}
