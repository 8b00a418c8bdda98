package ledger

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	ledgeractivities "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal/activities/ledger"
)

const (
	// LedgerConfirmationWorkflowName is the public identifier for registering the workflow.
	LedgerConfirmationWorkflowName = "inventory.workflows.LedgerConfirmation"
	// LedgerConfirmationTaskQueue is the queue consumed by the worker processing ledger settlements.
	LedgerConfirmationTaskQueue = "LEDGER_CONFIRMATION"
)

// LedgerConfirmationWorkflowInput describes one delayed settlement.
type LedgerConfirmationWorkflowInput struct {
	MedicineID string
	Generation int64
	Delay      time.Duration
	TraceID    string
}

// LedgerConfirmationWorkflow waits out the simulated settlement latency, then confirms the write.
// Cancelling the workflow during the wait leaves the record pending.
func LedgerConfirmationWorkflow(ctx workflow.Context, input LedgerConfirmationWorkflowInput) (*ledgeractivities.ConfirmationOutcome, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("LedgerConfirmationWorkflow started", withTraceID(input.TraceID, "medicineId", input.MedicineID, "generation", input.Generation)...)
	if input.Delay > 0 {
		if err := workflow.Sleep(ctx, input.Delay); err != nil {
			logger.Info("LedgerConfirmationWorkflow cancelled", withTraceID(input.TraceID, "medicineId", input.MedicineID)...)
			return nil, err
		}
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	})
	var outcome ledgeractivities.ConfirmationOutcome
	err := workflow.ExecuteActivity(ctx, ledgeractivities.ConfirmLedgerActivityName, inventorytypes.LedgerConfirmationInput{
		MedicineID: input.MedicineID,
		Generation: input.Generation,
	}).Get(ctx, &outcome)
	if err != nil {
		logger.Error("LedgerConfirmationWorkflow failed", withTraceID(input.TraceID, "medicineId", input.MedicineID, "error", err)...)
		return nil, err
	}
	logger.Info("LedgerConfirmationWorkflow completed", withTraceID(input.TraceID, "medicineId", input.MedicineID, "applied", outcome.Applied)...)
	return &outcome, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
