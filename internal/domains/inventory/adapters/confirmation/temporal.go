package confirmation

import (
	"context"
	"errors"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	ledgerworkflows "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal/workflows/ledger"
)

var _ ports.ConfirmationScheduler = (*TemporalScheduler)(nil)

// TemporalScheduler runs settlements as durable Temporal workflows, one execution per medicine.
type TemporalScheduler struct {
	client    client.Client
	taskQueue string
}

// NewTemporalScheduler wires a Temporal client into the scheduler.
func NewTemporalScheduler(c client.Client) *TemporalScheduler {
	return &TemporalScheduler{client: c, taskQueue: ledgerworkflows.LedgerConfirmationTaskQueue}
}

// WorkflowID is the execution id shared by every settlement of one medicine.
func WorkflowID(medicineID string) string {
	return "ledger-confirmation-" + medicineID
}

// Schedule starts the confirmation workflow, terminating an older one still waiting for the same medicine.
func (s *TemporalScheduler) Schedule(ctx context.Context, request ports.ConfirmationRequest) error {
	if s == nil || s.client == nil {
		return errors.New("temporal confirmation scheduler not configured")
	}
	options := client.StartWorkflowOptions{
		ID:                       WorkflowID(request.MedicineID),
		TaskQueue:                s.taskQueue,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_TERMINATE_EXISTING,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}
	_, err := s.client.ExecuteWorkflow(ctx, options, ledgerworkflows.LedgerConfirmationWorkflowName, ledgerworkflows.LedgerConfirmationWorkflowInput{
		MedicineID: request.MedicineID,
		Generation: request.Generation,
		Delay:      request.Delay,
		TraceID:    workflowTraceID(ctx),
	})
	return err
}

// Cancel requests cancellation of the medicine's pending workflow. A missing execution is not an error.
func (s *TemporalScheduler) Cancel(ctx context.Context, medicineID string) error {
	if s == nil || s.client == nil {
		return errors.New("temporal confirmation scheduler not configured")
	}
	err := s.client.CancelWorkflow(ctx, WorkflowID(medicineID), "")
	var notFound *serviceerror.NotFound
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
