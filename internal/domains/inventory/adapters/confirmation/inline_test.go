package confirmation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingConfirmer struct {
	mu    sync.Mutex
	calls []types.LedgerConfirmationInput
	done  chan struct{}
}

func newRecordingConfirmer() *recordingConfirmer {
	return &recordingConfirmer{done: make(chan struct{}, 8)}
}

func (r *recordingConfirmer) ConfirmLedger(_ context.Context, input types.LedgerConfirmationInput) (*types.MedicineProjection, error) {
	r.mu.Lock()
	r.calls = append(r.calls, input)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil, nil
}

func (r *recordingConfirmer) snapshot() []types.LedgerConfirmationInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.LedgerConfirmationInput(nil), r.calls...)
}

func TestInlineSchedulerFiresAfterDelay(t *testing.T) {
	scheduler := NewInlineScheduler(nil)
	confirmer := newRecordingConfirmer()
	scheduler.Bind(confirmer)
	ctx := context.Background()

	require.NoError(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-1", Generation: 1, Delay: 10 * time.Millisecond}))
	select {
	case <-confirmer.done:
	case <-time.After(time.Second):
		t.Fatal("confirmation did not fire")
	}
	assert.Equal(t, []types.LedgerConfirmationInput{{MedicineID: "mdc-1", Generation: 1}}, confirmer.snapshot())
	assert.Equal(t, 0, scheduler.Pending())
	require.NoError(t, scheduler.Close(ctx))
}

func TestInlineSchedulerSupersedesPendingGeneration(t *testing.T) {
	scheduler := NewInlineScheduler(nil)
	confirmer := newRecordingConfirmer()
	scheduler.Bind(confirmer)
	ctx := context.Background()

	require.NoError(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-1", Generation: 1, Delay: time.Hour}))
	require.NoError(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-1", Generation: 2, Delay: 10 * time.Millisecond}))
	assert.Equal(t, 1, scheduler.Pending())

	select {
	case <-confirmer.done:
	case <-time.After(time.Second):
		t.Fatal("confirmation did not fire")
	}
	assert.Equal(t, []types.LedgerConfirmationInput{{MedicineID: "mdc-1", Generation: 2}}, confirmer.snapshot())
	require.NoError(t, scheduler.Close(ctx))
}

func TestInlineSchedulerCancel(t *testing.T) {
	scheduler := NewInlineScheduler(nil)
	confirmer := newRecordingConfirmer()
	scheduler.Bind(confirmer)
	ctx := context.Background()

	require.NoError(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-1", Generation: 1, Delay: 20 * time.Millisecond}))
	require.NoError(t, scheduler.Cancel(ctx, "mdc-1"))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, confirmer.snapshot())
	require.NoError(t, scheduler.Close(ctx))
}

func TestInlineSchedulerCloseStopsTimers(t *testing.T) {
	scheduler := NewInlineScheduler(nil)
	confirmer := newRecordingConfirmer()
	scheduler.Bind(confirmer)
	ctx := context.Background()

	require.NoError(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-1", Generation: 1, Delay: time.Hour}))
	require.NoError(t, scheduler.Close(ctx))
	assert.Equal(t, 0, scheduler.Pending())
	assert.ErrorIs(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-2", Generation: 1}), ErrSchedulerClosed)
}

func TestInlineSchedulerUnboundDrops(t *testing.T) {
	scheduler := NewInlineScheduler(nil)
	ctx := context.Background()
	require.NoError(t, scheduler.Schedule(ctx, ports.ConfirmationRequest{MedicineID: "mdc-1", Generation: 1, Delay: time.Millisecond}))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, scheduler.Close(ctx))
}

func TestWorkflowIDIsStablePerMedicine(t *testing.T) {
	assert.Equal(t, "ledger-confirmation-mdc-1", WorkflowID("mdc-1"))
}
