package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	ledgeractivities "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal/activities/ledger"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	activities := ledgeractivities.NewActivities(nil)
	env.RegisterActivityWithOptions(activities.ConfirmLedger, activity.RegisterOptions{Name: ledgeractivities.ConfirmLedgerActivityName})
	return env
}

func TestLedgerConfirmationWorkflowConfirmsAfterDelay(t *testing.T) {
	env := newEnv(t)
	input := LedgerConfirmationWorkflowInput{MedicineID: "mdc-1", Generation: 3, Delay: 2 * time.Second}
	env.OnActivity(ledgeractivities.ConfirmLedgerActivityName, mock.Anything, inventorytypes.LedgerConfirmationInput{MedicineID: "mdc-1", Generation: 3}).
		Return(&ledgeractivities.ConfirmationOutcome{Applied: true}, nil).Once()

	env.ExecuteWorkflow(LedgerConfirmationWorkflow, input)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var outcome ledgeractivities.ConfirmationOutcome
	require.NoError(t, env.GetWorkflowResult(&outcome))
	require.True(t, outcome.Applied)
	env.AssertExpectations(t)
}

func TestLedgerConfirmationWorkflowCancelledDuringDelay(t *testing.T) {
	env := newEnv(t)
	env.RegisterDelayedCallback(func() { env.CancelWorkflow() }, time.Second)

	env.ExecuteWorkflow(LedgerConfirmationWorkflow, LedgerConfirmationWorkflowInput{MedicineID: "mdc-1", Generation: 1, Delay: time.Hour})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var canceled *temporal.CanceledError
	require.True(t, errors.As(err, &canceled))
}

func TestLedgerConfirmationWorkflowPropagatesActivityFailure(t *testing.T) {
	env := newEnv(t)
	env.OnActivity(ledgeractivities.ConfirmLedgerActivityName, mock.Anything, mock.Anything).
		Return(nil, temporal.NewNonRetryableApplicationError("ledger down", "LedgerUnavailable", nil))

	env.ExecuteWorkflow(LedgerConfirmationWorkflow, LedgerConfirmationWorkflowInput{MedicineID: "mdc-1", Generation: 1})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
