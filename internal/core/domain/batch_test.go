package domain_test

import (
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareBatch_Lifecycle(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	b := &domain.PrepareBatch{ID: "PREP-1", Status: domain.BatchStatusDraft}

	assert.ErrorIs(t, b.Promote(now), domain.ErrBatchNotApproved)
	assert.ErrorIs(t, b.Submit(now), domain.ErrBatchNotPromoted)

	require.NoError(t, b.Approve(now))
	assert.Equal(t, domain.BatchStatusApproved, b.Status)
	assert.ErrorIs(t, b.Approve(now), domain.ErrBatchNotDraft)

	require.NoError(t, b.Promote(now))
	assert.ErrorIs(t, b.Promote(now), domain.ErrBatchAlreadyPromoted)
	assert.ErrorIs(t, b.Discard(now), domain.ErrBatchNotDiscardable)

	require.NoError(t, b.Submit(now))
	assert.Equal(t, domain.BatchStatusSubmitted, b.Status)
}

func TestPrepareBatch_Discard(t *testing.T) {
	now := time.Now()

	draft := &domain.PrepareBatch{Status: domain.BatchStatusDraft}
	require.NoError(t, draft.Discard(now))
	assert.Equal(t, domain.BatchStatusDiscarded, draft.Status)
	assert.ErrorIs(t, draft.Approve(now), domain.ErrBatchNotDraft)

	approved := &domain.PrepareBatch{Status: domain.BatchStatusApproved}
	require.NoError(t, approved.Discard(now))
}

func TestSweepResult_Finish(t *testing.T) {
	tests := []struct {
		name   string
		runs   []*domain.SweepRun
		errs   []string
		status domain.SweepStatus
	}{
		{name: "no work", status: domain.SweepStatusNothingToDo},
		{
			name:   "all groups delivered",
			runs:   []*domain.SweepRun{{OrdersProcessed: 3, OrdersConfirmed: 3}},
			status: domain.SweepStatusCompleted,
		},
		{
			name: "one group failed",
			runs: []*domain.SweepRun{{
				OrdersProcessed: 3, OrdersConfirmed: 2, OrdersFailed: 1,
				Errors: []domain.SweepGroupError{{BrokerID: "brk-b", Orders: 1, Error: "boom"}},
			}},
			status: domain.SweepStatusPartial,
		},
		{
			name:   "batch could not be promoted",
			errs:   []string{"PREP-1: locked"},
			status: domain.SweepStatusFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := &domain.SweepResult{BatchErrors: test.errs}
			for _, run := range test.runs {
				r.Add(run)
			}
			r.Finish()
			assert.Equal(t, test.status, r.Status)
		})
	}
}
