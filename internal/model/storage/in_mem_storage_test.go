package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moliyabot/internal/entity/category"
)

func newFrozenStorage(at time.Time) *InMemStorage {
	s := NewInMemStorage()
	s.now = func() time.Time { return at }
	return s
}

func Test_OnEmptyLedger_ShouldReturnZeroBalance(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	bal, err := s.GetBalance(ctx, 1)

	require.NoError(t, err)
	assert.Zero(t, bal.TotalIncome)
	assert.Zero(t, bal.TotalExpense)
	assert.Zero(t, bal.Balance)
}

func Test_OnIncomesAndExpenses_ShouldComputeBalance(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.AddIncome(ctx, 1, "salary", 1000))
	require.NoError(t, s.AddExpense(ctx, 1, "taxi", 400, category.Transport))

	bal, err := s.GetBalance(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, float64(1000), bal.TotalIncome)
	assert.Equal(t, float64(400), bal.TotalExpense)
	assert.Equal(t, float64(600), bal.Balance)
}

func Test_OnResetBalance_ShouldDropAllRecords(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.AddIncome(ctx, 1, "salary", 1000))
	require.NoError(t, s.AddExpense(ctx, 1, "taxi", 400, category.Transport))
	require.NoError(t, s.ResetBalance(ctx, 1))

	bal, err := s.GetBalance(ctx, 1)

	require.NoError(t, err)
	assert.Zero(t, bal.TotalIncome)
	assert.Zero(t, bal.TotalExpense)
	assert.Zero(t, bal.Balance)
}

func Test_OnWeeklyReport_ShouldSkipOldRecords(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	s := newFrozenStorage(base.AddDate(0, 0, -8))

	require.NoError(t, s.AddExpense(ctx, 1, "old taxi", 300, category.Transport))

	s.now = func() time.Time { return base }
	require.NoError(t, s.AddExpense(ctx, 1, "bread", 100, category.Food))
	require.NoError(t, s.AddIncome(ctx, 1, "salary", 1000))

	rep, err := s.GetReport(ctx, 1, "week")

	require.NoError(t, err)
	require.Len(t, rep.Categories, 1)
	assert.Equal(t, category.Food, rep.Categories[0].Category)
	assert.Equal(t, float64(100), rep.TotalExpense)
	assert.Equal(t, float64(1000), rep.TotalIncome)
	assert.Equal(t, float64(900), rep.NetBalance)
}

func Test_OnMonthlyReport_ShouldOrderCategoriesByTotal(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.AddExpense(ctx, 1, "bread", 100, category.Food))
	require.NoError(t, s.AddExpense(ctx, 1, "cinema", 700, category.Entertainment))
	require.NoError(t, s.AddExpense(ctx, 1, "milk", 200, category.Food))

	rep, err := s.GetReport(ctx, 1, "month")

	require.NoError(t, err)
	require.Len(t, rep.Categories, 2)
	assert.Equal(t, category.Entertainment, rep.Categories[0].Category)
	assert.Equal(t, float64(700), rep.Categories[0].Total)
	assert.Equal(t, category.Food, rep.Categories[1].Category)
	assert.Equal(t, float64(300), rep.Categories[1].Total)
}

func Test_OnUnknownReportPeriod_ShouldFail(t *testing.T) {
	s := NewInMemStorage()
	_, err := s.GetReport(context.Background(), 1, "year")
	assert.Error(t, err)
}

func Test_OnNoLimitConfigured_ShouldReportUnconfigured(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.AddExpense(ctx, 1, "taxi", 9000, category.Transport))

	status, err := s.CheckExpenseLimit(ctx, 1)

	require.NoError(t, err)
	assert.False(t, status.Configured)
	assert.False(t, status.Exceeded)
	assert.False(t, status.JustExceeded)
}

func Test_OnLimitExceeded_ShouldLatchSingleNotification(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.SetExpenseLimit(ctx, 1, 500))
	require.NoError(t, s.AddExpense(ctx, 1, "taxi", 500, category.Transport))

	status, err := s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.Configured)
	assert.True(t, status.Exceeded)
	assert.True(t, status.JustExceeded)
	assert.True(t, status.Notified)

	// the latch stays armed on subsequent checks
	require.NoError(t, s.AddExpense(ctx, 1, "bread", 50, category.Food))
	status, err = s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.Exceeded)
	assert.False(t, status.JustExceeded)
	assert.True(t, status.Notified)
}

func Test_OnSpendingDropsBelowLimit_ShouldRearmLatch(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.SetExpenseLimit(ctx, 1, 500))
	require.NoError(t, s.AddExpense(ctx, 1, "taxi", 600, category.Transport))
	_, err := s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, s.ResetBalance(ctx, 1))
	status, err := s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)
	assert.False(t, status.Exceeded)
	assert.False(t, status.Notified)

	require.NoError(t, s.AddExpense(ctx, 1, "cinema", 700, category.Entertainment))
	status, err = s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.JustExceeded)
}

func Test_OnSetExpenseLimit_ShouldRearmLatch(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	require.NoError(t, s.SetExpenseLimit(ctx, 1, 500))
	require.NoError(t, s.AddExpense(ctx, 1, "taxi", 600, category.Transport))
	_, err := s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, s.SetExpenseLimit(ctx, 1, 550))

	status, err := s.CheckExpenseLimit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.Exceeded)
	assert.True(t, status.JustExceeded)
}

func Test_OnCheckExpenseLimit_ShouldCountOnlyCurrentMonth(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	s := newFrozenStorage(time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC))

	require.NoError(t, s.SetExpenseLimit(ctx, 1, 500))
	require.NoError(t, s.AddExpense(ctx, 1, "july taxi", 1000, category.Transport))

	s.now = func() time.Time { return base }
	status, err := s.CheckExpenseLimit(ctx, 1)

	require.NoError(t, err)
	assert.Zero(t, status.Spent)
	assert.False(t, status.Exceeded)
}
