package user

import "time"

// Record is the persisted per-user profile. Language is empty until the
// user picks one; MonthLimit is nil until a limit is configured.
type Record struct {
	Name          string
	Language      string
	MonthLimit    *float64
	LimitNotified bool
}

type IncomeRecord struct {
	Source  string
	Amount  float64
	Created time.Time
}

type ExpenseRecord struct {
	Name     string
	Amount   float64
	Category string
	Created  time.Time
}

type Balance struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

type CategoryTotal struct {
	Category string
	Total    float64
}

// Report aggregates a trailing window of ledger records. Categories
// holds only categories with expenses in the window, largest first.
type Report struct {
	Categories   []CategoryTotal
	TotalIncome  float64
	TotalExpense float64
	NetBalance   float64
}

// LimitStatus is the result of evaluating the month-to-date spending
// against the configured limit. JustExceeded is true exactly when the
// evaluation armed the notification latch, so the caller sends at most
// one warning per excess episode.
type LimitStatus struct {
	Configured   bool
	Limit        float64
	Spent        float64
	Exceeded     bool
	Notified     bool
	JustExceeded bool
}
