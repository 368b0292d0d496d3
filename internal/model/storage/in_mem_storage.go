package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/now"

	"moliyabot/internal/entity/user"
)

// InMemStorage implements the same ledger contract as PostgresStorage
// for tests and single-instance runs without a database.
type InMemStorage struct {
	mu       sync.Mutex
	users    map[int64]user.Record
	incomes  map[int64][]user.IncomeRecord
	expenses map[int64][]user.ExpenseRecord

	now func() time.Time
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		users:    make(map[int64]user.Record),
		incomes:  make(map[int64][]user.IncomeRecord),
		expenses: make(map[int64][]user.ExpenseRecord),
		now:      time.Now,
	}
}

func (s *InMemStorage) GetUser(_ context.Context, id int64) (user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		s.users[id] = user.Record{}
	}
	return rec, nil
}

func (s *InMemStorage) SaveUser(_ context.Context, id int64, rec user.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = rec
	return nil
}

func (s *InMemStorage) AddIncome(_ context.Context, userID int64, source string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes[userID] = append(s.incomes[userID], user.IncomeRecord{
		Source:  source,
		Amount:  amount,
		Created: s.now(),
	})
	return nil
}

func (s *InMemStorage) AddExpense(_ context.Context, userID int64, name string, amount float64, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[userID] = append(s.expenses[userID], user.ExpenseRecord{
		Name:     name,
		Amount:   amount,
		Category: category,
		Created:  s.now(),
	})
	return nil
}

func (s *InMemStorage) GetBalance(_ context.Context, userID int64) (user.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res user.Balance
	for _, inc := range s.incomes[userID] {
		res.TotalIncome += inc.Amount
	}
	for _, exp := range s.expenses[userID] {
		res.TotalExpense += exp.Amount
	}
	res.Balance = res.TotalIncome - res.TotalExpense
	return res, nil
}

func (s *InMemStorage) GetReport(_ context.Context, userID int64, period string) (user.Report, error) {
	days, ok := reportWindows[period]
	if !ok {
		return user.Report{}, fmt.Errorf("report period %s is not supported", period)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	since := s.now().AddDate(0, 0, -days)
	var res user.Report

	totals := make(map[string]float64)
	for _, exp := range s.expenses[userID] {
		if exp.Created.Before(since) {
			continue
		}
		totals[exp.Category] += exp.Amount
		res.TotalExpense += exp.Amount
	}
	for category, total := range totals {
		res.Categories = append(res.Categories, user.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(res.Categories, func(i, j int) bool {
		return res.Categories[i].Total > res.Categories[j].Total
	})

	for _, inc := range s.incomes[userID] {
		if !inc.Created.Before(since) {
			res.TotalIncome += inc.Amount
		}
	}
	res.NetBalance = res.TotalIncome - res.TotalExpense
	return res, nil
}

func (s *InMemStorage) SetExpenseLimit(_ context.Context, userID int64, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.users[userID]
	rec.MonthLimit = &amount
	rec.LimitNotified = false
	s.users[userID] = rec
	return nil
}

func (s *InMemStorage) CheckExpenseLimit(_ context.Context, userID int64) (user.LimitStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.users[userID]
	if rec.MonthLimit == nil {
		return user.LimitStatus{}, nil
	}

	monthStart := now.New(s.now()).BeginningOfMonth()
	var spent float64
	for _, exp := range s.expenses[userID] {
		if !exp.Created.Before(monthStart) {
			spent += exp.Amount
		}
	}

	status := user.LimitStatus{
		Configured: true,
		Limit:      *rec.MonthLimit,
		Spent:      spent,
		Exceeded:   spent >= *rec.MonthLimit,
		Notified:   rec.LimitNotified,
	}
	switch {
	case status.Exceeded && !rec.LimitNotified:
		status.Notified = true
		status.JustExceeded = true
	case !status.Exceeded && rec.LimitNotified:
		status.Notified = false
	}
	if status.Notified != rec.LimitNotified {
		rec.LimitNotified = status.Notified
		s.users[userID] = rec
	}
	return status, nil
}

func (s *InMemStorage) ResetBalance(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.incomes, userID)
	delete(s.expenses, userID)
	return nil
}
