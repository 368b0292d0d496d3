package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jinzhu/now"
	"go.uber.org/zap"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"moliyabot/internal/entity/user"
	"moliyabot/internal/logger"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// reportWindows are trailing windows counted back from the query
// instant, not calendar-aligned.
var reportWindows = map[string]int{
	"week":  7,
	"month": 30,
}

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

// GetUser finds the user, creating an empty profile on first contact.
func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (user.Record, error) {
	query := psql.Select("name", "language", "month_limit", "limit_notified").
		From("users").
		Where(sq.Eq{"id": id})

	var res user.Record
	var limit sql.NullFloat64
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&res.Name, &res.Language, &limit, &res.LimitNotified)
	if errors.Is(err, sql.ErrNoRows) {
		insert := psql.Insert("users").
			Columns("id", "name", "language", "limit_notified", "updated_at").
			Values(id, "", "", false, time.Now())
		if _, err = insert.RunWith(s.db).ExecContext(ctx); err != nil {
			return user.Record{}, errors.Wrap(err, "create user")
		}
		return user.Record{}, nil
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "get user")
	}
	if limit.Valid {
		res.MonthLimit = &limit.Float64
	}
	return res, nil
}

func (s *PostgresStorage) SaveUser(ctx context.Context, id int64, rec user.Record) error {
	var limit sql.NullFloat64
	if rec.MonthLimit != nil {
		limit = sql.NullFloat64{Float64: *rec.MonthLimit, Valid: true}
	}
	query := psql.Insert("users").
		Columns("id", "name", "language", "month_limit", "limit_notified", "updated_at").
		Values(id, rec.Name, rec.Language, limit, rec.LimitNotified, time.Now()).
		Suffix("ON CONFLICT(id) DO UPDATE SET name = ?, language = ?, month_limit = ?, limit_notified = ?, updated_at = ?",
			rec.Name, rec.Language, limit, rec.LimitNotified, time.Now())

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save user")
}

func (s *PostgresStorage) AddIncome(ctx context.Context, userID int64, source string, amount float64) error {
	query := psql.Insert("incomes").
		Columns("user_id", "source", "amount", "created_at").
		Values(userID, source, amount, time.Now())

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "add income")
}

func (s *PostgresStorage) AddExpense(ctx context.Context, userID int64, name string, amount float64, category string) error {
	query := psql.Insert("expenses").
		Columns("user_id", "name", "amount", "category", "created_at").
		Values(userID, name, amount, category, time.Now())

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "add expense")
}

func (s *PostgresStorage) GetBalance(ctx context.Context, userID int64) (user.Balance, error) {
	income, err := s.sumAmount(ctx, "incomes", userID, time.Time{})
	if err != nil {
		return user.Balance{}, errors.Wrap(err, "get balance")
	}
	expense, err := s.sumAmount(ctx, "expenses", userID, time.Time{})
	if err != nil {
		return user.Balance{}, errors.Wrap(err, "get balance")
	}
	return user.Balance{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
	}, nil
}

// sumAmount coalesces an empty ledger to zero. A zero since means the
// whole history.
func (s *PostgresStorage) sumAmount(ctx context.Context, table string, userID int64, since time.Time) (float64, error) {
	query := psql.Select("COALESCE(SUM(amount), 0)").
		From(table).
		Where(sq.Eq{"user_id": userID})
	if !since.IsZero() {
		query = query.Where(sq.GtOrEq{"created_at": since})
	}

	var total float64
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&total)
	return total, err
}

func (s *PostgresStorage) GetReport(ctx context.Context, userID int64, period string) (user.Report, error) {
	days, ok := reportWindows[period]
	if !ok {
		return user.Report{}, fmt.Errorf("report period %s is not supported", period)
	}
	since := time.Now().AddDate(0, 0, -days)

	query := psql.Select("category", "SUM(amount) AS total").
		From("expenses").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("category").
		OrderBy("total DESC")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return user.Report{}, errors.Wrap(err, "get report")
	}
	defer func() {
		if rowErr := rows.Close(); rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	var res user.Report
	for rows.Next() {
		var ct user.CategoryTotal
		if err = rows.Scan(&ct.Category, &ct.Total); err != nil {
			return user.Report{}, errors.Wrap(err, "get report")
		}
		res.Categories = append(res.Categories, ct)
	}
	if err = rows.Err(); err != nil {
		return user.Report{}, errors.Wrap(err, "get report")
	}

	if res.TotalIncome, err = s.sumAmount(ctx, "incomes", userID, since); err != nil {
		return user.Report{}, errors.Wrap(err, "get report")
	}
	if res.TotalExpense, err = s.sumAmount(ctx, "expenses", userID, since); err != nil {
		return user.Report{}, errors.Wrap(err, "get report")
	}
	res.NetBalance = res.TotalIncome - res.TotalExpense
	return res, nil
}

// SetExpenseLimit upserts the limit and re-arms the notification latch,
// even when the same value is set again.
func (s *PostgresStorage) SetExpenseLimit(ctx context.Context, userID int64, amount float64) error {
	query := psql.Update("users").
		Set("month_limit", amount).
		Set("limit_notified", false).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": userID})

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "set limit")
}

// CheckExpenseLimit compares the calendar-month-to-date spending with
// the configured limit and persists latch transitions: it arms once
// when the limit is reached and re-arms when spending drops back under.
func (s *PostgresStorage) CheckExpenseLimit(ctx context.Context, userID int64) (user.LimitStatus, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return user.LimitStatus{}, errors.Wrap(err, "check limit")
	}
	defer func() {
		if txErr := tx.Rollback(); txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
			logger.Error("error when transaction rollback", zap.Error(txErr))
		}
	}()

	var limit sql.NullFloat64
	var notified bool
	err = psql.Select("month_limit", "limit_notified").
		From("users").
		Where(sq.Eq{"id": userID}).
		RunWith(tx).QueryRowContext(ctx).
		Scan(&limit, &notified)
	if err != nil {
		return user.LimitStatus{}, errors.Wrap(err, "check limit")
	}
	if !limit.Valid {
		return user.LimitStatus{}, tx.Commit()
	}

	var spent float64
	err = psql.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"created_at": now.New(time.Now()).BeginningOfMonth()}).
		RunWith(tx).QueryRowContext(ctx).
		Scan(&spent)
	if err != nil {
		return user.LimitStatus{}, errors.Wrap(err, "check limit")
	}

	status := user.LimitStatus{
		Configured: true,
		Limit:      limit.Float64,
		Spent:      spent,
		Exceeded:   spent >= limit.Float64,
		Notified:   notified,
	}
	switch {
	case status.Exceeded && !notified:
		status.Notified = true
		status.JustExceeded = true
	case !status.Exceeded && notified:
		status.Notified = false
	}
	if status.Notified != notified {
		update := psql.Update("users").
			Set("limit_notified", status.Notified).
			Where(sq.Eq{"id": userID})
		if _, err = update.RunWith(tx).ExecContext(ctx); err != nil {
			return user.LimitStatus{}, errors.Wrap(err, "check limit")
		}
	}
	return status, errors.Wrap(tx.Commit(), "check limit")
}

// ResetBalance deletes the whole ledger of one user atomically.
func (s *PostgresStorage) ResetBalance(ctx context.Context, userID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "reset balance")
	}
	defer func() {
		if txErr := tx.Rollback(); txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
			logger.Error("error when transaction rollback", zap.Error(txErr))
		}
	}()

	if _, err = psql.Delete("incomes").Where(sq.Eq{"user_id": userID}).RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "reset balance")
	}
	if _, err = psql.Delete("expenses").Where(sq.Eq{"user_id": userID}).RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "reset balance")
	}
	return errors.Wrap(tx.Commit(), "reset balance")
}
