package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/boatfinance/internal/models"
	"github.com/mmynk/boatfinance/internal/storage"
)

const calculationColumns = `id, listing_id, user_id, boat_price, down_payment, loan_amount, interest_rate,
	term_months, monthly_payment, total_interest, total_cost, saved, shared, share_token,
	calculation_notes, lender_name, lender_rate, lender_terms, created_at, updated_at`

// CreateCalculation persists a new calculation and its payment schedule.
func (s *SQLiteStore) CreateCalculation(ctx context.Context, calc *models.FinanceCalculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lenderName, lenderTerms, lenderRate interface{}
	if calc.LenderInfo != nil {
		lenderName = calc.LenderInfo.Name
		lenderRate = calc.LenderInfo.Rate
		lenderTerms = calc.LenderInfo.Terms
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO finance_calculations (`+calculationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		calc.ID, nullString(calc.ListingID), calc.UserID,
		calc.BoatPrice, calc.DownPayment, calc.LoanAmount, calc.InterestRate, calc.TermMonths,
		calc.MonthlyPayment, calc.TotalInterest, calc.TotalCost,
		calc.Saved, calc.Shared, nullString(calc.ShareToken), nullString(calc.CalculationNotes),
		lenderName, lenderRate, lenderTerms,
		calc.CreatedAt.UnixNano(), nullTime(calc.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	for _, item := range calc.PaymentSchedule {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payment_schedule (calculation_id, payment_number, payment_date,
			 principal_amount, interest_amount, total_payment, remaining_balance)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			calc.ID, item.PaymentNumber, item.PaymentDate.UnixNano(),
			item.PrincipalAmount, item.InterestAmount, item.TotalPayment, item.RemainingBalance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment schedule item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetCalculation retrieves a calculation by ID, including its schedule.
func (s *SQLiteStore) GetCalculation(ctx context.Context, id string) (*models.FinanceCalculation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+calculationColumns+` FROM finance_calculations WHERE id = ?`,
		id,
	)
	calc, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}

	if err := s.loadSchedules(ctx, calc); err != nil {
		return nil, err
	}
	return calc, nil
}

// GetCalculationByShareToken retrieves a calculation by its share token.
func (s *SQLiteStore) GetCalculationByShareToken(ctx context.Context, token string) (*models.FinanceCalculation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+calculationColumns+` FROM finance_calculations WHERE share_token = ?`,
		token,
	)
	calc, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("share token: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation by share token: %w", err)
	}

	if err := s.loadSchedules(ctx, calc); err != nil {
		return nil, err
	}
	return calc, nil
}

// ListCalculationsByUser retrieves a user's calculations, newest first.
func (s *SQLiteStore) ListCalculationsByUser(ctx context.Context, userID string, limit int) ([]*models.FinanceCalculation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+calculationColumns+` FROM finance_calculations
		 WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations by user: %w", err)
	}
	defer rows.Close()

	var calcs []*models.FinanceCalculation
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calcs = append(calcs, calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}

	if err := s.loadSchedules(ctx, calcs...); err != nil {
		return nil, err
	}
	return calcs, nil
}

// ShareCalculation sets the share token only while none is set, so two
// concurrent shares of the same record agree on the first token written.
func (s *SQLiteStore) ShareCalculation(ctx context.Context, id, token string, at time.Time) (string, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE finance_calculations SET shared = 1, share_token = ?, updated_at = ?
		 WHERE id = ? AND share_token IS NULL`,
		token, at.UnixNano(), id,
	)
	if err != nil {
		return "", fmt.Errorf("failed to share calculation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to share calculation: %w", err)
	}
	if affected == 1 {
		return token, nil
	}

	var existing sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT share_token FROM finance_calculations WHERE id = ?", id,
	).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read share token: %w", err)
	}
	if !existing.Valid {
		return "", fmt.Errorf("calculation %s: share token was not written", id)
	}
	return existing.String, nil
}

// DeleteCalculation removes a calculation and its payment schedule.
func (s *SQLiteStore) DeleteCalculation(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payment_schedule WHERE calculation_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete payment schedule: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM finance_calculations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// loadSchedules fills PaymentSchedule for all calcs with a single query.
func (s *SQLiteStore) loadSchedules(ctx context.Context, calcs ...*models.FinanceCalculation) error {
	if len(calcs) == 0 {
		return nil
	}

	byID := make(map[string]*models.FinanceCalculation, len(calcs))
	args := make([]interface{}, len(calcs))
	for i, c := range calcs {
		byID[c.ID] = c
		args[i] = c.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT calculation_id, payment_number, payment_date, principal_amount,
		 interest_amount, total_payment, remaining_balance
		 FROM payment_schedule WHERE calculation_id IN (?`+repeatPlaceholder(len(calcs)-1)+`)
		 ORDER BY calculation_id, payment_number`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get payment schedule: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			calcID string
			date   int64
			item   models.PaymentScheduleItem
		)
		if err := rows.Scan(&calcID, &item.PaymentNumber, &date, &item.PrincipalAmount,
			&item.InterestAmount, &item.TotalPayment, &item.RemainingBalance); err != nil {
			return fmt.Errorf("failed to scan payment schedule item: %w", err)
		}
		item.PaymentDate = time.Unix(0, date).UTC()
		if c, ok := byID[calcID]; ok {
			c.PaymentSchedule = append(c.PaymentSchedule, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payment schedule: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalculation(row rowScanner) (*models.FinanceCalculation, error) {
	calc := &models.FinanceCalculation{}
	var (
		listingID, shareToken, notes sql.NullString
		lenderName, lenderTerms      sql.NullString
		lenderRate                   sql.NullFloat64
		createdAt                    int64
		updatedAt                    sql.NullInt64
	)

	err := row.Scan(
		&calc.ID, &listingID, &calc.UserID,
		&calc.BoatPrice, &calc.DownPayment, &calc.LoanAmount, &calc.InterestRate, &calc.TermMonths,
		&calc.MonthlyPayment, &calc.TotalInterest, &calc.TotalCost,
		&calc.Saved, &calc.Shared, &shareToken, &notes,
		&lenderName, &lenderRate, &lenderTerms,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	calc.ListingID = listingID.String
	calc.ShareToken = shareToken.String
	calc.CalculationNotes = notes.String
	if lenderName.Valid || lenderRate.Valid || lenderTerms.Valid {
		calc.LenderInfo = &models.LenderInfo{
			Name:  lenderName.String,
			Rate:  lenderRate.Float64,
			Terms: lenderTerms.String,
		}
	}
	calc.CreatedAt = time.Unix(0, createdAt).UTC()
	if updatedAt.Valid {
		calc.UpdatedAt = time.Unix(0, updatedAt.Int64).UTC()
	}

	return calc, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UnixNano()
}
