package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ArdhikaRizki/debTBE/internal/calculator"
	"github.com/ArdhikaRizki/debTBE/internal/models"
	"github.com/ArdhikaRizki/debTBE/internal/storage"
)

const debtColumns = `id, user_id, type, name, other_user_id, amount, description, date,
	is_paid, group_id, status, initiated_by, rejection_reason, created_at, updated_at`

// CreateDebt persists a new debt to the database.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.Debt) error {
	// Generate ID if not set
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if debt.CreatedAt == 0 {
		debt.CreatedAt = now
	}
	debt.UpdatedAt = debt.CreatedAt
	if debt.Date == 0 {
		debt.Date = debt.CreatedAt
	}
	if debt.Status == "" {
		debt.Status = models.StatusConfirmed
	}
	if debt.InitiatedBy == "" {
		debt.InitiatedBy = debt.UserID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO debts (`+debtColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID, debt.UserID, string(debt.Type), debt.Name, nullable(debt.OtherUserID),
		debt.Amount, debt.Description, debt.Date, debt.IsPaid, nullable(debt.GroupID),
		string(debt.Status), debt.InitiatedBy, nullable(debt.RejectionReason),
		debt.CreatedAt, debt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	return nil
}

// GetDebt retrieves a debt by ID, provided userID owns it.
func (s *SQLiteStore) GetDebt(ctx context.Context, id, userID string) (*models.Debt, error) {
	debt, err := scanDebt(s.db.QueryRowContext(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE id = ? AND user_id = ?`,
		id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	return debt, nil
}

// ListDebts retrieves the debts owned by userID that match filter.
func (s *SQLiteStore) ListDebts(ctx context.Context, userID string, filter models.DebtFilter) ([]*models.Debt, error) {
	conds := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.IsPaid != nil {
		conds = append(conds, "is_paid = ?")
		args = append(args, *filter.IsPaid)
	}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*filter.Status))
	}

	query := `SELECT ` + debtColumns + ` FROM debts WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, rowid DESC`

	return s.queryDebts(ctx, query, args...)
}

// ListDebtsInvolving retrieves debts owned by userID or naming userID as the counterparty.
func (s *SQLiteStore) ListDebtsInvolving(ctx context.Context, userID string) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE user_id = ? OR other_user_id = ?
		 ORDER BY created_at ASC, rowid ASC`,
		userID, userID,
	)
}

// UpdateDebt overwrites the mutable fields of a debt owned by debt.UserID.
func (s *SQLiteStore) UpdateDebt(ctx context.Context, debt *models.Debt) error {
	debt.UpdatedAt = time.Now().Unix()

	result, err := s.db.ExecContext(ctx,
		`UPDATE debts SET type = ?, name = ?, other_user_id = ?, amount = ?, description = ?,
		 date = ?, is_paid = ?, status = ?, rejection_reason = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		string(debt.Type), debt.Name, nullable(debt.OtherUserID), debt.Amount, debt.Description,
		debt.Date, debt.IsPaid, string(debt.Status), nullable(debt.RejectionReason), debt.UpdatedAt,
		debt.ID, debt.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}

	return requireRow(result, debt.ID)
}

// DeleteDebt removes a debt owned by userID.
func (s *SQLiteStore) DeleteDebt(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM debts WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	return requireRow(result, id)
}

func (s *SQLiteStore) queryDebts(ctx context.Context, query string, args ...interface{}) ([]*models.Debt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	return debts, nil
}

func scanDebt(row scanner) (*models.Debt, error) {
	debt := &models.Debt{}
	var otherUserID, groupID, rejectionReason sql.NullString
	var debtType, status string

	err := row.Scan(&debt.ID, &debt.UserID, &debtType, &debt.Name, &otherUserID,
		&debt.Amount, &debt.Description, &debt.Date, &debt.IsPaid, &groupID,
		&status, &debt.InitiatedBy, &rejectionReason, &debt.CreatedAt, &debt.UpdatedAt)
	if err != nil {
		return nil, err
	}

	debt.Type = calculator.DebtType(debtType)
	debt.Status = models.DebtStatus(status)
	debt.OtherUserID = otherUserID.String
	debt.GroupID = groupID.String
	debt.RejectionReason = rejectionReason.String

	return debt, nil
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("debt %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
