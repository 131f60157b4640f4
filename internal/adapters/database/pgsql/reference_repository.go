package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
)

// PgxRoleRepository reads the roles reference table.
type PgxRoleRepository struct {
	db *pgxpool.Pool
}

func NewRoleRepository(db *pgxpool.Pool) *PgxRoleRepository {
	return &PgxRoleRepository{db: db}
}

var _ portsrepo.RoleReader = (*PgxRoleRepository)(nil)

func (r *PgxRoleRepository) FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRow(ctx, `SELECT id, name, label FROM roles WHERE name = $1;`, name).
		Scan(&role.RoleID, &role.Name, &role.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role %q: %w", name, err)
	}
	return &role, nil
}

// PgxFeeRepository reads the payment collaborator's fee table.
type PgxFeeRepository struct {
	db *pgxpool.Pool
}

func NewFeeRepository(db *pgxpool.Pool) *PgxFeeRepository {
	return &PgxFeeRepository{db: db}
}

var _ portsrepo.FeeReader = (*PgxFeeRepository)(nil)

func (r *PgxFeeRepository) FindActiveFeesByRole(ctx context.Context, roleID int64) ([]domain.PaymentFee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, role_id, fee_name, amount, currency, is_active
		FROM payment_fees
		WHERE role_id = $1 AND is_active;`, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fees for role %d: %w", roleID, err)
	}
	defer rows.Close()

	fees := []domain.PaymentFee{}
	for rows.Next() {
		var f domain.PaymentFee
		var amount string
		if err := rows.Scan(&f.FeeID, &f.RoleID, &f.FeeName, &amount, &f.Currency, &f.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan fee row: %w", err)
		}
		f.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fee amount %q: %w", amount, err)
		}
		fees = append(fees, f)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fee rows: %w", rows.Err())
	}
	return fees, nil
}
