package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("email already registered")
)

// postgres unique_violation
const uniqueViolation = "23505"

// AccountRepo provides data access for the accounts table using sqlx.
type AccountRepo struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// EnsureTable creates the accounts table if not exists (idempotent).
// Column widths carry the field-level length limits.
func (r *AccountRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE EXTENSION IF NOT EXISTS citext;
CREATE TABLE IF NOT EXISTS accounts (
  id VARCHAR(32) PRIMARY KEY,
  email CITEXT NOT NULL UNIQUE CHECK (email <> ''),
  password_hash TEXT NOT NULL,
  first_name VARCHAR(50) NOT NULL DEFAULT '',
  last_name VARCHAR(50) NOT NULL DEFAULT '',
  is_staff BOOLEAN NOT NULL DEFAULT false,
  is_active BOOLEAN NOT NULL DEFAULT false,
  is_superuser BOOLEAN NOT NULL DEFAULT false,
  date_joined TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  last_login TIMESTAMPTZ,
  confirmation_code VARCHAR(50) NOT NULL DEFAULT ''
);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure accounts table: %w", err)
	}
	return nil
}

// Create inserts a single account row.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	const q = `INSERT INTO accounts (id,email,password_hash,first_name,last_name,is_staff,is_active,is_superuser,date_joined,last_login,confirmation_code)
		  VALUES (:id,:email,:password_hash,:first_name,:last_name,:is_staff,:is_active,:is_superuser,:date_joined,:last_login,:confirmation_code)`
	if _, err := r.db.NamedExecContext(ctx, q, a); err != nil {
		return mapWriteErr("insert account", err)
	}
	return nil
}

const selectColumns = `SELECT id, email, password_hash, first_name, last_name,
		is_staff, is_active, is_superuser, date_joined, last_login, confirmation_code
	  FROM accounts`

// GetByEmail returns an account matched by email (case-insensitive due to citext).
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.GetContext(ctx, &a, selectColumns+` WHERE email=$1`, email); err != nil {
		return nil, mapReadErr("get account by email", err)
	}
	return &a, nil
}

// Update writes every mutable column. date_joined is never rewritten.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	const q = `UPDATE accounts SET email=:email, password_hash=:password_hash, first_name=:first_name,
		last_name=:last_name, is_staff=:is_staff, is_active=:is_active, is_superuser=:is_superuser,
		last_login=:last_login, confirmation_code=:confirmation_code
		WHERE id=:id`
	res, err := r.db.NamedExecContext(ctx, q, a)
	if err != nil {
		return mapWriteErr("update account", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapReadErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mapWriteErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
