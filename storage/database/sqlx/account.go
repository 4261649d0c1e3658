package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/account"
)

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *sqlx.DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedAccounts ...account.Account) error {
	query := `SELECT COUNT(*) FROM account WHERE email = $1`
	args := []interface{}{email}
	if len(excludedAccounts) > 0 {
		ids := make([]string, 0, len(excludedAccounts))
		for _, acct := range excludedAccounts {
			ids = append(ids, acct.ID)
		}
		query = `SELECT COUNT(*) FROM account WHERE email = ? AND id NOT IN (?)`
		var err error
		query, args, err = sqlx.In(query, email, ids)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		query = repo.db.Rebind(query)
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return account.ErrEmailExists
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	query := `
INSERT INTO account (id, email, password_hash, is_admin, is_paid, is_active, created_at, updated_at, last_login)
VALUES (:id, :email, :password_hash, :is_admin, :is_paid, :is_active, :created_at, :updated_at, :last_login)`
	if _, err := repo.db.NamedExecContext(ctx, query, acct); err != nil {
		return account.Account{}, errors.Wrap(err, "creating account")
	}
	return acct, nil
}

func (repo *accountRepository) QueryAllAccounts(ctx context.Context) ([]account.Account, error) {
	accts := make([]account.Account, 0)
	query := `SELECT * FROM account ORDER BY created_at`
	if err := repo.db.SelectContext(ctx, &accts, query); err != nil {
		return nil, errors.Wrap(err, "querying accounts")
	}
	return accts, nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id string) (account.Account, error) {
	var acct account.Account
	query := `SELECT * FROM account WHERE id = $1`
	if err := repo.db.GetContext(ctx, &acct, query, id); err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "getting account by ID")
	}
	return acct, nil
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	var acct account.Account
	query := `SELECT * FROM account WHERE email = $1`
	if err := repo.db.GetContext(ctx, &acct, query, email); err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "getting account by email")
	}
	return acct, nil
}

func (repo *accountRepository) UpdateOrCreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	query := `
INSERT INTO account (id, email, password_hash, is_admin, is_paid, is_active, created_at, updated_at, last_login)
VALUES (:id, :email, :password_hash, :is_admin, :is_paid, :is_active, :created_at, :updated_at, :last_login)
ON CONFLICT (id) DO UPDATE
    SET email         = EXCLUDED.email,
        password_hash = EXCLUDED.password_hash,
        is_admin      = EXCLUDED.is_admin,
        is_paid       = EXCLUDED.is_paid,
        is_active     = EXCLUDED.is_active,
        updated_at    = EXCLUDED.updated_at,
        last_login    = EXCLUDED.last_login`
	if _, err := repo.db.NamedExecContext(ctx, query, acct); err != nil {
		return account.Account{}, errors.Wrap(err, "upserting account")
	}
	return acct, nil
}
