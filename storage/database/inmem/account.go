package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/account"
)

type accountRepository struct {
	db *accountTable
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db.account}
}

func (repo *accountRepository) query() []account.Account {
	accts := make([]account.Account, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		accts = append(accts, *a)
	}
	sort.Slice(accts, func(i, j int) bool { return accts[i].CreatedAt.Before(accts[j].CreatedAt) })
	return accts
}

func isExcluded(acct account.Account, excluded []account.Account) bool {
	for _, excl := range excluded {
		if acct.ID == excl.ID {
			return true
		}
	}
	return false
}

func (repo *accountRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedAccounts ...account.Account) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.query() {
		if acct.Email == email && !isExcluded(acct, excludedAccounts) {
			return account.ErrEmailExists
		}
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if acct.ID == "" {
		acct.ID = uuid.New().String()
	}
	repo.db.table[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) QueryAllAccounts(ctx context.Context) ([]account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id string) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if acct, ok := repo.db.table[id]; ok {
		return *acct, nil
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByEmail(ctx context.Context, email string) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.query() {
		if acct.Email == email {
			return acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) UpdateOrCreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if acct.ID == "" {
		acct.ID = uuid.New().String()
	}
	repo.db.table[acct.ID] = &acct
	return acct, nil
}
