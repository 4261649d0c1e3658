package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound             = errors.New("account not found")
	ErrEmailExists          = errors.New("an account with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAccountDeactivated   = errors.New("account deactivated")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedAccounts ...Account) error
		CreateAccount(ctx context.Context, acct Account) (Account, error)
		QueryAllAccounts(ctx context.Context) ([]Account, error)
		GetAccountByID(ctx context.Context, id string) (Account, error)
		GetAccountByEmail(ctx context.Context, email string) (Account, error)
		UpdateOrCreateAccount(ctx context.Context, acct Account) (Account, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(email string, exclAccts ...Account) error {
	err := svc.repo.CheckEmailUniqueness(context.Background(), email, exclAccts...)
	if err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, na NewAccount) (Account, error) {
	now := time.Now().UTC()
	acct := Account{
		ID:        uuid.New().String(),
		Email:     na.Email,
		IsAdmin:   na.IsAdmin,
		IsPaid:    na.IsPaid,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, err
	}
	return svc.repo.CreateAccount(ctx, acct)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Account, error) {
	return svc.repo.QueryAllAccounts(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Account, error) {
	return svc.repo.GetAccountByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Account, error) {
	return svc.repo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Authenticate checks the credentials and timestamps the login.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (Account, error) {
	acct, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, ErrAuthenticationFailed
		}
		return Account{}, err
	}
	if err = acct.CheckPassword(pwd); err != nil {
		return Account{}, ErrAuthenticationFailed
	}
	if !acct.IsActive {
		return Account{}, ErrAccountDeactivated
	}

	acct.LastLogin = null.TimeFrom(time.Now().UTC())
	return svc.repo.UpdateOrCreateAccount(ctx, acct)
}
