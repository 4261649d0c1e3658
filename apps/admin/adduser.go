package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
)

// addUser updates or creates an account.Account
func (cli *commandLine) addUser(email, pwd string, isAdmin, isPaid bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	acct, err := cli.acctRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		if err != account.ErrNotFound {
			return err
		}
		acct = account.Account{
			ID:        uuid.New().String(),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}
	acct.IsAdmin = isAdmin
	acct.IsPaid = isPaid
	acct.IsActive = true
	acct.UpdatedAt = time.Now().UTC()
	if err := acct.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.acctRepo.UpdateOrCreateAccount(ctx, acct); err != nil {
		return err
	}
	return nil
}
