package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/account"
)

type (
	DB struct {
		account *accountTable
	}

	accountTable struct {
		sync.RWMutex
		table map[string]*account.Account
	}
)

func Open() (*DB, error) {
	db := &DB{
		account: &accountTable{table: make(map[string]*account.Account)},
	}
	return db, nil
}
