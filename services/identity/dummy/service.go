package dummyidentity

import (
	"context"
	"sync"

	"github.com/trezcool/darasa/core/session"
)

// Service is a scriptable session.Backend for tests.
type Service struct {
	mu sync.Mutex

	// User is returned on success; Err, when set, fails every call.
	User session.User
	Err  error

	// Established records every (accessToken, refreshToken) pair received.
	Established [][2]string
}

var _ session.Backend = (*Service)(nil)

func NewService() *Service {
	return &Service{}
}

func (svc *Service) Establish(ctx context.Context, accessToken, refreshToken string) (session.User, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.Established = append(svc.Established, [2]string{accessToken, refreshToken})
	if svc.Err != nil {
		return session.User{}, svc.Err
	}
	return svc.User, nil
}
