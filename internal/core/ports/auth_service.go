package ports

import (
	"context"
	"time"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
