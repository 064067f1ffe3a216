package register

import (
	"context"
)

type Service interface {
	Register(ctx context.Context, username, password, email string) (string, error)
}
