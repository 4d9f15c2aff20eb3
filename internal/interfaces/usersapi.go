package interfaces

import (
	"context"

	"github.com/haguru/signup/internal/models/dto"
)

// UsersAPI is the single HTTP boundary the sign-up form talks to.
// CreateUser returns nil when the backend accepted the user.
type UsersAPI interface {
	CreateUser(ctx context.Context, req dto.SignUpRequestDTO) error
}
