package api

import (
	"context"

	"github.com/devpal/newbase/internal/models"
)

// Client exposes one operation per remote capability. Every method returns
// either a populated envelope or a classified *Error; implementations never
// retry on their own — fallback policy belongs to the repositories.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*Envelope[models.User], error)
	Register(ctx context.Context, req RegisterRequest) (*Envelope[Empty], error)
	ForgotPassword(ctx context.Context, email string) (*Envelope[Empty], error)

	GetProfile(ctx context.Context) (*Envelope[models.User], error)
	UpdateProfile(ctx context.Context, user models.User) (*Envelope[Empty], error)

	ListNotifications(ctx context.Context) (*Envelope[[]models.Notification], error)
	MarkNotificationRead(ctx context.Context, id string) (*Envelope[Empty], error)
}

// TokenSource supplies the bearer token for authenticated calls. The session
// store implements it; an empty token means "send no Authorization header".
type TokenSource interface {
	AuthToken(ctx context.Context) (string, error)
}
