package auth

import "context"

var _ Checker = (*APIKeyChecker)(nil)

type Checker interface {
	IsAuthorized(ctx context.Context, apiKey string) (bool, error)
}
