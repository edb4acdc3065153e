package ops

import (
	"context"

	"github.com/altinukshini/dnafinder/internal/model"
)

// Login authenticates and stores the issued token.
func Login(ctx context.Context, env Env, creds model.Credentials) error {
	if err := env.Validator.Validate(creds); err != nil {
		return err
	}
	resp, err := env.Client.Login(ctx, creds)
	if err != nil {
		return err
	}
	return env.Store.Login(model.Session{Token: resp.BearerToken(), Email: creds.Email})
}

func Register(ctx context.Context, env Env, creds model.Credentials) error {
	if err := env.Validator.Validate(creds); err != nil {
		return err
	}
	return env.Client.Register(ctx, creds)
}

func Logout(env Env) error {
	return env.Store.Logout()
}
