package main

import (
	"fmt"
	"time"

	"kitchenmate/internal/api"
)

// TokenCmd prints a signed API token
type TokenCmd struct {
	User string        `arg:"" help:"User id to put in the token subject."`
	TTL  time.Duration `help:"Token lifetime." default:"24h"`
}

func (cmd *TokenCmd) Run(app *appContext) error {
	token, err := api.IssueToken(app.cfg.Auth.JWTSecret, cmd.User, cmd.TTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
