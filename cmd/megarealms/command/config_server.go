package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/mike-warlet/megarealms/internal/server"
)

type ServerConfig struct {
	Port uint16 `json:"port"`

	// Tokens are bcrypt hashes of accepted bearer tokens. Empty accepts any
	// bearer token.
	Tokens []string `json:"tokens,omitempty"`
}

func (c *ServerConfig) validate() error {
	el := errors.NewErrorList()

	if c.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	for i, t := range c.Tokens {
		if _, err := bcrypt.Cost([]byte(t)); err != nil {
			el.Add(fmt.Errorf("token %d: not a bcrypt hash: %w", i, err))
		}
	}

	return el.Err()
}

func (c *ServerConfig) buildVerifier() *server.TokenVerifier {
	return server.NewTokenVerifier(c.Tokens)
}
