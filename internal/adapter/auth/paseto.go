package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
)

type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
	ttl    time.Duration
}

// New builds the admin token service. Without a configured key tokens only live as
// long as the process.
func New(cfg *config.Auth) (port.TokenService, error) {
	var key paseto.V4SymmetricKey
	if cfg.AdminKey != "" {
		k, err := paseto.V4SymmetricKeyFromHex(cfg.AdminKey)
		if err != nil {
			return nil, fmt.Errorf("invalid admin token key: %w", err)
		}
		key = k
	} else {
		key = paseto.NewV4SymmetricKey()
	}

	parser := paseto.NewParser()
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &PasetoToken{
		parser: &parser,
		key:    &key,
		ttl:    ttl,
	}, nil
}

func (p *PasetoToken) CreateToken(subject string) (string, error) {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.ttl))

	payload := port.TokenPayload{Subject: subject}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
