package auth

import (
	"context"

	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
)

type Gate interface {
	SignIn(email, password string) (auth.Claims, error)
}

type Tokens interface {
	GenerateToken(claims auth.Claims) (string, auth.Claims, error)
	Revoke(ctx context.Context, claims auth.Claims) error
}

type Leader interface {
	GetOrCreate(ctx context.Context, name, sector, shift string) (entity.Leader, error)
}
