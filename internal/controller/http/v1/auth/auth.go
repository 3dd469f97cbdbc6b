package auth

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
)

type Controller struct {
	gate   Gate
	tokens Tokens
	leader Leader
}

func NewController(gate Gate, tokens Tokens, leader Leader) *Controller {
	return &Controller{gate: gate, tokens: tokens, leader: leader}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data SignInRequest

	if err := c.BindFunc(&data, "Email"); err != nil {
		return c.RespondError(err)
	}

	claims, err := uc.gate.SignIn(data.Email, data.Password)
	if err != nil {
		return c.RespondError(err)
	}

	return uc.respondToken(c, claims)
}

// LeaderSignIn records who is filling in attendance and for which sector and
// shift, and re-issues the session token carrying that choice.
func (uc Controller) LeaderSignIn(c *web.Context) error {
	var data LeaderSignInRequest

	if err := c.BindFunc(&data, "Name", "Sector"); err != nil {
		return c.RespondError(err)
	}

	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	sector, ok := entity.NormalizeSector(data.Sector)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.Errorf("unknown sector %q", data.Sector), http.StatusBadRequest))
	}

	shift := ""
	if strings.TrimSpace(data.Shift) != "" {
		shift = entity.NormalizeShift(data.Shift)
	}

	leader, err := uc.leader.GetOrCreate(c.Ctx, data.Name, sector, shift)
	if err != nil {
		return c.RespondError(err)
	}

	if err = uc.tokens.Revoke(c.Ctx, claims); err != nil {
		return c.RespondError(err)
	}

	claims.LeaderID = leader.ID
	claims.LeaderName = leader.Name
	claims.Sector = sector
	claims.Shift = shift

	return uc.respondToken(c, claims)
}

func (uc Controller) SignOut(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	if err = uc.tokens.Revoke(c.Ctx, claims); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) respondToken(c *web.Context, claims auth.Claims) error {
	accessToken, signed, err := uc.tokens.GenerateToken(claims)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating token"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]interface{}{
			"access_token": accessToken,
			"session":      signed,
		},
	}, http.StatusOK)
}
