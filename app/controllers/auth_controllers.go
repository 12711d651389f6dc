package controllers

import (
	"github.com/shashiranjanraj/pubqr/app/services"
	"github.com/shashiranjanraj/pubqr/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginInput struct {
	PIN string `json:"pin"`
}

// Login handles POST /auth.
func (c *AuthController) Login(cx *ctx.Context) {
	var body loginInput
	if !cx.DecodeJSON(&body) {
		return
	}

	token, err := c.service.Login(cx.Context(), body.PIN)
	if err != nil {
		fail(cx, err)
		return
	}

	cx.Success(map[string]string{"token": token})
}
