package controllers

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/pizza-delivery-api/app/services"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Signup handles POST /auth/signup.
func (ac *AuthController) Signup(c *ctx.Context) {
	var input services.SignupInput
	if !c.BindJSON(&input) {
		return
	}

	user, err := ac.service.Signup(c.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var input services.LoginInput
	if !c.BindJSON(&input) {
		return
	}

	pair, err := ac.service.Login(c.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

// Refresh handles POST /auth/refresh behind a refresh-token guard.
func (ac *AuthController) Refresh(c *ctx.Context) {
	claims, ok := c.Claims()
	if !ok {
		c.Unauthorized()
		return
	}

	access, err := ac.service.Refresh(c.Context(), claims)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]string{"access_token": access})
}

// Logout handles POST /auth/logout. Either token type may be revoked.
func (ac *AuthController) Logout(c *ctx.Context) {
	claims, ok := c.Claims()
	if !ok {
		c.Unauthorized()
		return
	}

	typ, err := ac.service.Logout(c.Context(), claims)
	if err != nil {
		fail(c, err)
		return
	}
	c.Message(http.StatusOK, fmt.Sprintf("%s token successfully revoked", typ.Label()))
}
