package main

import (
	"net/http"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	auth := g.Group("/auth")

	// public
	auth.POST("/signup", func(c echo.Context) error {
		req := new(signupRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		userID, err := authSvc.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, echo.Map{"user_id": userID})
	})

	auth.POST("/login", func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}

		token, err := middleware.GenerateToken(user.UserID, user.Email, user.Role, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create token"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"user_id": user.UserID,
				"name":    user.Name,
				"email":   user.Email,
				"role":    user.Role,
			},
		})
	})

	// authenticated
	auth.GET("/me", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})
	}, middleware.JWTMiddleware())
}
