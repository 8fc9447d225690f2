package main

import (
	"net/http"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type deliveryAddressRequest struct {
	DeliveryAddress string `json:"delivery_address"`
}

type legalNameRequest struct {
	LegalName string `json:"legal_name"`
}

func registerCustomerRoutes(g *echo.Group, cs *services.CustomerService) {
	p := g.Group("/me")
	p.Use(middleware.JWTMiddleware())

	p.GET("/profile", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		info, err := cs.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusOK, info)
	})

	p.PUT("/delivery-address", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(deliveryAddressRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := cs.UpdateDeliveryAddress(c.Request().Context(), claims.UserID, req.DeliveryAddress); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "delivery address updated"})
	})

	p.PUT("/legal-name", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(legalNameRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := cs.UpdateLegalName(c.Request().Context(), claims.UserID, req.LegalName); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "legal name updated"})
	})
}
