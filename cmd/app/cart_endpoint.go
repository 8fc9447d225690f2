package main

import (
	"net/http"
	"strconv"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductID int64 `json:"p_id"`
	Qty       int   `json:"quantity"`
}

type removeCartRequest struct {
	Qty int `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")
	p.Use(middleware.JWTMiddleware())

	// GET cart with per-line discounted prices and subtotal
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		cart, err := cs.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item, merging with an existing line
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if err := cs.Add(c.Request().Context(), claims.UserID, req.ProductID, req.Qty); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "added"})
	})

	// REMOVE qty units of one line
	p.DELETE("/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		req := new(removeCartRequest)
		if err := c.Bind(req); err != nil || req.Qty == 0 {
			req.Qty = 1
		}
		if err := cs.Remove(c.Request().Context(), claims.UserID, productID, req.Qty); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "removed"})
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := cs.Clear(c.Request().Context(), claims.UserID); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
	})
}
