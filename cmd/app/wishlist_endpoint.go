package main

import (
	"net/http"
	"strconv"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addWishlistRequest struct {
	ProductID int64 `json:"p_id"`
}

func registerWishlistRoutes(g *echo.Group, ws *services.WishlistService) {
	p := g.Group("/wishlist")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		products, err := ws.List(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addWishlistRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := ws.Add(c.Request().Context(), claims.UserID, req.ProductID); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "added to wishlist"})
	})

	p.DELETE("/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := ws.Remove(c.Request().Context(), claims.UserID, productID); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "removed from wishlist"})
	})
}
