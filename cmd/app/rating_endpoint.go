package main

import (
	"net/http"
	"strconv"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type rateRequest struct {
	Rate int `json:"rate"`
}

func registerRatingRoutes(g *echo.Group, rs *services.RatingService) {
	// public average
	g.GET("/products/:productid/rating", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		avg, err := rs.Average(c.Request().Context(), productID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"p_id": productID, "average": avg})
	})

	// authenticated rating management
	auth := g.Group("", middleware.JWTMiddleware())

	auth.POST("/products/:productid/rating", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		req := new(rateRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := rs.Rate(c.Request().Context(), claims.UserID, productID, req.Rate); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "rated"})
	})

	auth.DELETE("/products/:productid/rating", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		if err := rs.Delete(c.Request().Context(), claims.UserID, productID); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "rating removed"})
	})

	auth.GET("/me/ratings", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		ratings, err := rs.ListByUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, ratings)
	})
}
