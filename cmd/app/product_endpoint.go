package main

import (
	"net/http"
	"strconv"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
)

type setStockRequest struct {
	Stock int `json:"stock"`
}

type setPriceRequest struct {
	Price float64 `json:"price"`
}

type setDiscountRequest struct {
	Discount float64 `json:"discount"`
}

func registerProductRoutes(g *echo.Group, ps *services.ProductService, enf *casbin.Enforcer) {
	p := g.Group("/products")

	// public catalog
	p.GET("", func(c echo.Context) error {
		byPopularity := c.QueryParam("sort") == "popularity"
		products, err := ps.List(c.Request().Context(), byPopularity)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	p.GET("/best-sellers", func(c echo.Context) error {
		products, err := ps.BestSellers(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	p.GET("/:productid", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		product, err := ps.Get(c.Request().Context(), productID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, product)
	})

	// product manager: stock
	p.PUT("/:productid/stock", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		req := new(setStockRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := ps.SetStock(c.Request().Context(), productID, req.Stock); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "stock updated"})
	}, middleware.JWTMiddleware(), middleware.Require(enf, "products", "stock"))

	// sales manager: price and discount
	p.PUT("/:productid/price", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		req := new(setPriceRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := ps.SetPrice(c.Request().Context(), productID, req.Price); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "price updated"})
	}, middleware.JWTMiddleware(), middleware.Require(enf, "products", "price"))

	p.PUT("/:productid/discount", func(c echo.Context) error {
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		req := new(setDiscountRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := ps.SetDiscount(c.Request().Context(), productID, req.Discount); err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "discount updated"})
	}, middleware.JWTMiddleware(), middleware.Require(enf, "products", "price"))
}
