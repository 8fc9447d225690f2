package main

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
)

type setStatusRequest struct {
	Status string `json:"status"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService, enf *casbin.Enforcer) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	// checkout the caller's cart
	p.POST("/checkout", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		result, err := os.Checkout(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, result)
	})

	// order history for the caller
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orders, err := os.ListByUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, orders)
	})

	p.GET("/:orderid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		order, err := os.Get(c.Request().Context(), orderID)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		if order.UserID != claims.UserID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
		}
		return c.JSON(http.StatusOK, order)
	})

	// the invoice generated at checkout, served as a PDF
	p.GET("/:orderid/invoice", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		encoded, err := os.GetInvoice(c.Request().Context(), claims.UserID, orderID)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		pdf, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored invoice is corrupt"})
		}
		return c.Blob(http.StatusOK, "application/pdf", pdf)
	})

	// the owner may cancel while the order is still processing
	p.POST("/:orderid/cancel", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		status, err := os.Cancel(c.Request().Context(), claims.UserID, orderID)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": status})
	})

	// product manager: every order, for the back-office status view
	p.GET("/all", func(c echo.Context) error {
		orders, err := os.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, orders)
	}, middleware.Require(enf, "orders", "manage"))

	// product manager: advance the delivery status
	p.PUT("/:orderid/status", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		req := new(setStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		status, err := os.ChangeStatus(c.Request().Context(), orderID, req.Status)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": status})
	}, middleware.Require(enf, "orders", "manage"))

	// product manager: any order's invoice, no ownership check
	p.GET("/:orderid/invoice/file", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		encoded, err := os.GetInvoiceAsManager(c.Request().Context(), orderID)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		pdf, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored invoice is corrupt"})
		}
		return c.Blob(http.StatusOK, "application/pdf", pdf)
	}, middleware.Require(enf, "invoices", "read"))
}
