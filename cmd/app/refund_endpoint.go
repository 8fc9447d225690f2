package main

import (
	"net/http"
	"strconv"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
)

type refundRequest struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"p_id"`
	Qty       int   `json:"quantity"`
}

type refundDecisionRequest struct {
	Decision string `json:"decision"` // "approved" or "rejected"
}

func registerRefundRoutes(g *echo.Group, rs *services.RefundService, enf *casbin.Enforcer) {
	p := g.Group("/refunds")
	p.Use(middleware.JWTMiddleware())

	// customer requests a refund for one delivered order line
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(refundRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		refund, err := rs.Request(c.Request().Context(), claims.UserID, req.OrderID, req.ProductID, req.Qty)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, refund)
	})

	// customer's own requests
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		refunds, err := rs.ListByUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, refunds)
	})

	// sales manager: every request, pending first
	p.GET("/all", func(c echo.Context) error {
		refunds, err := rs.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, refunds)
	}, middleware.Require(enf, "refunds", "decide"))

	// sales manager: approve or reject a pending request
	p.POST("/:refundid/decision", func(c echo.Context) error {
		refundID, err := strconv.ParseInt(c.Param("refundid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid refund id"})
		}
		req := new(refundDecisionRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		status, err := rs.Decide(c.Request().Context(), refundID, req.Decision)
		if err != nil {
			return c.JSON(statusForError(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": status})
	}, middleware.Require(enf, "refunds", "decide"))
}
