package main

import (
	"fmt"
	"net/http"
	"time"

	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/services"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func parseDateRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date")
	}
	end, err := time.Parse("2006-01-02", c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date before start date")
	}
	return start, end, nil
}

func registerReportRoutes(g *echo.Group, rs *services.ReportService, enf *casbin.Enforcer) {
	p := g.Group("/revenue")
	p.Use(middleware.JWTMiddleware(), middleware.Require(enf, "revenue", "read"))

	// daily revenue / cost / profit between two dates, inclusive
	p.GET("", func(c echo.Context) error {
		start, end, err := parseDateRange(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		rows, err := rs.Revenue(c.Request().Context(), start, end)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, rows)
	})

	// same report as a downloadable spreadsheet
	p.GET("/export", func(c echo.Context) error {
		start, end, err := parseDateRange(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		book, err := rs.RevenueXLSX(c.Request().Context(), start, end)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="revenue-report.xlsx"`)
		return c.Blob(http.StatusOK, xlsxContentType, book)
	})
}
