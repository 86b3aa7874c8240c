package http

import (
	"net/http"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BrokerageFirmHandler handles HTTP requests for brokerage firms.
type BrokerageFirmHandler struct {
	firmService  service.BrokerageFirmService
	stockService service.StockService
	logger       *logger.Logger
}

// NewBrokerageFirmHandler creates a new BrokerageFirmHandler.
func NewBrokerageFirmHandler(firmService service.BrokerageFirmService, stockService service.StockService, logger *logger.Logger) *BrokerageFirmHandler {
	return &BrokerageFirmHandler{firmService: firmService, stockService: stockService, logger: logger}
}

// RegisterRoutes registers the brokerage firm routes to the Echo group.
func (h *BrokerageFirmHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/brokerage-firms", h.CreateBrokerageFirm)
	g.GET("/users/brokerage-firms", h.GetBrokerageFirms)
	g.PUT("/brokerage-firms/:id", h.UpdateBrokerageFirm)
	g.DELETE("/brokerage-firms/:id", h.DeleteBrokerageFirm)
	g.GET("/users/brokerage-firms/valuation", h.GetValuations)
}

func (h *BrokerageFirmHandler) CreateBrokerageFirm(c echo.Context) error {
	var req dto.CreateBrokerageFirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	firm, err := h.firmService.CreateBrokerageFirm(c.Request().Context(), userID(c), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, firm)
}

func (h *BrokerageFirmHandler) GetBrokerageFirms(c echo.Context) error {
	firms, err := h.firmService.ListBrokerageFirms(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list brokerage firms", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get brokerage firms"})
	}
	return c.JSON(http.StatusOK, firms)
}

func (h *BrokerageFirmHandler) UpdateBrokerageFirm(c echo.Context) error {
	var req dto.UpdateBrokerageFirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.firmService.UpdateBrokerageFirm(c.Request().Context(), userID(c), c.Param("id"), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BrokerageFirmHandler) DeleteBrokerageFirm(c echo.Context) error {
	if err := h.firmService.DeleteBrokerageFirm(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BrokerageFirmHandler) GetValuations(c echo.Context) error {
	valuations, err := h.stockService.GetBrokerageFirmValuations(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to value brokerage firms", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get valuations"})
	}
	return c.JSON(http.StatusOK, valuations)
}
