package http

import (
	"net/http"
	"strconv"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IncExpHandler handles HTTP requests for the income/expense ledger.
type IncExpHandler struct {
	incExpService service.IncExpService
	logger        *logger.Logger
}

// NewIncExpHandler creates a new IncExpHandler.
func NewIncExpHandler(incExpService service.IncExpService, logger *logger.Logger) *IncExpHandler {
	return &IncExpHandler{incExpService: incExpService, logger: logger}
}

// RegisterRoutes registers the income/expense routes to the Echo group.
func (h *IncExpHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/inc-exp", h.CreateRecord)
	g.GET("/users/inc-exp", h.GetRecords)
	g.PUT("/inc-exp/:id", h.UpdateRecord)
	g.DELETE("/inc-exp/:id", h.DeleteRecord)
}

func (h *IncExpHandler) CreateRecord(c echo.Context) error {
	var req dto.CreateIncExpRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.incExpService.CreateRecord(c.Request().Context(), userID(c), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *IncExpHandler) GetRecords(c echo.Context) error {
	records, err := h.incExpService.ListRecords(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list income/expense records", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get records"})
	}
	return c.JSON(http.StatusOK, records)
}

func (h *IncExpHandler) UpdateRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.CreateIncExpRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.incExpService.UpdateRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *IncExpHandler) DeleteRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.incExpService.DeleteRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
