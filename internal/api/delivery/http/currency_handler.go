package http

import (
	"net/http"
	"strconv"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CurrencyHandler handles HTTP requests for the currency catalog and
// per-user currency exchanges.
type CurrencyHandler struct {
	currencyService service.CurrencyService
	logger          *logger.Logger
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyService service.CurrencyService, logger *logger.Logger) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService, logger: logger}
}

// RegisterRoutes registers the currency routes to the Echo group.
func (h *CurrencyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/currencies", h.GetCurrencies)
	g.POST("/currencies", h.CreateCurrency)
	g.PUT("/currencies/:id", h.UpdateCurrency)

	g.POST("/currency-transactions", h.CreateTransaction)
	g.GET("/users/currency-transactions", h.GetTransactions)
	g.PUT("/currency-transactions/:id", h.UpdateTransaction)
	g.DELETE("/currency-transactions/:id", h.DeleteTransaction)
}

func (h *CurrencyHandler) GetCurrencies(c echo.Context) error {
	currencies, err := h.currencyService.ListCurrencies(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list currencies", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get currencies"})
	}
	return c.JSON(http.StatusOK, currencies)
}

func (h *CurrencyHandler) CreateCurrency(c echo.Context) error {
	var req dto.CreateCurrencyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	currency, err := h.currencyService.CreateCurrency(c.Request().Context(), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, currency)
}

func (h *CurrencyHandler) UpdateCurrency(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid currency ID"})
	}

	var req dto.UpdateCurrencyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.currencyService.UpdateCurrency(c.Request().Context(), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CurrencyHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateCurrencyTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.currencyService.CreateCurrencyTransaction(c.Request().Context(), userID(c), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *CurrencyHandler) GetTransactions(c echo.Context) error {
	records, err := h.currencyService.ListCurrencyTransactions(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list currency transactions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get currency transactions"})
	}
	return c.JSON(http.StatusOK, records)
}

func (h *CurrencyHandler) UpdateTransaction(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction ID"})
	}

	var req dto.CreateCurrencyTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.currencyService.UpdateCurrencyTransaction(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CurrencyHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction ID"})
	}

	if err := h.currencyService.DeleteCurrencyTransaction(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
