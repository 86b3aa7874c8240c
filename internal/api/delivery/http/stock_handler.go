package http

import (
	"net/http"
	"strconv"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for the brokerage holdings domain.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/stocks/user-stocks", h.CreateUserStock)
	g.GET("/users/stocks", h.GetUserStocks)
	g.GET("/stocks/:code/history", h.GetStockHistory)

	g.GET("/users/stocks/records", h.GetStockSummaries)
	g.POST("/stocks/records", h.CreateStockRecord)
	g.PUT("/stocks/records/:id", h.UpdateStockRecord)
	g.DELETE("/stocks/records/:id", h.DeleteStockRecord)

	g.POST("/stocks/buy-records", h.CreateBuyRecord)
	g.PUT("/stocks/buy-records/:id", h.UpdateBuyRecord)
	g.DELETE("/stocks/buy-records/:id", h.DeleteBuyRecord)

	g.POST("/stocks/bundle-sell-records", h.CreateBundleSellRecord)
	g.GET("/users/stocks/bundle-sell-records", h.GetBundleSellRecords)
	g.PUT("/stocks/bundle-sell-records/:id", h.UpdateBundleSellRecord)
	g.DELETE("/stocks/bundle-sell-records/:id", h.DeleteBundleSellRecord)

	g.PUT("/stocks/sell-records/:id", h.UpdateSellRecord)
	g.DELETE("/stocks/sell-records/:id", h.DeleteSellRecord)
}

func (h *StockHandler) CreateUserStock(c echo.Context) error {
	var req dto.CreateUserStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	userStock, err := h.stockService.CreateUserStock(c.Request().Context(), userID(c), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, userStock)
}

func (h *StockHandler) GetUserStocks(c echo.Context) error {
	userStocks, err := h.stockService.ListUserStocks(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list user stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get user stocks"})
	}
	return c.JSON(http.StatusOK, userStocks)
}

func (h *StockHandler) GetStockHistory(c echo.Context) error {
	histories, err := h.stockService.ListStockHistories(c.Request().Context(), c.Param("code"))
	if err != nil {
		h.logger.Error("Failed to list stock history",
			logger.StringField("code", c.Param("code")), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get stock history"})
	}
	return c.JSON(http.StatusOK, histories)
}

func (h *StockHandler) GetStockSummaries(c echo.Context) error {
	summaries, err := h.stockService.GetStockSummaries(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to summarize stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get stock summaries"})
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *StockHandler) CreateStockRecord(c echo.Context) error {
	var req dto.CreateStockRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	record, err := h.stockService.CreateStockRecord(c.Request().Context(), userID(c), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *StockHandler) UpdateStockRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.UpdateStockRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.stockService.UpdateStockRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) DeleteStockRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.stockService.DeleteStockRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) CreateBuyRecord(c echo.Context) error {
	var req dto.CreateStockBuyRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.stockService.CreateStockBuyRecord(c.Request().Context(), userID(c), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *StockHandler) UpdateBuyRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.UpdateStockBuyRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.stockService.UpdateStockBuyRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) DeleteBuyRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.stockService.DeleteStockBuyRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) CreateBundleSellRecord(c echo.Context) error {
	var req dto.CreateStockBundleSellRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.stockService.CreateStockBundleSellRecord(c.Request().Context(), userID(c), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *StockHandler) GetBundleSellRecords(c echo.Context) error {
	bundles, err := h.stockService.ListStockBundleSellRecords(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list bundle sell records", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get bundle sell records"})
	}
	return c.JSON(http.StatusOK, bundles)
}

func (h *StockHandler) UpdateBundleSellRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.UpdateStockBundleSellRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.stockService.UpdateStockBundleSellRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) DeleteBundleSellRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.stockService.DeleteStockBundleSellRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) UpdateSellRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.UpdateStockSellRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.stockService.UpdateStockSellRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *StockHandler) DeleteSellRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.stockService.DeleteStockSellRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
