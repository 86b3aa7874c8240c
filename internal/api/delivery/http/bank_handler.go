package http

import (
	"net/http"
	"strconv"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BankHandler handles HTTP requests for bank accounts, their ledger and time
// deposits.
type BankHandler struct {
	bankService service.BankService
	logger      *logger.Logger
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService service.BankService, logger *logger.Logger) *BankHandler {
	return &BankHandler{bankService: bankService, logger: logger}
}

// RegisterRoutes registers the bank routes to the Echo group.
func (h *BankHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/banks", h.CreateBank)
	g.GET("/users/banks", h.GetBanks)
	g.PUT("/banks/:id", h.UpdateBank)
	g.DELETE("/banks/:id", h.DeleteBank)
	g.GET("/users/banks/summary", h.GetBankSummary)

	g.POST("/banks/records", h.CreateBankRecord)
	g.GET("/users/banks/records", h.GetBankRecords)
	g.PUT("/banks/records/:id", h.UpdateBankRecord)
	g.DELETE("/banks/records/:id", h.DeleteBankRecord)

	g.POST("/banks/time-deposit/records", h.CreateTimeDepositRecord)
	g.GET("/users/banks/time-deposit/records", h.GetTimeDepositRecords)
	g.PUT("/banks/time-deposit/records/:id", h.UpdateTimeDepositRecord)
	g.DELETE("/banks/time-deposit/records/:id", h.DeleteTimeDepositRecord)
}

func (h *BankHandler) CreateBank(c echo.Context) error {
	var req dto.CreateBankRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	bank, err := h.bankService.CreateBank(c.Request().Context(), userID(c), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, bank)
}

func (h *BankHandler) GetBanks(c echo.Context) error {
	banks, err := h.bankService.ListBanks(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list banks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get banks"})
	}
	return c.JSON(http.StatusOK, banks)
}

func (h *BankHandler) UpdateBank(c echo.Context) error {
	var req dto.UpdateBankRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.bankService.UpdateBank(c.Request().Context(), userID(c), c.Param("id"), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BankHandler) DeleteBank(c echo.Context) error {
	if err := h.bankService.DeleteBank(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BankHandler) GetBankSummary(c echo.Context) error {
	summary, err := h.bankService.GetBankSummary(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to build bank summary", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get bank summary"})
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *BankHandler) CreateBankRecord(c echo.Context) error {
	var req dto.CreateBankRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.bankService.CreateBankRecord(c.Request().Context(), userID(c), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *BankHandler) GetBankRecords(c echo.Context) error {
	records, err := h.bankService.ListBankRecords(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list bank records", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get bank records"})
	}
	return c.JSON(http.StatusOK, records)
}

func (h *BankHandler) UpdateBankRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.UpdateBankRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.bankService.UpdateBankRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BankHandler) DeleteBankRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.bankService.DeleteBankRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BankHandler) CreateTimeDepositRecord(c echo.Context) error {
	var req dto.CreateTimeDepositRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.bankService.CreateTimeDepositRecord(c.Request().Context(), userID(c), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *BankHandler) GetTimeDepositRecords(c echo.Context) error {
	records, err := h.bankService.ListTimeDepositRecords(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list time deposit records", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get time deposit records"})
	}
	return c.JSON(http.StatusOK, records)
}

func (h *BankHandler) UpdateTimeDepositRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	var req dto.UpdateTimeDepositRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.bankService.UpdateTimeDepositRecord(c.Request().Context(), userID(c), uint(id), req); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BankHandler) DeleteTimeDepositRecord(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid record ID"})
	}

	if err := h.bankService.DeleteTimeDepositRecord(c.Request().Context(), userID(c), uint(id)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
