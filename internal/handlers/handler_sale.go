package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/dto"
	"github.com/officio/business_mgmt_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(saleService portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: saleService,
	}
}

// registerSaleRoutes sets up the routes for sale management.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.POST("/:saleID/items", h.addItem)
		sales.DELETE("/:saleID/items/:itemID", h.removeItem)
		sales.POST("/:saleID/finalize", h.finalizeSale)
		sales.POST("/:saleID/cancel", h.cancelSale)
		sales.DELETE("/:saleID", h.deleteSale) // Admin only
	}
}

// writeSaleError maps sale workflow errors onto HTTP responses.
func writeSaleError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"product":   stockErr.ProductName,
			"available": stockErr.Available,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Operation not permitted"})
	case errors.Is(err, domain.ErrSaleClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Sale is no longer modifiable"})
	case errors.Is(err, domain.ErrEmptySale):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cannot finalize a sale with no items"})
	case errors.Is(err, domain.ErrInvalidCatalogRef),
		errors.Is(err, domain.ErrItemRefExclusivity),
		errors.Is(err, domain.ErrItemQuantity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// createSale godoc
// @Summary Open a new sale
// @Description Creates a new PENDING sale for a customer with no line items
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Failure 500 {object} ErrorResponse "Failed to create sale"
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	sellerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, sellerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		logger.Error("Failed to create sale", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create sale"})
		return
	}

	logger.Info("Sale created", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Retrieves a paginated list of sales, newest first
// @Tags sales
// @Produce json
// @Param limit query int false "Max results per page (default 20)"
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 500 {object} ErrorResponse "Failed to list sales"
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSale godoc
// @Summary Get a sale
// @Description Retrieves a sale and its line items by ID
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve sale"
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
			return
		}
		logger.Error("Failed to get sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve sale"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// addItem godoc
// @Summary Add a line item to a sale
// @Description Adds a product or service line item to a PENDING sale, snapshotting the catalog price
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param item body dto.AddItemRequest true "Line item details"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse "Invalid item reference or quantity"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 409 {object} ErrorResponse "Sale closed or insufficient stock"
// @Failure 500 {object} ErrorResponse "Failed to add item"
// @Router /sales/{saleID}/items [post]
func (h *saleHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.AddItem(c.Request.Context(), saleID, req, userID)
	if err != nil {
		writeSaleError(c, logger, err, "Failed to add item")
		return
	}

	logger.Info("Item added to sale", slog.String("sale_id", saleID))
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// removeItem godoc
// @Summary Remove a line item from a sale
// @Description Removes a line item from a PENDING sale and recomputes the total
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param itemID path string true "Sale Item ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse "Sale or item not found"
// @Failure 409 {object} ErrorResponse "Sale is no longer modifiable"
// @Failure 500 {object} ErrorResponse "Failed to remove item"
// @Router /sales/{saleID}/items/{itemID} [delete]
func (h *saleHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")
	itemID := c.Param("itemID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.RemoveItem(c.Request.Context(), saleID, itemID, userID)
	if err != nil {
		writeSaleError(c, logger, err, "Failed to remove item")
		return
	}

	logger.Info("Item removed from sale", slog.String("sale_id", saleID), slog.String("item_id", itemID))
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// finalizeSale godoc
// @Summary Finalize a sale
// @Description Atomically deducts stock, records the income ledger entry and marks the sale COMPLETED. Finalizing an already COMPLETED sale is a no-op that returns a warning.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse "Sale has no items"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 409 {object} ErrorResponse "Sale canceled or insufficient stock"
// @Failure 500 {object} ErrorResponse "Failed to finalize sale"
// @Router /sales/{saleID}/finalize [post]
func (h *saleHandler) finalizeSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.Finalize(c.Request.Context(), saleID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyFinalized) && sale != nil {
			c.JSON(http.StatusOK, gin.H{
				"sale":    dto.ToSaleResponse(sale),
				"warning": fmt.Sprintf("Sale %s is already finalized", saleID),
			})
			return
		}
		writeSaleError(c, logger, err, "Failed to finalize sale")
		return
	}

	logger.Info("Sale finalized", slog.String("sale_id", saleID))
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// cancelSale godoc
// @Summary Cancel a sale
// @Description Transitions a PENDING sale to CANCELED. No stock or ledger changes are involved.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 409 {object} ErrorResponse "Sale is not PENDING"
// @Failure 500 {object} ErrorResponse "Failed to cancel sale"
// @Router /sales/{saleID}/cancel [post]
func (h *saleHandler) cancelSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), saleID, userID)
	if err != nil {
		writeSaleError(c, logger, err, "Failed to cancel sale")
		return
	}

	logger.Info("Sale canceled", slog.String("sale_id", saleID))
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Deletes a sale. For a COMPLETED sale this restores product stock and removes the linked ledger transactions in the same transaction. Admin only.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 204 "Sale deleted"
// @Failure 403 {object} ErrorResponse "Admin privileges required"
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse "Failed to delete sale"
// @Router /sales/{saleID} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID, userID); err != nil {
		writeSaleError(c, logger, err, "Failed to delete sale")
		return
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	c.Status(http.StatusNoContent)
}
