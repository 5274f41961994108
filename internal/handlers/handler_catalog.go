package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/dto"
	"github.com/officio/business_mgmt_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for the product and service catalog.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(catalogService portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
	}
}

// registerCatalogRoutes sets up the routes for catalog management.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/low-stock", h.listLowStockProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deleteProduct) // Admin only
	}

	svcs := rg.Group("/services")
	{
		svcs.POST("", h.createService)
		svcs.GET("", h.listServices)
		svcs.GET("/:serviceID", h.getService)
		svcs.PUT("/:serviceID", h.updateService)
		svcs.DELETE("/:serviceID", h.deleteService) // Admin only
	}
}

// writeCatalogError maps catalog errors onto HTTP responses.
func writeCatalogError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Catalog entry not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Operation not permitted"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Creates a new product in the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 409 {object} ErrorResponse "SKU already exists"
// @Failure 500 {object} ErrorResponse "Failed to create product"
// @Router /products [post]
func (h *catalogHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		writeCatalogError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags catalog
// @Produce json
// @Param limit query int false "Max results per page (default 20)"
// @Param offset query int false "Results to skip (default 0)"
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} ErrorResponse "Failed to list products"
// @Router /products [get]
func (h *catalogHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCatalogParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// listLowStockProducts godoc
// @Summary List low stock products
// @Description Retrieves products at or below their minimum stock threshold
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} ErrorResponse "Failed to list low stock products"
// @Router /products/low-stock [get]
func (h *catalogHandler) listLowStockProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	products, err := h.catalogService.ListLowStockProducts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list low stock products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list low stock products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// getProduct godoc
// @Summary Get a product
// @Tags catalog
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve product"
// @Router /products/{productID} [get]
func (h *catalogHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.catalogService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
			return
		}
		logger.Error("Failed to get product", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Tags catalog
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse "Failed to update product"
// @Router /products/{productID} [put]
func (h *catalogHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), productID, req, userID)
	if err != nil {
		writeCatalogError(c, logger, err, "Failed to update product")
		return
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Removes a product from the catalog. Admin only. Fails while sale items reference the product.
// @Tags catalog
// @Produce json
// @Param productID path string true "Product ID"
// @Success 204 "Product deleted"
// @Failure 403 {object} ErrorResponse "Admin privileges required"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 409 {object} ErrorResponse "Product is referenced by sales"
// @Failure 500 {object} ErrorResponse "Failed to delete product"
// @Router /products/{productID} [delete]
func (h *catalogHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), productID, userID); err != nil {
		writeCatalogError(c, logger, err, "Failed to delete product")
		return
	}

	logger.Info("Product deleted", slog.String("product_id", productID))
	c.Status(http.StatusNoContent)
}

// createService godoc
// @Summary Create a service
// @Description Creates a new service offering in the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param service body dto.CreateServiceRequest true "Service details"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 500 {object} ErrorResponse "Failed to create service"
// @Router /services [post]
func (h *catalogHandler) createService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), req, userID)
	if err != nil {
		writeCatalogError(c, logger, err, "Failed to create service")
		return
	}

	logger.Info("Service created", slog.String("service_id", service.ServiceID))
	c.JSON(http.StatusCreated, dto.ToServiceResponse(service))
}

// listServices godoc
// @Summary List services
// @Tags catalog
// @Produce json
// @Param limit query int false "Max results per page (default 20)"
// @Param offset query int false "Results to skip (default 0)"
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} ErrorResponse "Failed to list services"
// @Router /services [get]
func (h *catalogHandler) listServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCatalogParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	services, err := h.catalogService.ListServices(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list services", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list services"})
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponses(services))
}

// getService godoc
// @Summary Get a service
// @Tags catalog
// @Produce json
// @Param serviceID path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} ErrorResponse "Service not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve service"
// @Router /services/{serviceID} [get]
func (h *catalogHandler) getService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	service, err := h.catalogService.GetServiceByID(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Service not found"})
			return
		}
		logger.Error("Failed to get service", slog.String("error", err.Error()), slog.String("service_id", serviceID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve service"})
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

// updateService godoc
// @Summary Update a service
// @Tags catalog
// @Accept json
// @Produce json
// @Param serviceID path string true "Service ID"
// @Param service body dto.UpdateServiceRequest true "Fields to update"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} ErrorResponse "Invalid request format"
// @Failure 404 {object} ErrorResponse "Service not found"
// @Failure 500 {object} ErrorResponse "Failed to update service"
// @Router /services/{serviceID} [put]
func (h *catalogHandler) updateService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	service, err := h.catalogService.UpdateService(c.Request.Context(), serviceID, req, userID)
	if err != nil {
		writeCatalogError(c, logger, err, "Failed to update service")
		return
	}

	logger.Info("Service updated", slog.String("service_id", serviceID))
	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

// deleteService godoc
// @Summary Delete a service
// @Description Removes a service from the catalog. Admin only.
// @Tags catalog
// @Produce json
// @Param serviceID path string true "Service ID"
// @Success 204 "Service deleted"
// @Failure 403 {object} ErrorResponse "Admin privileges required"
// @Failure 404 {object} ErrorResponse "Service not found"
// @Failure 500 {object} ErrorResponse "Failed to delete service"
// @Router /services/{serviceID} [delete]
func (h *catalogHandler) deleteService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), serviceID, userID); err != nil {
		writeCatalogError(c, logger, err, "Failed to delete service")
		return
	}

	logger.Info("Service deleted", slog.String("service_id", serviceID))
	c.Status(http.StatusNoContent)
}
