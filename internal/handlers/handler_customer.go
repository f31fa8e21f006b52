package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.GET("/:id/history", h.getCustomerHistory)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToCustomerResponse(customer)))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToCustomerResponse(customer)))
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListCounterpartiesParams
	if !bindQuery(c, &params) {
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list customers")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListCustomerResponse(customers)))
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	var req dto.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, userID)
	if err != nil {
		respondError(c, err, "failed to update customer")
		return
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.OK(dto.ToCustomerResponse(customer)))
}

func (h *customerHandler) getCustomerHistory(c *gin.Context) {
	customerID := c.Param("id")

	events, err := h.customerService.GetCustomerHistory(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "failed to retrieve customer history")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToCounterpartyEventResponses(events)))
}
