package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// saleHandler handles HTTP requests related to customer memos.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.PUT("/:id", h.updateSale)
		sales.DELETE("/:id", h.deleteSale)
		sales.POST("/:id/receive-due", h.receiveCustomerDue)
	}
}

func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create sale")
		return
	}

	logger.Info("Sale created", slog.String("sale_id", sale.SaleID), slog.String("memo_no", sale.MemoNo))
	c.JSON(http.StatusCreated, dto.OK(dto.ToSaleResponse(sale)))
}

func (h *saleHandler) getSale(c *gin.Context) {
	saleID := c.Param("id")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		respondError(c, err, "failed to retrieve sale")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToSaleResponse(sale)))
}

func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if !bindQuery(c, &params) {
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list sales")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListSaleResponse(sales)))
}

func (h *saleHandler) updateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	var req dto.UpdateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), saleID, req, userID)
	if err != nil {
		respondError(c, err, "failed to update sale")
		return
	}

	logger.Info("Sale updated", slog.String("sale_id", saleID))
	c.JSON(http.StatusOK, dto.OK(dto.ToSaleResponse(sale)))
}

func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), saleID, userID); err != nil {
		respondError(c, err, "failed to delete sale")
		return
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	c.JSON(http.StatusOK, dto.OKMessage("sale deleted", nil))
}

func (h *saleHandler) receiveCustomerDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("id")

	var req dto.ReceiveDueRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.ReceiveCustomerDue(c.Request.Context(), saleID, req, userID)
	if err != nil {
		respondError(c, err, "failed to record due receipt")
		return
	}

	logger.Info("Customer due receipt recorded", slog.String("sale_id", saleID))
	c.JSON(http.StatusOK, dto.OK(dto.ToSaleResponse(sale)))
}
