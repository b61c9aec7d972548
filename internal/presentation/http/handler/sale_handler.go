package handler

import (
	"time"

	"github.com/bottegasoft/bottega-api/internal/application/service"
	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/bottegasoft/bottega-api/internal/domain/repository"
	"github.com/bottegasoft/bottega-api/internal/presentation/http/dto/request"
	"github.com/bottegasoft/bottega-api/internal/presentation/http/dto/response"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := saleInputFromRequest(*userID, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale with its reconciliation report
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, report, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", gin.H{
		"sale":           sale,
		"reconciliation": report,
	})
}

// ValidateReceipt handles recomputing a persisted sale's totals
func (h *SaleHandler) ValidateReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	report, err := h.saleService.ValidateReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt validated", report)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:         filter.Search,
		SortBy:         filter.SortBy,
		SortOrder:      filter.SortOrder,
		SkipUserFilter: IsAdmin(c),
	}

	if filter.Status != "" {
		status, err := enum.ParseSaleStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Status = &status
	}

	if filter.CustomerID != "" {
		customerID, err := uuid.Parse(filter.CustomerID)
		if err == nil {
			params.CustomerID = &customerID
		}
	}

	if filter.StartDate != "" {
		start, err := time.Parse(time.DateOnly, filter.StartDate)
		if err == nil {
			params.StartDate = &start
		}
	}

	if filter.EndDate != "" {
		end, err := time.Parse(time.DateOnly, filter.EndDate)
		if err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Cancel handles cancelling a sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.CancelSale(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", nil)
}

// FillRemainder handles the "pay the remainder" helper on the payment form
func (h *SaleHandler) FillRemainder(c *gin.Context) {
	var req request.RemainderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	channel, err := enum.ParsePaymentChannel(req.Channel)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result := h.saleService.FillRemainder(&service.RemainderInput{
		TotalAmount: req.TotalAmount,
		Channel:     channel,
		Payment: service.PaymentInput{
			Cash:         req.Cash,
			Card:         req.Card,
			BankTransfer: req.BankTransfer,
		},
	})

	response.OK(c, "Remainder computed", result)
}

// saleInputFromRequest converts the wire request into the service input
func saleInputFromRequest(userID uuid.UUID, req *request.CreateSaleRequest) (*service.CreateSaleInput, error) {
	discountKind, err := enum.ParseDiscountKind(req.DiscountKind)
	if err != nil {
		return nil, err
	}

	payment, err := paymentInputFromRequest(&req.Payment)
	if err != nil {
		return nil, err
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			SerialNumber: item.SerialNumber,
		})
	}

	return &service.CreateSaleInput{
		UserID:        userID,
		CustomerID:    req.CustomerID,
		VatIncluded:   req.VatIncluded,
		DiscountKind:  discountKind,
		DiscountValue: req.DiscountValue,
		Payment:       payment,
		Items:         items,
	}, nil
}

func paymentInputFromRequest(req *request.PaymentRequest) (service.PaymentInput, error) {
	paymentType, err := enum.ParsePaymentType(req.Type)
	if err != nil {
		return service.PaymentInput{}, err
	}

	channel, err := enum.ParsePaymentChannel(req.Channel)
	if err != nil {
		return service.PaymentInput{}, err
	}

	return service.PaymentInput{
		Type:         paymentType,
		Channel:      channel,
		Cash:         req.Cash,
		Card:         req.Card,
		BankTransfer: req.BankTransfer,
	}, nil
}
