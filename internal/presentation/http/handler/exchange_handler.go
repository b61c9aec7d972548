package handler

import (
	"github.com/bottegasoft/bottega-api/internal/application/service"
	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/bottegasoft/bottega-api/internal/presentation/http/dto/request"
	"github.com/bottegasoft/bottega-api/internal/presentation/http/dto/response"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExchangeHandler handles exchange-related HTTP requests
type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

// NewExchangeHandler creates a new exchange handler
func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// Quote handles computing an exchange settlement without persisting it
func (h *ExchangeHandler) Quote(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input, ok := h.bindExchangeInput(c, *userID)
	if !ok {
		return
	}

	quote, err := h.exchangeService.QuoteExchange(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange quoted", quote)
}

// Create handles creating an exchange
func (h *ExchangeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input, ok := h.bindExchangeInput(c, *userID)
	if !ok {
		return
	}

	exchange, err := h.exchangeService.CreateExchange(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Exchange created successfully", exchange)
}

// Get handles getting a single exchange
func (h *ExchangeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exchange ID")
		return
	}

	exchange, err := h.exchangeService.GetExchange(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange retrieved successfully", exchange)
}

// List handles listing exchanges
func (h *ExchangeHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.exchangeService.ListExchanges(c.Request.Context(), *userID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Exchanges retrieved successfully", result)
}

func (h *ExchangeHandler) bindExchangeInput(c *gin.Context, userID uuid.UUID) (*service.CreateExchangeInput, bool) {
	var req request.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	returnItems, err := returnItemsFromRequest(req.ReturnItems)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}

	discountKind, err := enum.ParseDiscountKind(req.DiscountKind)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}

	payment, err := paymentInputFromRequest(&req.Payment)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}

	newItems := make([]service.SaleItemInput, 0, len(req.NewItems))
	for _, item := range req.NewItems {
		newItems = append(newItems, service.SaleItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			SerialNumber: item.SerialNumber,
		})
	}

	return &service.CreateExchangeInput{
		UserID:        userID,
		SaleID:        req.SaleID,
		ReturnItems:   returnItems,
		NewItems:      newItems,
		DiscountKind:  discountKind,
		DiscountValue: req.DiscountValue,
		Payment:       payment,
	}, true
}
