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

// ReturnHandler handles return-related HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Quote handles computing a return's refund breakdown without persisting it
func (h *ReturnHandler) Quote(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input, ok := h.bindReturnInput(c, *userID)
	if !ok {
		return
	}

	quote, err := h.returnService.QuoteReturn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return quoted", returnQuoteResponse(quote))
}

// Create handles creating a return
func (h *ReturnHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input, ok := h.bindReturnInput(c, *userID)
	if !ok {
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return created successfully", ret)
}

// Get handles getting a single return
func (h *ReturnHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return retrieved successfully", ret)
}

// List handles listing returns
func (h *ReturnHandler) List(c *gin.Context) {
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

	result, err := h.returnService.ListReturns(c.Request.Context(), *userID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Returns retrieved successfully", result)
}

func (h *ReturnHandler) bindReturnInput(c *gin.Context, userID uuid.UUID) (*service.CreateReturnInput, bool) {
	var req request.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	items, err := returnItemsFromRequest(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}

	return &service.CreateReturnInput{
		UserID: userID,
		SaleID: req.SaleID,
		Items:  items,
	}, true
}

func returnItemsFromRequest(items []request.ReturnItemRequest) ([]service.ReturnItemInput, error) {
	out := make([]service.ReturnItemInput, 0, len(items))
	for _, item := range items {
		condition, err := enum.ParseReturnCondition(item.Condition)
		if err != nil {
			return nil, err
		}
		out = append(out, service.ReturnItemInput{
			SaleItemID: item.SaleItemID,
			Quantity:   item.Quantity,
			Condition:  condition,
		})
	}
	return out, nil
}

// returnQuoteResponse flattens a quote into the wire shape
func returnQuoteResponse(quote *service.ReturnQuote) gin.H {
	breakdown := make([]gin.H, 0, len(quote.Totals.Breakdown))
	for _, line := range quote.Totals.Breakdown {
		breakdown = append(breakdown, gin.H{
			"sale_item_id":   line.SaleItemID,
			"quantity":       line.Quantity,
			"condition":      line.Condition,
			"item_total":     line.ItemTotal,
			"fee_rate":       line.FeeRate,
			"restocking_fee": line.RestockingFee,
			"refund_amount":  line.RefundAmount,
		})
	}

	return gin.H{
		"sale_id":         quote.Sale.ID,
		"original_amount": quote.Totals.OriginalAmount,
		"restocking_fee":  quote.Totals.RestockingFee,
		"refund_amount":   quote.Totals.RefundAmount,
		"breakdown":       breakdown,
	}
}
