package pharmatrackserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	ordersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

// IdempotencyKeyHeader deduplicates order submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the order store.
type OrderAPI struct {
	service ordersports.Service
}

func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /v1/orders
// Submits an order directly, without a server-side cart
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	var customerID string
	if claims := claimsFrom(c); claims != nil {
		customerID = claims.UserID
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	created, err := api.service.Create(c.Request.Context(), orderhttpmapper.ToCreateInput(payload, customerID, key))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromProjection(created))
}

// Get /v1/orders
// Admins see every order, everyone else only their own
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	claims := claimsFrom(c)
	if claims != nil && claims.Role != RoleAdmin {
		own := orders[:0:0]
		for _, o := range orders {
			if o.Entity != nil && o.Entity.CustomerID == claims.UserID {
				own = append(own, o)
			}
		}
		orders = own
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjectionList(orders))
}

// Get /v1/orders/:orderId
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.service.Get(c.Request.Context(), orderstypes.OrderIdentifier{ID: c.Param("orderId")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjection(order))
}

// Put /v1/orders/:orderId/status
// Moves an order to any status
func (api *OrderAPI) UpdateStatus(c *gin.Context) {
	var payload orderhttpmapper.UpdateOrderStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.UpdateStatus(c.Request.Context(), orderstypes.UpdateOrderStatusInput{
		ID:     c.Param("orderId"),
		Status: payload.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromStatusUpdate(result))
}

// Get /v1/orders/:orderId/invoice
// Downloads the PDF invoice
func (api *OrderAPI) Invoice(c *gin.Context) {
	invoice, err := api.service.Invoice(c.Request.Context(), orderstypes.OrderIdentifier{ID: c.Param("orderId")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Filename))
	c.Data(http.StatusOK, invoice.ContentType, invoice.Content)
}
