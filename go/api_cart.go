package pharmatrackserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/adapters/http/mapper"
	carttypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application/types"
	cartports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/ports"
	orderhttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/http/mapper"
	userdomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

var errMissingCartID = errors.New("sign in or send an " + SessionHeader + " header to use a cart")

// ProfileReader resolves the display name of signed-in customers at checkout.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (*userdomain.User, error)
}

// CartAPI exposes the per-session cart.
type CartAPI struct {
	service  cartports.Service
	profiles ProfileReader
}

func NewCartAPI(service cartports.Service, profiles ProfileReader) CartAPI {
	return CartAPI{service: service, profiles: profiles}
}

// CheckoutResponse is the result of a cart checkout.
type CheckoutResponse struct {
	Order  orderhttpmapper.Order `json:"order"`
	Notice *notification.Notice  `json:"notice,omitempty"`
}

// Get /v1/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	cartID, ok := cartIDFrom(c)
	if !ok {
		return
	}
	view, err := api.service.Get(c.Request.Context(), carttypes.CartIdentifier{CartID: cartID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromView(view))
}

// Post /v1/cart/items
// Adds a medicine once; repeated adds leave the cart unchanged
func (api *CartAPI) AddItem(c *gin.Context) {
	cartID, ok := cartIDFrom(c)
	if !ok {
		return
	}
	var payload carthttpmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.AddItem(c.Request.Context(), carthttpmapper.ToAddItemInput(cartID, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromResult(result))
}

// Put /v1/cart/items/:medicineId
// Sets a quantity; zero or less removes the line
func (api *CartAPI) UpdateQuantity(c *gin.Context) {
	cartID, ok := cartIDFrom(c)
	if !ok {
		return
	}
	var payload carthttpmapper.UpdateQuantity
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.UpdateQuantity(c.Request.Context(), carttypes.UpdateQuantityInput{
		CartID:     cartID,
		MedicineID: c.Param("medicineId"),
		Quantity:   payload.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromResult(result))
}

// Delete /v1/cart/items/:medicineId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	cartID, ok := cartIDFrom(c)
	if !ok {
		return
	}
	result, err := api.service.RemoveItem(c.Request.Context(), carttypes.RemoveItemInput{
		CartID:     cartID,
		MedicineID: c.Param("medicineId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromResult(result))
}

// Delete /v1/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	cartID, ok := cartIDFrom(c)
	if !ok {
		return
	}
	if err := api.service.Clear(c.Request.Context(), carttypes.CartIdentifier{CartID: cartID}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/cart/checkout
// Turns the cart into an order and empties it
func (api *CartAPI) Checkout(c *gin.Context) {
	cartID, ok := cartIDFrom(c)
	if !ok {
		return
	}
	var payload carthttpmapper.Checkout
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := carttypes.CheckoutInput{
		CartID:          cartID,
		CustomerName:    strings.TrimSpace(payload.CustomerName),
		ShippingAddress: payload.ShippingAddress,
		MobileNumber:    payload.MobileNumber,
		IdempotencyKey:  strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
	}
	if claims := claimsFrom(c); claims != nil {
		input.CustomerID = claims.UserID
		if input.CustomerName == "" {
			input.CustomerName = api.displayName(c.Request.Context(), claims.UserID)
		}
	}
	result, err := api.service.Checkout(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CheckoutResponse{Order: orderhttpmapper.FromProjection(result.Order), Notice: result.Notice})
}

// displayName returns "" when the profile cannot be read, leaving the guest default in place.
func (api *CartAPI) displayName(ctx context.Context, userID string) string {
	if api.profiles == nil {
		return ""
	}
	user, err := api.profiles.Get(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.FullName()
}

// cartIDFrom prefers the signed-in user id over the anonymous session header.
func cartIDFrom(c *gin.Context) (string, bool) {
	if claims := claimsFrom(c); claims != nil && claims.UserID != "" {
		return claims.UserID, true
	}
	if session := strings.TrimSpace(c.GetHeader(SessionHeader)); session != "" {
		return session, true
	}
	respondError(c, http.StatusBadRequest, errMissingCartID)
	return "", false
}
