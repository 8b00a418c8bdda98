package pharmatrackserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Middleware runs before HandlerFunc, in order.
	Middleware []gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	MedicineAPI  MedicineAPI
	OrderAPI     OrderAPI
	CartAPI      CartAPI
	AuthAPI      AuthAPI
	UserAPI      UserAPI
	AssistantAPI AssistantAPI
	AnalyticsAPI AnalyticsAPI
	FeedAPI      FeedAPI
	HealthAPI    HealthAPI
	// Guard authenticates callers and gates routes by role.
	Guard Guard
	// AuthLimiter throttles the sign-in and sign-up routes. Nil disables throttling.
	AuthLimiter *RateLimiter
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Middleware...), route.HandlerFunc)
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	guard := h.Guard
	authenticated := []gin.HandlerFunc{guard.RequireAuth()}
	optional := []gin.HandlerFunc{guard.OptionalAuth()}
	admin := []gin.HandlerFunc{guard.RequireAuth(), RequireRole(RoleAdmin)}
	catalogEditors := []gin.HandlerFunc{guard.RequireAuth(), RequireRole(RoleManufacturer, RoleAdmin)}
	var throttled []gin.HandlerFunc
	if h.AuthLimiter != nil {
		throttled = []gin.HandlerFunc{h.AuthLimiter.Middleware()}
	}

	return []Route{
		{"Healthz", http.MethodGet, "/healthz", h.HealthAPI.Healthz, nil},
		{"LedgerHealth", http.MethodGet, "/v1/ledger/health", h.MedicineAPI.LedgerHealth, nil},

		{"SignUp", http.MethodPost, "/v1/auth/signup", h.AuthAPI.SignUp, throttled},
		{"SignIn", http.MethodPost, "/v1/auth/signin", h.AuthAPI.SignIn, throttled},
		{"SignOut", http.MethodPost, "/v1/auth/signout", h.AuthAPI.SignOut, authenticated},
		{"CurrentUser", http.MethodGet, "/v1/auth/me", h.AuthAPI.CurrentUser, authenticated},

		{"ListUsers", http.MethodGet, "/v1/users", h.UserAPI.ListUsers, admin},
		{"UpdateUserRole", http.MethodPut, "/v1/users/:userId/role", h.UserAPI.UpdateRole, admin},

		{"ListMedicines", http.MethodGet, "/v1/medicines", h.MedicineAPI.ListMedicines, nil},
		{"StreamMedicines", http.MethodGet, "/v1/medicines/stream", h.FeedAPI.Stream, nil},
		{"GetMedicine", http.MethodGet, "/v1/medicines/:medicineId", h.MedicineAPI.GetMedicine, nil},
		{"MedicineLabel", http.MethodGet, "/v1/medicines/:medicineId/qrcode", h.MedicineAPI.Label, nil},
		{"CreateMedicine", http.MethodPost, "/v1/medicines", h.MedicineAPI.CreateMedicine, catalogEditors},
		{"UpdateMedicine", http.MethodPatch, "/v1/medicines/:medicineId", h.MedicineAPI.UpdateMedicine, catalogEditors},
		{"ApproveMedicine", http.MethodPost, "/v1/medicines/:medicineId/approve", h.MedicineAPI.ApproveMedicine, admin},
		{"DeleteMedicine", http.MethodDelete, "/v1/medicines/:medicineId", h.MedicineAPI.DeleteMedicine, admin},

		{"PlaceOrder", http.MethodPost, "/v1/orders", h.OrderAPI.PlaceOrder, optional},
		{"ListOrders", http.MethodGet, "/v1/orders", h.OrderAPI.ListOrders, authenticated},
		{"GetOrder", http.MethodGet, "/v1/orders/:orderId", h.OrderAPI.GetOrder, nil},
		{"OrderInvoice", http.MethodGet, "/v1/orders/:orderId/invoice", h.OrderAPI.Invoice, nil},
		{"UpdateOrderStatus", http.MethodPut, "/v1/orders/:orderId/status", h.OrderAPI.UpdateStatus, admin},

		{"GetCart", http.MethodGet, "/v1/cart", h.CartAPI.GetCart, optional},
		{"ClearCart", http.MethodDelete, "/v1/cart", h.CartAPI.ClearCart, optional},
		{"AddCartItem", http.MethodPost, "/v1/cart/items", h.CartAPI.AddItem, optional},
		{"UpdateCartItem", http.MethodPut, "/v1/cart/items/:medicineId", h.CartAPI.UpdateQuantity, optional},
		{"RemoveCartItem", http.MethodDelete, "/v1/cart/items/:medicineId", h.CartAPI.RemoveItem, optional},
		{"CheckoutCart", http.MethodPost, "/v1/cart/checkout", h.CartAPI.Checkout, optional},

		{"AssistantChat", http.MethodPost, "/v1/assistant/chat", h.AssistantAPI.Chat, nil},
		{"AssistantSideEffects", http.MethodPost, "/v1/assistant/side-effects", h.AssistantAPI.SideEffects, nil},

		{"Analytics", http.MethodGet, "/v1/admin/analytics", h.AnalyticsAPI.Report, admin},
	}
}
