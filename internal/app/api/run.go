package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	pharmatrackserver "github.com/Sanjaykumaar123/pharmatrack-lite/go"

	analyticsapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/application"
	assistantcatalog "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/adapters/catalog"
	assistantgemini "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/adapters/gemini"
	assistantobs "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/adapters/observability"
	assistantapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application"
	assistantports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
	cartobs "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/adapters/observability"
	cartapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application"
	inventoryconfirmation "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/confirmation"
	inventoryevents "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/events"
	inventorysolana "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/external/solana"
	inventorylabels "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/labels"
	inventoryobs "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	orderscatalog "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/catalog"
	ordersinvoice "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/invoice"
	ordersobs "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application"
	userstokens "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/tokens"
	usersobs "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/observability"
	usersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application"
	platformobservability "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/observability"
	platformtemporal "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/temporal"
	sharedevents "github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/events"
)

const (
	serviceName     = "pharmatrack-api"
	storeName       = "PharmaTrack Lite"
	shutdownTimeout = 10 * time.Second
)

// Run boots the PharmaTrack HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.close()

	hub := sharedevents.NewHub(sharedevents.DefaultBuffer)
	defer hub.Close()

	// Inventory, with the ledger settlement scheduler bound after the decorated service exists.
	inventoryOpts := []inventoryapp.Option{
		inventoryapp.WithEventPublisher(inventoryevents.NewHubPublisher(hub)),
		inventoryapp.WithLogger(logger),
		inventoryapp.WithConfirmationDelays(cfg.LedgerCreateDelay, cfg.LedgerUpdateDelay),
	}
	if cfg.LedgerRPCEndpoint != "" {
		ledger := inventorysolana.NewClient(cfg.LedgerRPCEndpoint)
		defer ledger.Close()
		inventoryOpts = append(inventoryOpts, inventoryapp.WithLedgerClient(ledger))
	}
	scheduler, closeScheduler := buildScheduler(cfg, instruments)
	defer closeScheduler()
	inventoryOpts = append(inventoryOpts, inventoryapp.WithConfirmationScheduler(scheduler))
	inventoryService := inventoryobs.New(
		inventoryapp.NewService(stores.medicines, inventoryOpts...),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
	if inline, ok := scheduler.(*inventoryconfirmation.InlineScheduler); ok {
		inline.Bind(inventoryService)
	}

	catalog := orderscatalog.NewInventory(inventoryService)
	orderService := ordersobs.New(
		ordersapp.NewService(stores.orders,
			ordersapp.WithCatalog(catalog),
			ordersapp.WithIdempotencyStore(stores.idempotency),
			ordersapp.WithInvoiceRenderer(ordersinvoice.NewPDFRenderer(storeName, cfg.PublicBaseURL)),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	cartService := cartobs.New(
		cartapp.NewService(stores.carts,
			cartapp.WithCatalog(catalog),
			cartapp.WithOrderPlacer(orderService),
			cartapp.WithLogger(logger),
		),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, using an ephemeral signing key; tokens will not survive a restart")
	}
	tokenCodec, err := userstokens.NewJWT(secret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("configure tokens: %w", err)
	}
	userService := usersobs.New(
		usersapp.NewService(stores.users, stores.sessions, tokenCodec),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	assistantService := assistantobs.New(
		assistantapp.NewService(buildGenerator(ctx, cfg, logger), assistantcatalog.NewInventory(inventoryService)),
		assistantobs.WithLogger(logger),
		assistantobs.WithTracer(instruments.Tracer("internal.assistant.application")),
		assistantobs.WithMeter(instruments.Meter("internal.assistant.application")),
	)

	var authLimiter *pharmatrackserver.RateLimiter
	if cfg.AuthRateLimitPerMinute > 0 {
		if authLimiter, err = pharmatrackserver.NewRateLimiter(cfg.AuthRateLimitPerMinute); err != nil {
			return err
		}
	}

	handlers := pharmatrackserver.ApiHandleFunctions{
		MedicineAPI:  pharmatrackserver.NewMedicineAPI(inventoryService, inventorylabels.NewRenderer(cfg.PublicBaseURL, 0)),
		OrderAPI:     pharmatrackserver.NewOrderAPI(orderService),
		CartAPI:      pharmatrackserver.NewCartAPI(cartService, userService),
		AuthAPI:      pharmatrackserver.NewAuthAPI(userService),
		UserAPI:      pharmatrackserver.NewUserAPI(userService),
		AssistantAPI: pharmatrackserver.NewAssistantAPI(assistantService),
		AnalyticsAPI: pharmatrackserver.NewAnalyticsAPI(analyticsapp.NewService(inventoryService, orderService)),
		FeedAPI:      pharmatrackserver.NewFeedAPI(hub, originAllowed(cfg.CORSAllowedOrigins), logger),
		Guard:        pharmatrackserver.NewGuard(userService),
		AuthLimiter:  authLimiter,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := pharmatrackserver.NewRouterWithGinEngine(engine, handlers)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", pharmatrackserver.SessionHeader, pharmatrackserver.IdempotencyKeyHeader},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, server, hub, logger)
}

// serve runs server until ctx ends, then drains connections within shutdownTimeout.
func serve(ctx context.Context, server *http.Server, hub *sharedevents.Hub, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("PharmaTrack API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("PharmaTrack API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down PharmaTrack API")
	// websocket connections are hijacked, so Shutdown does not wait for them; closing the hub ends them.
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}

// buildScheduler prefers durable Temporal timers and falls back to in-process ones.
func buildScheduler(cfg Config, instruments *platformobservability.Instruments) (inventoryports.ConfirmationScheduler, func()) {
	logger := instruments.Logger
	if !cfg.TemporalDisabled {
		temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
			HostPort:  cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
		}, logger, instruments.Tracer("temporal-client"))
		if err == nil {
			logger.Info("Temporal ledger confirmations enabled", slog.String("namespace", cfg.TemporalNamespace))
			return inventoryconfirmation.NewTemporalScheduler(temporalClient), temporalClient.Close
		}
		logger.Warn("Temporal unavailable, confirming ledger writes in-process", slog.String("error", err.Error()))
	}
	inline := inventoryconfirmation.NewInlineScheduler(logger)
	return inline, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := inline.Close(ctx); err != nil {
			logger.Warn("pending ledger confirmations dropped", slog.String("error", err.Error()))
		}
	}
}

// buildGenerator returns nil when no key is configured; the assistant then answers 503.
func buildGenerator(ctx context.Context, cfg Config, logger *slog.Logger) assistantports.Generator {
	if cfg.GenAIAPIKey == "" {
		logger.Warn("GENAI_API_KEY not set, assistant endpoints are disabled")
		return nil
	}
	model := cfg.GenAIModel
	if model == "" {
		model = assistantgemini.DefaultModel
	}
	generator, err := assistantgemini.NewGenerator(ctx, cfg.GenAIAPIKey, model)
	if err != nil {
		logger.Warn("failed to configure generative model, assistant endpoints are disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("assistant configured", slog.String("model", generator.Model()))
	return generator
}

func originAllowed(origins []string) func(string) bool {
	allowed := make(map[string]struct{}, len(origins))
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}
	return func(origin string) bool {
		if wildcard {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
