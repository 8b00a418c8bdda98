package pharmatrackserver

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	userdomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	userports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
	apierrors "github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/errors"
)

const (
	RoleCustomer     = userdomain.RoleCustomer
	RoleManufacturer = userdomain.RoleManufacturer
	RoleAdmin        = userdomain.RoleAdmin
)

// SessionHeader carries the anonymous cart id of callers without a token.
const SessionHeader = "X-Session-ID"

const claimsKey = "pharmatrack.claims"

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userports.Claims, error)
}

// Guard resolves the caller from the Authorization header.
type Guard struct {
	auth Authenticator
}

func NewGuard(auth Authenticator) Guard {
	return Guard{auth: auth}
}

// RequireAuth rejects requests without a valid bearer token.
func (g Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortProblem(c, apierrors.ErrUnauthorized.WithDetail("a bearer token is required"))
			return
		}
		if !g.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the caller when a token is present. A present but invalid token is rejected.
func (g Guard) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok && !g.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

func (g Guard) authenticate(c *gin.Context, token string) bool {
	if g.auth == nil {
		abortProblem(c, apierrors.ErrUnavailable.WithDetail("authentication is not configured"))
		return false
	}
	claims, err := g.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		abortProblem(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
		return false
	}
	c.Set(claimsKey, claims)
	return true
}

// RequireRole lets the request through when the authenticated role is one of roles.
func RequireRole(roles ...userdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			abortProblem(c, apierrors.ErrUnauthorized.WithDetail("a bearer token is required"))
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		abortProblem(c, apierrors.ErrForbidden.WithDetail("your role does not allow this operation"))
	}
}

func claimsFrom(c *gin.Context) *userports.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*userports.Claims)
	return claims
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func abortProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	respondProblem(c, problem)
	c.Abort()
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP with a burst of the same size.
func NewRateLimiter(perMinute int) (*RateLimiter, error) {
	if perMinute <= 0 {
		return nil, errors.New("rate limit must be positive")
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idle:     10 * time.Minute,
		now:      time.Now,
	}, nil
}

// Allow reports whether the client may proceed, forgetting clients idle for longer than the idle window.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, key)
		}
	}
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(clientIP(c)) {
			responder.TooManyRequests(c, "too many authentication attempts, try again later", time.Minute)
			return
		}
		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
