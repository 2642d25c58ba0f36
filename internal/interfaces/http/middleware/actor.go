package middleware

import (
	"net/http"
	"strings"

	"github.com/erurang/wooyangcrm-sub010/internal/infrastructure/auth"
	"github.com/erurang/wooyangcrm-sub010/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Actor context keys
const (
	ActorIDKey     = "actor_id"
	ActorNameKey   = "actor_name"
	ActorClaimsKey = "actor_claims"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// ActorConfig holds configuration for actor authentication middleware
type ActorConfig struct {
	// Verifier is required for token validation
	Verifier *auth.TokenVerifier
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultActorConfig returns default actor middleware configuration
func DefaultActorConfig(verifier *auth.TokenVerifier) ActorConfig {
	return ActorConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
		},
		SkipPathPrefixes: []string{},
	}
}

// RequireActor creates authentication middleware with default config
func RequireActor(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return RequireActorWithConfig(DefaultActorConfig(verifier))
}

// RequireActorWithConfig creates authentication middleware with custom config
func RequireActorWithConfig(cfg ActorConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		setActorContext(c, claims)
		c.Next()
	}
}

// OptionalActor extracts actor claims when a valid token is present but
// lets anonymous requests through. Used in deployments where the gateway
// already authenticates.
func OptionalActor(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			c.Next()
			return
		}

		setActorContext(c, claims)
		c.Next()
	}
}

func setActorContext(c *gin.Context, claims *auth.Claims) {
	c.Set(ActorClaimsKey, claims)
	c.Set(ActorIDKey, claims.UserID)
	c.Set(ActorNameKey, claims.Username)
}

// abortUnauthorized rejects the request with a 401 response
func abortUnauthorized(c *gin.Context, cfg ActorConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("actor authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	responseMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = dto.ErrCodeTokenExpired
		responseMessage = "Token has expired"
	case auth.ErrInvalidToken, auth.ErrInvalidClaims, auth.ErrMissingUserID:
		code = dto.ErrCodeTokenInvalid
		responseMessage = "Invalid token"
	case auth.ErrTokenNotYetValid:
		code = dto.ErrCodeTokenInvalid
		responseMessage = "Token is not yet valid"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, responseMessage))
}

// GetActorClaims retrieves actor claims from gin.Context
func GetActorClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(ActorClaimsKey); exists {
		if actorClaims, ok := claims.(*auth.Claims); ok {
			return actorClaims
		}
	}
	return nil
}

// GetActorID retrieves the actor's user ID from context
func GetActorID(c *gin.Context) string {
	if actorID, exists := c.Get(ActorIDKey); exists {
		if id, ok := actorID.(string); ok {
			return id
		}
	}
	return ""
}

// GetActorName retrieves the actor's username from context
func GetActorName(c *gin.Context) string {
	if name, exists := c.Get(ActorNameKey); exists {
		if n, ok := name.(string); ok {
			return n
		}
	}
	return ""
}
