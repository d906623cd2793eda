package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing

	"github.com/fuelware/petrol-station-pos/internal/handler"    // handlers implement the business logic
	"github.com/fuelware/petrol-station-pos/internal/middleware" // JWT authentication and role enforcement
	"github.com/fuelware/petrol-station-pos/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints. Login and refresh live
// under /api/auth and need no token; the rate limiter passed in (may be a
// pass-through) guards login against credential guessing. /api/me and the
// all-sessions logout require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login, loginLimiter)
	g.POST("/refresh", a.Refresh)
	// Logout with a refresh_token body works without a JWT so a terminal
	// whose access token already expired can still end its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleCashier))
	auth.GET("/me", a.Me)
	// Authenticated logout: no body needed, revokes every session of the caller.
	auth.POST("/logout", a.Logout)
	auth.POST("/users", a.CreateUser, middleware.RequireRole(model.RoleAdmin))
}

// RegisterStations wires the station endpoints. The single-station fetch
// is what terminals use to resolve their display currency. It is served
// without a token: a till that rehydrated a persisted session holds no
// access token yet, and the record carries nothing sensitive. It sits
// behind the Redis response cache middleware (pass-through when Redis is
// down). The full listing stays JWT-protected.
func RegisterStations(e *echo.Echo, s *handler.StationHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/api/stations/:id", s.Get, cache)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.GET("/stations", s.List, middleware.RequireRole(model.RoleAdmin, model.RoleManager))
}

// RegisterPOS wires fuel price and sale entry endpoints. All of them
// require a valid access token; price changes are restricted to admins
// and managers, sale entry is open to every till role.
func RegisterPOS(e *echo.Echo, p *handler.PriceHandler, s *handler.SaleHandler, jwtSecret string) {
	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))

	auth.GET("/stations/:id/prices", p.List)
	auth.PUT("/stations/:id/prices/:product", p.Set,
		middleware.RequireRole(model.RoleAdmin, model.RoleManager))

	sales := auth.Group("/sales",
		middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleCashier))
	sales.POST("", s.Create)
	sales.GET("", s.List)
}
