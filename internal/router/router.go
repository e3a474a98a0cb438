// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cruise-booking/internal/config"
	"github.com/iliyamo/cruise-booking/internal/handler"
	"github.com/iliyamo/cruise-booking/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Ships     *handler.ShipHandler
	Captains  *handler.CaptainHandler
	Cruises   *handler.CruiseHandler
	Customers *handler.CustomerHandler
	Bookings  *handler.BookingHandler
	Reports   *handler.ReportHandler
}

// RegisterRoutes mounts all endpoints on the provided Echo instance.
// The booking endpoint sits behind the Redis token-bucket rate
// limiter; the read-only report endpoints behind the response cache.
// Both middlewares degrade to pass-throughs when rdb is nil.
func RegisterRoutes(e *echo.Echo, h Handlers, rdb *redis.Client) {
	// Health check for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)
	// Prometheus metrics endpoint.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	// Registration endpoints.
	v1.POST("/ships", h.Ships.Create)
	v1.GET("/ships/:id", h.Ships.Get)
	v1.DELETE("/ships/:id", h.Ships.Delete)
	v1.POST("/captains", h.Captains.Create)
	v1.DELETE("/captains/:id", h.Captains.Delete)
	v1.POST("/cruises", h.Cruises.Create)
	v1.POST("/customers", h.Customers.Create)
	v1.GET("/customers/:id", h.Customers.Get)

	// Booking and availability.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	v1.POST("/bookings", h.Bookings.Book, limiter)
	v1.GET("/cruises/:cnum/seats", h.Cruises.AvailableSeats)

	// Read-only reports, served through the response cache.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	reports := v1.Group("/reports", cache)
	reports.GET("/repairs", h.Reports.RepairsPerShip)
	reports.GET("/passengers", h.Reports.PassengersByStatus)
	v1.GET("/reservations", h.Reports.ReservationsByCustomer, cache)
}
