package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/booking"
	"github.com/iliyamo/cruise-booking/internal/config"
	"github.com/iliyamo/cruise-booking/internal/database"
	"github.com/iliyamo/cruise-booking/internal/handler"
	"github.com/iliyamo/cruise-booking/internal/queue"
	"github.com/iliyamo/cruise-booking/internal/repository"
	"github.com/iliyamo/cruise-booking/internal/router"
	queue_publisher "github.com/iliyamo/cruise-booking/internal/service"
)

func main() {
	// Load a .env file when present; real environments set vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ships := repository.NewShipRepo(db)
	captains := repository.NewCaptainRepo(db)
	cruises := repository.NewCruiseRepo(db)
	customers := repository.NewCustomerRepo(db)
	reservations := repository.NewReservationRepo(db)

	store := booking.NewSQLStore(db, customers, cruises, reservations)
	engine := booking.NewEngine(store, queue_publisher.PublishBookingRecorded)

	handlers := router.Handlers{
		Ships:     handler.NewShipHandler(ships),
		Captains:  handler.NewCaptainHandler(captains),
		Cruises:   handler.NewCruiseHandler(cruises),
		Customers: handler.NewCustomerHandler(customers),
		Bookings:  handler.NewBookingHandler(engine),
		Reports:   handler.NewReportHandler(ships, reservations),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response caching disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e, handlers, rdb)

	// Background consumer that appends booking events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
