package main

import (
    "context"
    "log"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/airline-seat-reservation/internal/audit"
    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/config"
    "github.com/iliyamo/airline-seat-reservation/internal/database"
    "github.com/iliyamo/airline-seat-reservation/internal/handler"
    "github.com/iliyamo/airline-seat-reservation/internal/middleware"
    "github.com/iliyamo/airline-seat-reservation/internal/queue"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
    "github.com/iliyamo/airline-seat-reservation/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: without it rate limiting and response
    // caching are disabled and everything else keeps working.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable, rate limiting and response cache disabled")
    }

    // Repositories.
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    airports := repository.NewAirportRepo(db)
    routes := repository.NewRouteRepo(db)
    aircraft := repository.NewAircraftRepo(db)
    flights := repository.NewFlightRepo(db)
    reservations := repository.NewReservationRepo(db)
    activity := repository.NewActivityRepo(db)

    // Audit trail: buffered, fire-and-forget, flushed on shutdown.
    recorder := audit.NewRecorder(activity, 1024)
    defer recorder.Close()

    // Booking core: SQL-backed store plus the seat coordinator.
    store := booking.NewSQLStore(db)
    coordinator := booking.NewCoordinator(store, recorder, nil)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    // Background expiry sweep for stale holds.
    sweeper := booking.NewSweeper(coordinator, cfg.SweepInterval, nil)
    go sweeper.Run(ctx)

    // Broker consumer writing confirmation notifications.  It runs a
    // reconnect loop of its own and never takes the server down.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    // Handlers.
    authH := handler.NewAuthHandler(cfg, users, tokens, recorder)
    bookingH := handler.NewBookingHandler(cfg, coordinator, reservations)
    browseH := handler.NewBrowseHandler(flights, routes, airports)
    fleetH := handler.NewFleetHandler(airports, routes, aircraft)
    flightAdminH := handler.NewFlightAdminHandler(flights, routes, aircraft, recorder)
    activityH := handler.NewActivityHandler(activity)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    var cacheMW echo.MiddlewareFunc
    if rdb != nil {
        cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    }

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, browseH, fleetH, bookingH, cacheMW)
    router.RegisterBooking(e, bookingH, cfg.JWTSecret)
    router.RegisterAdmin(e, fleetH, flightAdminH, activityH, cfg.JWTSecret)

    addr := ":" + cfg.Port
    go func() {
        log.Printf("listening on %s (env=%s)", addr, cfg.Env)
        if err := e.Start(addr); err != nil {
            log.Printf("server stopped: %v", err)
        }
    }()

    <-ctx.Done()
    log.Println("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        log.Printf("shutdown: %v", err)
    }
}
