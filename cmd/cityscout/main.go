package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/jentrix/cityscout/internal/api/http"
	"github.com/jentrix/cityscout/internal/config"
	"github.com/jentrix/cityscout/internal/location"
	"github.com/jentrix/cityscout/internal/logger"
	"github.com/jentrix/cityscout/internal/providers"
	"github.com/jentrix/cityscout/internal/resource"
	"github.com/jentrix/cityscout/internal/scheduler"
	"github.com/jentrix/cityscout/internal/store"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Process-wide store handle: opened here, closed at shutdown, injected
	// into every component that persists.
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder := providers.NewGeocodeClient(httpClient, cfg.GeocodeAPIKey)
	weatherClient := providers.NewWeatherClient(httpClient, cfg.WeatherAPIKey)
	eventsClient := providers.NewEventsClient(httpClient, cfg.EventbriteToken)
	moviesClient := providers.NewMoviesClient(httpClient, cfg.MovieAPIKey)
	yelpClient := providers.NewYelpClient(httpClient, cfg.YelpAPIKey)

	resolver := location.NewResolver(store.NewLocationStore(db), geocoder)
	weatherStore := store.NewWeatherStore(db)

	// One read-through cache adapter per resource type; weather alone
	// carries a freshness policy, the rest cache forever with a 2-item cap.
	weather := resource.NewAdapter(resource.AdapterConfig[resource.Weather]{
		Name:   "weather",
		Store:  weatherStore,
		Fetch:  weatherClient.Forecast,
		MaxAge: cfg.WeatherStaleAfter,
		Age:    resource.WeatherAge,
	})
	events := resource.NewAdapter(resource.AdapterConfig[resource.Event]{
		Name:  "events",
		Store: store.NewEventStore(db),
		Fetch: eventsClient.Search,
		Limit: 2,
	})
	movies := resource.NewAdapter(resource.AdapterConfig[resource.Movie]{
		Name:  "movies",
		Store: store.NewMovieStore(db),
		Fetch: moviesClient.Search,
		Limit: 2,
	})
	yelp := resource.NewAdapter(resource.AdapterConfig[resource.Business]{
		Name:  "yelp",
		Store: store.NewBusinessStore(db),
		Fetch: yelpClient.Search,
		Limit: 2,
	})

	sweeper := scheduler.New(weatherStore, cfg.WeatherStaleAfter, cfg.SweepInterval)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("failed to start sweeper: %v", err)
	}
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "cityscout",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "cityscout",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Services{
		Resolver: resolver,
		Weather:  weather,
		Events:   events,
		Movies:   movies,
		Yelp:     yelp,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
