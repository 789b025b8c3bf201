package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/castlesolutions/flighttracker/internal/cache"
	"github.com/castlesolutions/flighttracker/internal/handler"
	"github.com/castlesolutions/flighttracker/internal/notify"
	"github.com/castlesolutions/flighttracker/internal/providers"
	"github.com/castlesolutions/flighttracker/internal/resolver"
)

type Config struct {
	Port             string
	AviationStackKey string
	AviationStackURL string
	FlightAwareKey   string
	FlightAwareURL   string
	ProviderTimeout  time.Duration
	CacheEnabled     bool
	RedisHost        string
	RedisPort        string
	FlightCacheTTL   time.Duration
	ArrivalsCacheTTL time.Duration
	DefaultAirport   string
	EmailServiceURL  string
	NotifyEmail      string
	TrackingBase     string
	RateLimitRPS     float64
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := loadConfig()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))
	e.Validator = handler.NewRequestValidator()

	var payloadCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		payloadCache = redisCache
		log.Printf("Upstream payload cache enabled (redis %s:%s)", cfg.RedisHost, cfg.RedisPort)
	} else {
		payloadCache = cache.NewNoOpCache()
		log.Println("Upstream payload cache disabled")
	}
	defer payloadCache.Close()

	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}

	aviationstack := providers.NewAviationStack(providers.AviationStackConfig{
		BaseURL:     cfg.AviationStackURL,
		APIKey:      cfg.AviationStackKey,
		Client:      httpClient,
		Cache:       payloadCache,
		FlightTTL:   cfg.FlightCacheTTL,
		ArrivalsTTL: cfg.ArrivalsCacheTTL,
	})
	flightaware := providers.NewFlightAware(providers.FlightAwareConfig{
		BaseURL:     cfg.FlightAwareURL,
		APIKey:      cfg.FlightAwareKey,
		Client:      httpClient,
		Cache:       payloadCache,
		FlightTTL:   cfg.FlightCacheTTL,
		ArrivalsTTL: cfg.ArrivalsCacheTTL,
	})

	res := resolver.New([]providers.Provider{aviationstack, flightaware}, resolver.Config{
		Timeout: cfg.ProviderTimeout,
	})
	log.Println("Initialized 2 flight providers")

	mailer := notify.NewHTTPMailer(cfg.EmailServiceURL, httpClient)

	flightHandler := handler.NewFlightHandler(res)
	arrivalsHandler := handler.NewArrivalsHandler(res, cfg.DefaultAirport)
	notifyHandler := handler.NewNotifyHandler(res, mailer, handler.NotifyConfig{
		FallbackEmail: cfg.NotifyEmail,
		TrackingBase:  cfg.TrackingBase,
	})

	e.GET("/flight", flightHandler.Track)
	e.GET("/arrivals", arrivalsHandler.List)
	e.POST("/notify", notifyHandler.Notify)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting flight tracker server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		AviationStackKey: getEnv("AVIATIONSTACK_KEY", ""),
		AviationStackURL: getEnv("AVIATIONSTACK_URL", ""),
		FlightAwareKey:   getEnv("FLIGHTAWARE_KEY", ""),
		FlightAwareURL:   getEnv("FLIGHTAWARE_URL", ""),
		ProviderTimeout:  getEnvDuration("PROVIDER_TIMEOUT", 8*time.Second),
		CacheEnabled:     getEnvBool("CACHE_ENABLED", false),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		FlightCacheTTL:   getEnvDuration("FLIGHT_CACHE_TTL", 2*time.Minute),
		ArrivalsCacheTTL: getEnvDuration("ARRIVALS_CACHE_TTL", 5*time.Minute),
		DefaultAirport:   getEnv("DEFAULT_AIRPORT", "PVR"),
		EmailServiceURL:  getEnv("EMAIL_SERVICE_URL", ""),
		NotifyEmail:      getEnv("NOTIFY_EMAIL", "reservations@castlesolutions.biz"),
		TrackingBase:     getEnv("TRACKING_BASE_URL", "https://castle-flights.vercel.app"),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
