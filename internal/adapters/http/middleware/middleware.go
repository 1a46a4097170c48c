package middleware

import (
	"errors"
	"log"
	"time"

	"petrol-tracker/internal/config"
	"petrol-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	corsMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"
	corsHeaders = "Origin,Content-Type,Accept,Authorization"
	logFormat   = "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}"
)

// Setup installs the global middleware chain: panic recovery, gzip, security
// headers, the general rate limit, request logging and CORS
func Setup(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(helmet.New(securityHeaders()))
	app.Use(ipLimiter(cfg.RateLimit.General, cfg.RateLimit.Window, "", "Too many requests, please slow down"))
	app.Use(logger.New(requestLog(cfg)))
	app.Use(cors.New(corsPolicy(cfg)))
}

// securityHeaders keeps resources cross-origin readable for the dashboard
// frontend, which is served from another origin
func securityHeaders() helmet.Config {
	return helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "unsafe-none",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}
}

func requestLog(cfg *config.Config) logger.Config {
	if cfg.IsDev() {
		return logger.Config{Format: logFormat + "\n"}
	}
	return logger.Config{
		Format:     logFormat + " | ${error}\n",
		TimeFormat: time.DateTime,
	}
}

// corsPolicy allows any origin in dev. Credentials need an explicit origin
// list, so they are only sent in prod.
func corsPolicy(cfg *config.Config) cors.Config {
	policy := cors.Config{
		AllowOrigins: cfg.GetAllowedOrigins(),
		AllowMethods: corsMethods,
		AllowHeaders: corsHeaders,
	}
	if cfg.IsDev() {
		policy.AllowOrigins = "*"
	} else {
		policy.AllowCredentials = true
	}
	return policy
}

// ipLimiter allows limit requests per window from one IP. Limiters with
// different buckets keep separate counters.
func ipLimiter(limit int, window time.Duration, bucket, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + bucket
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// AuthRateLimiter guards login, register and refresh
func AuthRateLimiter(cfg *config.Config) fiber.Handler {
	return ipLimiter(cfg.RateLimit.Auth, cfg.RateLimit.Window, "-auth", "Too many login attempts, please wait a minute")
}

// StrictRateLimiter guards password changes
func StrictRateLimiter(cfg *config.Config) fiber.Handler {
	return ipLimiter(cfg.RateLimit.Strict, cfg.RateLimit.Window, "-strict", "Please wait before trying again")
}

// CustomErrorHandler renders errors that escape the handlers. Only *fiber.Error
// messages reach the client.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return response.Error(c, e.Code, e.Message)
	}

	log.Printf("❌ Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "Internal Server Error")
}
