package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ats-analyzer/internal/handlers"
)

const Version = "1.0.0"

// Deps holds the handlers to mount. History and Search are optional.
type Deps struct {
	Analyze   *handlers.AnalyzeHandler
	History   *handlers.HistoryHandler
	Search    *handlers.SearchHandler
	BodyLimit int
	// AccessLog toggles the request logger middleware.
	AccessLog bool
}

func NewApp(deps Deps) *fiber.App {
	bodyLimit := deps.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Analyzer",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		// Multipart overhead on top of the largest accepted file.
		BodyLimit:    bodyLimit + 1<<20,
		ErrorHandler: newErrorHandler(bodyLimit),
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	endpoints := []string{"POST /analyze", "GET /api/v1/health"}

	app.Post("/analyze", deps.Analyze.HandleAnalyze)

	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	if deps.History != nil {
		api.Get("/analyses", deps.History.HandleList)
		api.Get("/analyses/:id", deps.History.HandleGet)
		endpoints = append(endpoints, "GET /api/v1/analyses", "GET /api/v1/analyses/:id")
	}

	if deps.Search != nil {
		api.Post("/search", deps.Search.HandleSearch)
		endpoints = append(endpoints, "POST /api/v1/search")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "ATS Resume Analyzer API",
			"version":   Version,
			"endpoints": endpoints,
		})
	})

	return app
}

// newErrorHandler renders errors as {"error","code"}. Bodies rejected by the
// server's size limit get the same 400 the analyze handler returns for a
// file over maxFileSize.
func newErrorHandler(maxFileSize int) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code == fiber.StatusRequestEntityTooLarge {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", maxFileSize),
				"code":  fiber.StatusBadRequest,
			})
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}
}
