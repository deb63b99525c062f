package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/high-horse/afis/config"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	logWriter, err := rotatelogs.New(
		filepath.Join(cfg.Log.Dir, "server.%Y%m%d.log"),
		rotatelogs.WithRotationTime(time.Duration(cfg.Log.RotationHours)*time.Hour),
		rotatelogs.WithMaxAge(time.Duration(cfg.Log.MaxAgeDays)*24*time.Hour),
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimitMiB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
		},
	})

	app.Use(logger.New(logger.Config{Output: logWriter}))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now(),
		})
	})

	app.Post("/v1/templates/convert", convertTemplate)
	app.Post("/v1/templates/inspect", inspectTemplate)
	app.Post("/v1/images/inspect", inspectImage)

	log.Println("Server starting on", cfg.Server.Address)
	log.Fatal(app.Listen(cfg.Server.Address))
}
