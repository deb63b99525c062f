package main

import (
	"encoding/base64"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/high-horse/afis"
	"github.com/high-horse/afis/templates"
)

var formats = map[string]templates.Format{
	"compact": templates.CompactFormat{},
	"iso":     templates.IsoFormat{},
	"xml":     templates.XmlFormat{},
}

func statusFor(err error) int {
	var decodeErr *templates.DecodeError
	var validationErr *templates.ValidationError
	var encodeErr *templates.EncodeError
	switch {
	case errors.As(err, &decodeErr), errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &encodeErr):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func convertTemplate(c *fiber.Ctx) error {
	start := time.Now()
	id := uuid.NewString()

	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body: " + err.Error()})
	}
	if _, ok := formats[req.From]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Unknown source format: " + req.From})
	}
	if _, ok := formats[req.To]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Unknown target format: " + req.To})
	}
	data, err := base64.StdEncoding.DecodeString(req.Template)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Failed to decode base64 template: " + err.Error()})
	}

	fp := afis.New()
	switch req.From {
	case "compact":
		err = fp.SetTemplate(data)
	case "iso":
		err = fp.SetIsoTemplate(data)
	case "xml":
		err = fp.SetXmlTemplate(data)
	}
	if err != nil {
		log.Printf("[%s] import from %s failed: %v", id, req.From, err)
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Failed to import template: " + err.Error()})
	}

	var out []byte
	switch req.To {
	case "compact":
		out, err = fp.Template()
	case "iso":
		out, err = fp.IsoTemplate()
	case "xml":
		out, err = fp.XmlTemplate()
	}
	if err != nil {
		log.Printf("[%s] export to %s failed: %v", id, req.To, err)
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Failed to export template: " + err.Error()})
	}

	return c.JSON(ConvertResponse{
		ID:       id,
		Format:   req.To,
		Template: base64.StdEncoding.EncodeToString(out),
		Elapsed:  time.Since(start).String(),
	})
}

func inspectTemplate(c *fiber.Ctx) error {
	id := uuid.NewString()

	var req InspectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body: " + err.Error()})
	}
	format, ok := formats[req.Format]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Unknown format: " + req.Format})
	}
	data, err := base64.StdEncoding.DecodeString(req.Template)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Failed to decode base64 template: " + err.Error()})
	}

	t, err := format.Import(data)
	if err != nil {
		log.Printf("[%s] inspect of %s template failed: %v", id, req.Format, err)
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Failed to import template: " + err.Error()})
	}

	resp := InspectResponse{
		ID:           id,
		Width:        t.Width,
		Height:       t.Height,
		Dpi:          t.Dpi,
		Pattern:      t.Pattern.String(),
		MinutiaCount: len(t.Minutiae),
		Minutiae:     make([]MinutiaInfo, len(t.Minutiae)),
	}
	for i, m := range t.Minutiae {
		resp.Minutiae[i] = MinutiaInfo{
			X:         m.X,
			Y:         m.Y,
			Direction: int(m.Direction),
			Type:      m.Type.String(),
			Quality:   int(m.Quality),
		}
	}
	for _, rc := range t.RidgeCounts {
		resp.RidgeCounts = append(resp.RidgeCounts, RidgeCountInfo{From: rc.From, To: rc.To, Count: rc.Count})
	}
	return c.JSON(resp)
}

func inspectImage(c *fiber.Ctx) error {
	id := uuid.NewString()

	var req ImageInspectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body: " + err.Error()})
	}
	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Failed to decode base64 image: " + err.Error()})
	}

	img, format, err := afis.DecodeImage(data)
	if err != nil {
		log.Printf("[%s] image decode failed: %v", id, err)
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Failed to decode image: " + err.Error()})
	}

	return c.JSON(ImageInspectResponse{
		ID:     id,
		Format: format,
		Width:  img.Width,
		Height: img.Height,
		Usable: img.Width >= afis.MinImageSide && img.Height >= afis.MinImageSide,
	})
}
