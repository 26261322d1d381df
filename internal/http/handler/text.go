package handler

import (
	"github.com/gofiber/fiber/v2"

	"pdfapi/internal/service"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Summarize godoc
// @Summary Summarize the text of a PDF
// @Tags text
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /text/summarize [post]
func Summarize(svc service.TextService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closeFile, err := formFile(c, "file")
		if err != nil {
			return writeFileError(c, err)
		}
		defer closeFile()

		summary, err := svc.Summarize(c.UserContext(), file)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(fiber.Map{"summary": summary})
	}
}

// Generate godoc
// @Summary Generate text from a prompt
// @Tags text
// @Accept json
// @Produce json
// @Param request body generateRequest true "prompt"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /text/generate [post]
func Generate(svc service.TextService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateRequest
		if len(c.Body()) > 0 && c.Is("json") {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
			}
		}
		if req.Prompt == "" {
			req.Prompt = param(c, "prompt")
		}

		text, err := svc.Generate(c.UserContext(), req.Prompt)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(fiber.Map{"text": text})
	}
}
