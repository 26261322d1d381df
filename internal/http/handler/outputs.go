package handler

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"pdfapi/internal/model"
	"pdfapi/internal/service"
)

// ListOutputs godoc
// @Summary List recorded outputs
// @Tags outputs
// @Produce json
// @Param limit query int false "page size, default 10"
// @Param offset query int false "offset, default 0"
// @Success 200 {object} service.OutputListResult
// @Failure 400 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /outputs [get]
func ListOutputs(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(res)
	}
}

// GetOutput godoc
// @Summary Download an output by name
// @Tags outputs
// @Produce application/pdf
// @Param name path string true "output name"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /outputs/{name} [get]
func GetOutput(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := svc.Get(c.UserContext(), c.Params("name"))
		if err != nil {
			return mapError(c, err)
		}
		return sendOutput(c, rec)
	}
}

// sendOutput streams the file currently at rec.StoragePath. The file is
// opened per request: an output rewritten under the fixed strategy must be
// served with its new bytes, never from a cached handle of the old file.
func sendOutput(c *fiber.Ctx, rec *model.OutputRecord) error {
	notFound := func() error {
		c.Response().Header.Del(fiber.HeaderContentDisposition)
		return mapError(c, fmt.Errorf("%w: output not found", model.ErrNotFound))
	}

	f, err := os.Open(rec.StoragePath)
	if err != nil {
		return notFound()
	}
	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		f.Close()
		return notFound()
	}

	mediaType := rec.MediaType
	if mediaType == "" {
		mediaType = model.MediaTypePDF
	}
	c.Set(fiber.HeaderContentType, mediaType)
	// fasthttp closes f once the body has been written
	return c.SendStream(f, int(fi.Size()))
}

// OutputLink godoc
// @Summary Presigned download link for a mirrored output
// @Tags outputs
// @Produce json
// @Param name path string true "output name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /outputs/{name}/link [get]
func OutputLink(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		link, err := svc.Link(c.UserContext(), c.Params("name"))
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(fiber.Map{"url": link})
	}
}
