package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"pdfapi/internal/model"
	"pdfapi/internal/service"
)

// outputResponse acknowledges a written output. FilePath is the retrieval
// path of the output, never its location on disk.
type outputResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
	Name     string `json:"name"`
}

func outputPath(name string) string {
	return "/outputs/" + url.PathEscape(name)
}

func writeOutput(c *fiber.Ctx, message string, rec *model.OutputRecord) error {
	return c.Status(fiber.StatusCreated).JSON(outputResponse{
		Message:  message,
		FilePath: outputPath(rec.Name),
		Name:     rec.Name,
	})
}

// MergePDF godoc
// @Summary Merge PDFs in upload order
// @Tags pdf
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "documents to merge (at least two)"
// @Param output_name formData string false "suggested output name"
// @Success 201 {object} outputResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /pdf/merge [post]
func MergePDF(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, closeFiles, err := formFiles(c, "files")
		if err != nil {
			return writeFileError(c, err)
		}
		defer closeFiles()

		rec, err := svc.Merge(c.UserContext(), service.MergeRequest{
			Files:      files,
			OutputName: param(c, "output_name"),
		})
		if err != nil {
			return mapError(c, err)
		}
		return writeOutput(c, "PDFs merged successfully", rec)
	}
}

// SplitPDF godoc
// @Summary Extract a zero-based inclusive page range
// @Tags pdf
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Param start_page formData int true "first page (zero-based)"
// @Param end_page formData int true "last page (zero-based, inclusive)"
// @Param output_name formData string false "suggested output name"
// @Success 201 {object} outputResponse
// @Failure 400 {object} errorPayload
// @Router /pdf/split [post]
func SplitPDF(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, err := requiredIntParam(c, "start_page")
		if err != nil {
			return mapError(c, err)
		}
		end, err := requiredIntParam(c, "end_page")
		if err != nil {
			return mapError(c, err)
		}

		file, closeFile, err := formFile(c, "file")
		if err != nil {
			return writeFileError(c, err)
		}
		defer closeFile()

		rec, err := svc.Split(c.UserContext(), service.SplitRequest{
			File:       file,
			StartPage:  start,
			EndPage:    end,
			OutputName: param(c, "output_name"),
		})
		if err != nil {
			return mapError(c, err)
		}
		return writeOutput(c, "PDF split successfully", rec)
	}
}

// RotatePDF godoc
// @Summary Rotate pages by a multiple of 90 degrees
// @Tags pdf
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Param degrees formData int false "rotation, default 90"
// @Param pages formData string false "comma separated zero-based pages, default all"
// @Param output_name formData string false "suggested output name"
// @Success 201 {object} outputResponse
// @Failure 400 {object} errorPayload
// @Router /pdf/rotate [post]
func RotatePDF(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		degrees, err := intParam(c, "degrees", 90)
		if err != nil {
			return mapError(c, err)
		}
		pages, err := intListParam(c, "pages")
		if err != nil {
			return mapError(c, err)
		}

		file, closeFile, err := formFile(c, "file")
		if err != nil {
			return writeFileError(c, err)
		}
		defer closeFile()

		rec, err := svc.Rotate(c.UserContext(), service.RotateRequest{
			File:       file,
			Degrees:    degrees,
			Pages:      pages,
			OutputName: param(c, "output_name"),
		})
		if err != nil {
			return mapError(c, err)
		}
		return writeOutput(c, "PDF rotated successfully", rec)
	}
}

// WatermarkPDF godoc
// @Summary Stamp a text watermark on every page
// @Tags pdf
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document"
// @Param text formData string true "watermark text"
// @Param output_name formData string false "suggested output name"
// @Success 201 {object} outputResponse
// @Failure 400 {object} errorPayload
// @Router /pdf/watermark [post]
func WatermarkPDF(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closeFile, err := formFile(c, "file")
		if err != nil {
			return writeFileError(c, err)
		}
		defer closeFile()

		rec, err := svc.Watermark(c.UserContext(), service.WatermarkRequest{
			File:       file,
			Text:       param(c, "text"),
			OutputName: param(c, "output_name"),
		})
		if err != nil {
			return mapError(c, err)
		}
		return writeOutput(c, "Watermark added successfully", rec)
	}
}

// ProtectPDF godoc
// @Summary Password-protect a PDF and download it
// @Tags pdf
// @Accept multipart/form-data
// @Produce application/pdf
// @Param file formData file true "document"
// @Param password formData string false "user password, default 1234"
// @Param owner_password formData string false "owner password, defaults to the user password"
// @Param output_name formData string false "suggested output name"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Router /pdf/protect [post]
func ProtectPDF(svc service.PDFService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, closeFile, err := formFile(c, "file")
		if err != nil {
			return writeFileError(c, err)
		}
		defer closeFile()

		rec, err := svc.Protect(c.UserContext(), service.ProtectRequest{
			File:          file,
			UserPassword:  param(c, "password"),
			OwnerPassword: param(c, "owner_password"),
			OutputName:    param(c, "output_name"),
		})
		if err != nil {
			return mapError(c, err)
		}
		c.Attachment(rec.Name)
		return sendOutput(c, rec)
	}
}
