package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pdfapi/internal/model"
	"pdfapi/internal/service"
)

var errFileRequired = errors.New("file is required")

// param reads a form field, falling back to the query string.
func param(c *fiber.Ctx, key string) string {
	if v := strings.TrimSpace(c.FormValue(key)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query(key))
}

func intParam(c *fiber.Ctx, key string, def int) (int, error) {
	v := param(c, key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", model.ErrInvalidInput, key)
	}
	return n, nil
}

// requiredIntParam is intParam without a default.
func requiredIntParam(c *fiber.Ctx, key string) (int, error) {
	if param(c, key) == "" {
		return 0, fmt.Errorf("%w: %s is required", model.ErrInvalidInput, key)
	}
	return intParam(c, key, 0)
}

// intListParam parses a comma separated list such as "0,2,5".
func intListParam(c *fiber.Ctx, key string) ([]int, error) {
	v := param(c, key)
	if v == "" {
		return nil, nil
	}
	var out []int
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a comma separated list of integers", model.ErrInvalidInput, key)
		}
		out = append(out, n)
	}
	return out, nil
}

// formFile opens the multipart file under field. The caller must call the
// returned close func.
func formFile(c *fiber.Ctx, field string) (service.File, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return service.File{}, nil, errFileRequired
	}
	files, closeFn, err := openFiles([]*multipart.FileHeader{fh})
	if err != nil {
		return service.File{}, nil, err
	}
	return files[0], closeFn, nil
}

func formFiles(c *fiber.Ctx, field string) ([]service.File, func(), error) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File[field]) == 0 {
		return nil, nil, errFileRequired
	}
	return openFiles(form.File[field])
}

func openFiles(headers []*multipart.FileHeader) ([]service.File, func(), error) {
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]service.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, service.File{Filename: fh.Filename, Content: f})
	}
	return files, closeAll, nil
}

// writeFileError answers a missing or unreadable upload.
func writeFileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errFileRequired) {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
}
