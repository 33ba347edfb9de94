// Package api exposes the extraction and verification engines over HTTP.
package api

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/radomirbosak/platext/internal/document"
	"github.com/radomirbosak/platext/internal/extractor"
	"github.com/radomirbosak/platext/internal/models"
	"github.com/radomirbosak/platext/internal/parser"
	"github.com/radomirbosak/platext/internal/verify"
)

const version = "1.0.0"

// ExtractResponse is the JSON response from POST /api/extract.
type ExtractResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Payslip *models.Payslip `json:"payslip,omitempty"`
}

// VerifyResponse is the JSON response from POST /api/verify.
type VerifyResponse struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error,omitempty"`
	Records  []models.Record `json:"records,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})
	app.Get("/api/health", HandleHealth)
	app.Post("/api/extract", HandleExtract)
	app.Post("/api/verify", HandleVerify)
	return app
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

func HandleExtract(c *fiber.Ctx) error {
	slip, status, err := payslipFromRequest(c)
	if err != nil {
		return c.Status(status).JSON(ExtractResponse{Error: err.Error()})
	}
	return c.JSON(ExtractResponse{Success: true, Payslip: slip})
}

func HandleVerify(c *fiber.Ctx) error {
	slip, status, err := payslipFromRequest(c)
	if err != nil {
		return c.Status(status).JSON(VerifyResponse{Error: err.Error()})
	}
	v := verify.New(slip)
	return c.JSON(VerifyResponse{
		Success:  true,
		Records:  v.Verify(),
		Warnings: v.Warnings(),
	})
}

// payslipFromRequest extracts a payslip from either a pre-extracted "text"
// form value or an uploaded PDF/ZIP file.
func payslipFromRequest(c *fiber.Ctx) (*models.Payslip, int, error) {
	text := c.FormValue("text")

	if text == "" {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fiber.StatusBadRequest,
				fmt.Errorf("no payslip given: upload form field 'file' or pass pre-extracted 'text'")
		}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".pdf" && ext != ".zip" {
			return nil, fiber.StatusBadRequest,
				fmt.Errorf("unsupported upload %q: expected .pdf or .zip", fh.Filename)
		}

		tmp, err := os.CreateTemp("", "upload-*"+ext)
		if err != nil {
			return nil, fiber.StatusInternalServerError, err
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		if err := c.SaveFile(fh, tmp.Name()); err != nil {
			return nil, fiber.StatusInternalServerError,
				fmt.Errorf("failed to save upload: %w", err)
		}

		pdfPath := tmp.Name()
		if ext == ".zip" {
			extracted, err := extractor.ExtractFromArchive(tmp.Name(), c.FormValue("password"))
			if err != nil {
				return nil, fiber.StatusUnprocessableEntity, err
			}
			defer os.Remove(extracted)
			pdfPath = extracted
		}

		text, err = extractor.ExtractText(pdfPath)
		if err != nil {
			return nil, fiber.StatusUnprocessableEntity, err
		}
	}

	slip, err := parser.New(document.New(text)).Extract()
	if err != nil {
		slog.Debug("payslip extraction failed", "err", err)
		return nil, fiber.StatusUnprocessableEntity, err
	}
	return slip, fiber.StatusOK, nil
}
