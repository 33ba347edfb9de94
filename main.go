package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/radomirbosak/platext/internal/api"
	"github.com/radomirbosak/platext/internal/document"
	"github.com/radomirbosak/platext/internal/extractor"
	"github.com/radomirbosak/platext/internal/models"
	"github.com/radomirbosak/platext/internal/parser"
	"github.com/radomirbosak/platext/internal/verify"
	"github.com/radomirbosak/platext/internal/writer"
)

const version = "1.0.0"

func main() {
	assumptionsFlag := flag.Bool("assumptions", false, "Show which assumptions were made at verification")
	debugFlag := flag.Bool("debug", false, "Show debug messages")
	passwordFileFlag := flag.String("password-file", ".zippasswd", "File holding the archive/PDF password")
	addrFlag := flag.String("addr", ":8080", "Listen address for the serve command")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Payslip extraction and verification

Extracts structured fields (salary, taxes, hours, holiday pay) from the
text layer of a payslip PDF and recomputes them from tax/benefit formulas
to detect discrepancies.

Usage:
  platext [flags] extract <file>
  platext [flags] gnucash <file>
  platext [flags] verify <file>
  platext [flags] serve

Commands:
  extract   Output the payslip fields as JSON
  gnucash   Output the payslip as a ledger-friendly table
  verify    Check whether the payslip figures are internally consistent
  serve     Run the HTTP API

Arguments:
  file      A payslip .pdf, a password-protected .zip holding one, or a
            pre-extracted .txt text layer

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("platext v%s\n", version)
		os.Exit(0)
	}

	level := slog.LevelWarn
	if *debugFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	command := flag.Arg(0)

	if command == "serve" {
		app := api.NewApp()
		slog.Info("listening", "addr", *addrFlag)
		if err := app.Listen(*addrFlag); err != nil {
			fatalf("server failed: %v\n", err)
		}
		return
	}

	if flag.NArg() < 2 {
		fatalf("command %q requires a payslip file argument\n", command)
	}
	inputPath := flag.Arg(1)

	slip, err := loadPayslip(inputPath, *passwordFileFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	switch command {
	case "extract":
		if err := writer.WriteExtract(os.Stdout, slip); err != nil {
			fatalf("%v\n", err)
		}
	case "gnucash":
		writer.WriteGnucash(os.Stdout, slip)
	case "verify":
		v := verify.New(slip)
		if *assumptionsFlag {
			writer.WriteAssumptions(os.Stdout, v.Assumptions())
		}
		writer.WriteVerification(os.Stdout, v.Verify(), v.Warnings())
	default:
		fatalf("unknown command %q. Supported: extract, gnucash, verify, serve\n", command)
	}
}

// loadPayslip turns an input path (.txt, .pdf or .zip) into an extracted
// payslip, failing fast on the first unresolvable field.
func loadPayslip(inputPath, passwordFile string) (*models.Payslip, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}

	var text string
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, err
		}
		text = string(data)
	case ".zip":
		pdfPath, err := extractor.ExtractFromArchive(inputPath, readPassword(passwordFile))
		if err != nil {
			return nil, err
		}
		defer os.Remove(pdfPath)
		text, err = extractor.ExtractText(pdfPath)
		if err != nil {
			return nil, err
		}
	case ".pdf":
		var err error
		text, err = extractor.ExtractText(inputPath)
		if err != nil {
			// The PDF itself may be password protected.
			if pw := readPassword(passwordFile); pw != "" {
				decrypted, decErr := extractor.DecryptPDF(inputPath, pw)
				if decErr != nil {
					return nil, err
				}
				defer os.Remove(decrypted)
				text, err = extractor.ExtractText(decrypted)
			}
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("expected a .pdf, .zip or .txt file, got %q", inputPath)
	}

	return parser.New(document.New(text)).Extract()
}

// readPassword reads the archive password file, returning "" when absent.
func readPassword(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
