package extractor

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/yeka/zip"
)

// ExtractFromArchive pulls the English payslip PDF out of a password
// protected ZIP archive and writes it to a temporary file, returning its
// path. The caller removes the file when done. Payslips arrive as one
// archive holding a Czech and an English rendering; the English one is
// recognized by "ENG" in its name.
func ExtractFromArchive(zipPath, password string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %q: %w", zipPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.Contains(f.Name, "ENG") {
			continue
		}
		slog.Debug("extracting payslip from archive", "name", f.Name)

		if f.IsEncrypted() {
			if password == "" {
				return "", fmt.Errorf("archive entry %q is encrypted and no password was given", f.Name)
			}
			f.SetPassword(password)
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open archive entry %q: %w", f.Name, err)
		}
		defer rc.Close()

		tmp, err := os.CreateTemp("", "payslip-*.pdf")
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(tmp, rc); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", fmt.Errorf("failed to extract %q: %w", f.Name, err)
		}
		tmp.Close()
		return tmp.Name(), nil
	}

	return "", fmt.Errorf("no english (ENG) payslip found in archive %q", zipPath)
}

// DecryptPDF decrypts a password-protected payslip PDF into a temporary
// file and returns its path. The caller removes the file when done.
func DecryptPDF(pdfPath, password string) (string, error) {
	tmp, err := os.CreateTemp("", "payslip-dec-*.pdf")
	if err != nil {
		return "", err
	}
	tmp.Close()

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	if err := api.DecryptFile(pdfPath, tmp.Name(), conf); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to decrypt %q: %w", pdfPath, err)
	}
	return tmp.Name(), nil
}
