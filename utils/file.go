package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"exam-store/config"

	"github.com/gin-gonic/gin"
)

const pdfSubDir = "pdfs"

// SavePDF writes an uploaded PDF under <uploadDir>/pdfs with a
// timestamp-prefixed name and returns the relative path that gets
// persisted on the product, e.g. /uploads/pdfs/1700000000000-exam.pdf.
func SavePDF(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > config.AppConfig.MaxUploadSize {
		return "", errors.New("file size exceeds maximum allowed size")
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		return "", errors.New("invalid file type. Only PDF files are allowed")
	}

	dir := filepath.Join(config.AppConfig.UploadDir, pdfSubDir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), strings.ReplaceAll(fileHeader.Filename, " ", "_"))
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return "/uploads/" + pdfSubDir + "/" + filename, nil
}

// DeletePDF removes the file recorded at the given relative path. A
// missing file is not an error.
func DeletePDF(relPath string) error {
	if relPath == "" {
		return nil
	}
	fullPath := PDFDiskPath(relPath)
	if _, err := os.Stat(fullPath); err == nil {
		return os.Remove(fullPath)
	}
	return nil
}

// PDFDiskPath maps a stored relative path back to the on-disk location.
// Only the base name is trusted, so a tampered path cannot escape the
// uploads directory.
func PDFDiskPath(relPath string) string {
	return filepath.Join(config.AppConfig.UploadDir, pdfSubDir, filepath.Base(relPath))
}

// PDFFullURL builds the fully qualified URL for a stored PDF from the
// current request's scheme and host.
func PDFFullURL(c *gin.Context, relPath string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, relPath)
}
