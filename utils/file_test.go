package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exam-store/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploadDir(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		UploadDir:     t.TempDir(),
		MaxUploadSize: 1 << 20,
	}
}

func pdfUploadContext(t *testing.T, filename string, content []byte) (*gin.Context, *multipart.FileHeader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("pdf", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	fileHeader, err := c.FormFile("pdf")
	require.NoError(t, err)
	return c, fileHeader
}

func TestSavePDF(t *testing.T) {
	setupUploadDir(t)
	c, fh := pdfUploadContext(t, "final exam.pdf", []byte("%PDF-1.4"))

	relPath, err := SavePDF(c, fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "/uploads/pdfs/"), "got %q", relPath)
	assert.True(t, strings.HasSuffix(relPath, "-final_exam.pdf"), "got %q", relPath)

	data, err := os.ReadFile(PDFDiskPath(relPath))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestSavePDFRejectsNonPDF(t *testing.T) {
	setupUploadDir(t)
	c, fh := pdfUploadContext(t, "exam.docx", []byte("nope"))

	_, err := SavePDF(c, fh)
	assert.Error(t, err)
}

func TestSavePDFRejectsOversized(t *testing.T) {
	setupUploadDir(t)
	config.AppConfig.MaxUploadSize = 4
	c, fh := pdfUploadContext(t, "exam.pdf", []byte("%PDF-1.4 too big"))

	_, err := SavePDF(c, fh)
	assert.Error(t, err)
}

func TestDeletePDF(t *testing.T) {
	setupUploadDir(t)
	c, fh := pdfUploadContext(t, "exam.pdf", []byte("%PDF-1.4"))

	relPath, err := SavePDF(c, fh)
	require.NoError(t, err)

	require.NoError(t, DeletePDF(relPath))
	_, err = os.Stat(PDFDiskPath(relPath))
	assert.True(t, os.IsNotExist(err))

	// Deleting again, or deleting nothing, is fine.
	assert.NoError(t, DeletePDF(relPath))
	assert.NoError(t, DeletePDF(""))
}

func TestPDFDiskPathIgnoresTraversal(t *testing.T) {
	setupUploadDir(t)

	got := PDFDiskPath("/uploads/pdfs/../../etc/passwd")
	want := filepath.Join(config.AppConfig.UploadDir, "pdfs", "passwd")
	assert.Equal(t, want, got)
}
