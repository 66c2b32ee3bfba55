package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
)

var uploadContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func contractPath(id int64, suffix string) string {
	return "/contracts/" + strconv.FormatInt(id, 10) + suffix
}

func (c *HTTPClient) ListContracts(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := c.do(ctx, request{method: http.MethodGet, path: "/contracts"}, &contracts); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	if contracts == nil {
		contracts = []models.Contract{}
	}
	return contracts, nil
}

func (c *HTTPClient) GetContract(ctx context.Context, id int64) (*models.Contract, error) {
	var contract models.Contract
	if err := c.do(ctx, request{method: http.MethodGet, path: contractPath(id, "")}, &contract); err != nil {
		return nil, fmt.Errorf("get contract %d: %w", id, err)
	}
	return &contract, nil
}

// UploadContract sends r as the single multipart field "file".
func (c *HTTPClient) UploadContract(ctx context.Context, filename string, r io.Reader) (*models.Contract, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	contentType, ok := uploadContentTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("upload contract: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload contract: read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload contract: %w", err)
	}

	req := request{
		method:      http.MethodPost,
		path:        "/contracts/upload",
		body:        &body,
		contentType: mw.FormDataContentType(),
		long:        true,
	}

	var contract models.Contract
	if err := c.do(ctx, req, &contract); err != nil {
		return nil, fmt.Errorf("upload contract: %w", err)
	}
	return &contract, nil
}

func (c *HTTPClient) AnalyzeContract(ctx context.Context, id int64) (*models.Analysis, error) {
	req := request{method: http.MethodPost, path: contractPath(id, "/analyze"), long: true}

	var result models.AnalysisResult
	if err := c.do(ctx, req, &result); err != nil {
		return nil, fmt.Errorf("analyze contract %d: %w", id, err)
	}
	return &result.Analysis, nil
}
