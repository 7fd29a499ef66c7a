package qrserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/farmreg/internal/config"
)

// Client fetches QR code images for farmer codes.
type Client interface {
	GenerateQRCode(ctx context.Context, data string, size int) ([]byte, error)
}

// APIClient is a resty-backed implementation of Client over the qrserver
// HTTP API.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a QR API client using the provided configuration values.
func NewClient(cfg config.QRConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// GenerateQRCode fetches a size x size PNG encoding the given data.
func (c *APIClient) GenerateQRCode(ctx context.Context, data string, size int) ([]byte, error) {
	if size <= 0 {
		size = 150
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("size", fmt.Sprintf("%dx%d", size, size)).
		SetQueryParam("data", data).
		Get("/v1/create-qr-code/")
	if err != nil {
		return nil, fmt.Errorf("fetch qr code: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("qr api error: code=%d", resp.StatusCode())
	}

	return resp.Body(), nil
}
