package cdn

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalogpix/internal/settings"
)

// blobFolder is the fixed logical folder all uploads land under.
const blobFolder = "product-images"

// Uploader stores image bytes and returns a publicly resolvable URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, mimeType string, creds settings.Credentials) (string, error)
}

// UploadError carries the HTTP status and response body of a failed upload
// for diagnostics.
type UploadError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("CDN upload failed: %d %s. Response: %s", e.StatusCode, e.Status, e.Body)
}

// Client uploads block blobs to Azure Blob storage over its REST interface.
type Client struct {
	httpClient *resty.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: resty.New().
			SetDebug(false).
			SetHeader("x-ms-blob-type", "BlockBlob"),
	}
}

// Upload PUTs the image under product-images/<uuid>.<ext> in the configured
// container, authenticating with the SAS token. The returned public URL does
// not include the token suffix.
func (c *Client) Upload(ctx context.Context, data []byte, mimeType string, creds settings.Credentials) (string, error) {
	if !creds.Configured() {
		return "", fmt.Errorf("storage credentials are not configured")
	}

	filePath := fmt.Sprintf("%s/%s.%s", blobFolder, uuid.NewString(), extensionForMIME(mimeType))
	base := strings.TrimSuffix(creds.StorageURL, "/")
	uploadURL := fmt.Sprintf("%s/%s/%s%s", base, creds.Container, filePath, creds.Token)

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", mimeType).
		SetBody(data).
		Put(uploadURL)
	if err != nil {
		return "", fmt.Errorf("CDN upload failed: %w", err)
	}
	if res.IsError() {
		return "", &UploadError{
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       res.String(),
		}
	}

	publicURL := fmt.Sprintf("%s/%s/%s", base, creds.Container, filePath)
	log.Debug().Str("url", publicURL).Int("bytes", len(data)).Msg("blob uploaded")
	return publicURL, nil
}

// extensionForMIME maps a MIME type to a file extension, defaulting to jpg.
func extensionForMIME(mimeType string) string {
	_, subtype, ok := strings.Cut(mimeType, "/")
	if !ok || subtype == "" {
		return "jpg"
	}
	return subtype
}
