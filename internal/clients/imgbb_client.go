package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

// ImageHost stores product images outside the database.
type ImageHost interface {
	Upload(ctx context.Context, name, filename string, image io.Reader) (domain.ImageRef, error)
	// Delete visits a delete URL previously returned by Upload. Any 2xx
	// response counts as success.
	Delete(ctx context.Context, deleteURL string) error
}

type imgbbUploadResponse struct {
	Data struct {
		DisplayURL string `json:"display_url"`
		DeleteURL  string `json:"delete_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

type imgbbClient struct {
	uploadURL string
	apiKey    string
	client    *http.Client
	log       *logrus.Logger
}

func NewImgBBClient(uploadURL, apiKey string, timeout time.Duration, logger *logrus.Logger) ImageHost {
	return &imgbbClient{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *imgbbClient) Upload(ctx context.Context, name, filename string, image io.Reader) (domain.ImageRef, error) {
	if c.apiKey == "" {
		return domain.ImageRef{}, fmt.Errorf("image host API key: %w", domain.ErrNotConfigured)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("key", c.apiKey); err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if name != "" {
		if err := form.WriteField("name", name); err != nil {
			return domain.ImageRef{}, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if filename == "" {
		filename = "image.jpg"
	}
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to read image data: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.ImageRef{}, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		c.log.Errorf("ImageHost: Failed to create upload request for '%s': %v", name, err)
		return domain.ImageRef{}, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	c.log.Infof("ImageHost: Uploading image '%s' (%d bytes)", name, body.Len())
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("ImageHost: Failed to execute upload request for '%s': %v", name, err)
		return domain.ImageRef{}, fmt.Errorf("failed to communicate with image host: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var parsed imgbbUploadResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := parsed.Error.Message
		if message == "" {
			message = "upload failed"
		}
		c.log.Errorf("ImageHost: Upload of '%s' failed with status %d: %s", name, resp.StatusCode, message)
		return domain.ImageRef{}, fmt.Errorf("image host returned status %d: %s: %w", resp.StatusCode, message, domain.ErrUpstream)
	}
	if decodeErr != nil {
		c.log.Errorf("ImageHost: Failed to decode upload response for '%s': %v", name, decodeErr)
		return domain.ImageRef{}, fmt.Errorf("failed to decode image host response: %w: %w", domain.ErrUpstream, decodeErr)
	}
	if parsed.Data.DisplayURL == "" || parsed.Data.DeleteURL == "" {
		c.log.Errorf("ImageHost: Upload response for '%s' is missing urls", name)
		return domain.ImageRef{}, fmt.Errorf("image host response is missing urls: %w", domain.ErrUpstream)
	}

	c.log.Infof("ImageHost: Uploaded image '%s' to %s", name, parsed.Data.DisplayURL)
	return domain.ImageRef{URL: parsed.Data.DisplayURL, DeleteURL: parsed.Data.DeleteURL}, nil
}

func (c *imgbbClient) Delete(ctx context.Context, deleteURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deleteURL, nil)
	if err != nil {
		c.log.Errorf("ImageHost: Failed to create delete request for %s: %v", deleteURL, err)
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("ImageHost: Failed to execute delete request for %s: %v", deleteURL, err)
		return fmt.Errorf("failed to communicate with image host: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Warnf("ImageHost: Delete request for %s failed with status %d. Response body: %s", deleteURL, resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("image host returned status %d for delete: %w", resp.StatusCode, domain.ErrUpstream)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.log.Infof("ImageHost: Deleted image via %s", deleteURL)
	return nil
}
