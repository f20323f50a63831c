package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// File is one binary image to push to the remote store.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client talks to the image hosting provider: upload a blob, get back a
// durable URL; hand back a URL for deletion.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Upload(ctx context.Context, file File) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("image store returned status %d", resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// UploadBatch pushes every file concurrently and preserves input order in
// the returned URLs. Any single failure fails the batch.
func (c *Client) UploadBatch(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			u, err := c.Upload(gctx, file)
			if err != nil {
				return err
			}
			urls[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (c *Client) Delete(ctx context.Context, imageURL string) error {
	endpoint := c.baseURL + "/images?url=" + url.QueryEscape(imageURL)
	req, _ := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("image store returned status %d", resp.StatusCode)
	}
	return nil
}

// DeleteBatch is best-effort cleanup: each failure is logged and the rest
// of the batch still runs.
func (c *Client) DeleteBatch(ctx context.Context, urls []string) {
	var g errgroup.Group
	for _, u := range urls {
		u := u
		g.Go(func() error {
			if err := c.Delete(ctx, u); err != nil {
				log.Printf("failed to delete image %s: %v", u, err)
			}
			return nil
		})
	}
	g.Wait()
}
