package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nordskill/medialib/internal/asset"
)

// PageSize is the fixed server-side page length for listings.
const PageSize = 30

// KindCount is one per-kind tally from a listing response.
type KindCount struct {
	Kind  asset.Kind `json:"_id"`
	Count int        `json:"count"`
}

// ListResult is the response of a catalog page fetch.
type ListResult struct {
	Files        []asset.Asset `json:"files"`
	TotalCount   int           `json:"totalCount"`
	CountsByType []KindCount   `json:"countsByType"`
}

// FileData is the client-extracted metadata submitted alongside an
// upload. Width/height come from local decoding; duration is set for
// video only.
type FileData struct {
	Name     string  `json:"name"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	FPS      float64 `json:"fps,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// List fetches one catalog page. Page numbers are 1-based; kind is
// empty for an unfiltered listing.
func (c *Client) List(ctx context.Context, kind asset.Kind, page int) (*ListResult, error) {
	q := url.Values{}
	if kind != "" {
		q.Set("type", string(kind))
	}
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("api", "files")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var result ListResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return &result, nil
}

// Get fetches a single asset by id.
func (c *Client) Get(ctx context.Context, id string) (*asset.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("api", "files", id), nil)
	if err != nil {
		return nil, err
	}
	var a asset.Asset
	if err := c.doJSON(req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create uploads one file as multipart form data: a "file" part with
// the raw bytes and a "fileData" part with the JSON metadata. The
// returned asset is typically still in processing status.
func (c *Client) Create(ctx context.Context, fileName string, content io.Reader, meta FileData) (*asset.Asset, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, fileName, content, meta)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("api", "files"), pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result struct {
		Success bool        `json:"success"`
		File    asset.Asset `json:"file"`
	}
	if err := c.doJSON(req, &result); err != nil {
		return nil, fmt.Errorf("uploading %q: %w", fileName, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("uploading %q: server reported failure", fileName)
	}
	return &result.File, nil
}

func writeUploadForm(mw *multipart.Writer, fileName string, content io.Reader, meta FileData) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := mw.WriteField("fileData", string(metaJSON)); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content)
	return err
}

// Delete removes the given assets in one batched call and returns the
// ids the server actually deleted, which may be a subset of those
// requested.
func (c *Client) Delete(ctx context.Context, ids []string) ([]string, error) {
	req, err := c.jsonRequest(ctx, http.MethodDelete, c.url("api", "files"), ids)
	if err != nil {
		return nil, err
	}
	var result struct {
		Success      bool     `json:"success"`
		DeletedFiles []string `json:"deletedFiles"`
	}
	if err := c.doJSON(req, &result); err != nil {
		return nil, fmt.Errorf("deleting %d files: %w", len(ids), err)
	}
	return result.DeletedFiles, nil
}

// Patch applies a partial update (e.g. alt text or display name) to a
// single asset and returns the updated record.
func (c *Client) Patch(ctx context.Context, id string, fields map[string]interface{}) (*asset.Asset, error) {
	req, err := c.jsonRequest(ctx, http.MethodPatch, c.url("api", "files", id), fields)
	if err != nil {
		return nil, err
	}
	var a asset.Asset
	if err := c.doJSON(req, &a); err != nil {
		return nil, fmt.Errorf("updating file %s: %w", id, err)
	}
	return &a, nil
}
