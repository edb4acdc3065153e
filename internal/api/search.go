package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/altinukshini/dnafinder/internal/model"
)

type UploadRequest struct {
	FilePath  string
	Pattern   string
	Algorithm model.Algorithm
}

func (r UploadRequest) fields() []FormField {
	return []FormField{
		{Name: "pattern", Value: r.Pattern},
		{Name: "algorithm", Value: string(r.Algorithm)},
	}
}

type UploadResponse struct {
	// FileID is kept verbatim so it is sent back exactly as issued.
	FileID json.RawMessage `json:"file_id"`
}

type SearchRequest struct {
	FileID    json.RawMessage `json:"file_id"`
	Pattern   string          `json:"pattern"`
	Algorithm model.Algorithm `json:"algorithm"`
}

// UploadCSV is the first step of the two-step flow.
func (c *Client) UploadCSV(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	var resp UploadResponse
	files := []FormFile{{Field: "file", Path: req.FilePath}}
	if err := c.PostMultipart(ctx, "upload-csv", files, req.fields(), &resp); err != nil {
		return nil, fmt.Errorf("upload csv: %w", err)
	}
	if len(resp.FileID) == 0 || string(resp.FileID) == "null" {
		return nil, fmt.Errorf("upload csv: response carried no file_id")
	}
	return &resp, nil
}

// Search runs a search against a previously uploaded file.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*model.SearchResult, error) {
	var result model.SearchResult
	if err := c.Post(ctx, "search", req, &result); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &result, nil
}

// SearchMultipart sends the file, pattern and algorithm in one request.
func (c *Client) SearchMultipart(ctx context.Context, req UploadRequest) (*model.SearchResult, error) {
	var result model.SearchResult
	files := []FormFile{{Field: "csv_file", Path: req.FilePath}}
	if err := c.PostMultipart(ctx, "search", files, req.fields(), &result); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &result, nil
}
