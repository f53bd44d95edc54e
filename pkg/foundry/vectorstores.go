package foundry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CreateVectorStoreRequest holds the fields for creating a vector store
type CreateVectorStoreRequest struct {
	Name    string   `json:"name,omitempty"`
	FileIDs []string `json:"file_ids,omitempty"`
}

// CreateVectorStore creates a vector store, optionally seeded with files
func (c *Client) CreateVectorStore(ctx context.Context, req CreateVectorStoreRequest) (*VectorStore, error) {
	var store VectorStore
	if err := c.do(ctx, http.MethodPost, "/vector_stores", nil, req, &store); err != nil {
		return nil, fmt.Errorf("failed to create vector store: %w", err)
	}
	return &store, nil
}

// GetVectorStore retrieves a vector store by ID
func (c *Client) GetVectorStore(ctx context.Context, storeID string) (*VectorStore, error) {
	var store VectorStore
	if err := c.do(ctx, http.MethodGet, "/vector_stores/"+storeID, nil, nil, &store); err != nil {
		return nil, fmt.Errorf("failed to get vector store %s: %w", storeID, err)
	}
	return &store, nil
}

// DeleteVectorStore deletes a vector store
func (c *Client) DeleteVectorStore(ctx context.Context, storeID string) error {
	var status DeletionStatus
	if err := c.do(ctx, http.MethodDelete, "/vector_stores/"+storeID, nil, nil, &status); err != nil {
		return fmt.Errorf("failed to delete vector store %s: %w", storeID, err)
	}
	return nil
}

// AddVectorStoreFile attaches an uploaded file to a vector store for indexing
func (c *Client) AddVectorStoreFile(ctx context.Context, storeID, fileID string) (*VectorStoreFile, error) {
	body := struct {
		FileID string `json:"file_id"`
	}{FileID: fileID}

	var file VectorStoreFile
	if err := c.do(ctx, http.MethodPost, "/vector_stores/"+storeID+"/files", nil, body, &file); err != nil {
		return nil, fmt.Errorf("failed to add file %s to vector store %s: %w", fileID, storeID, err)
	}
	return &file, nil
}

// ListVectorStoreFiles returns the files attached to a vector store
func (c *Client) ListVectorStoreFiles(ctx context.Context, storeID string) ([]VectorStoreFile, error) {
	var result page[VectorStoreFile]
	if err := c.do(ctx, http.MethodGet, "/vector_stores/"+storeID+"/files", nil, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list vector store files: %w", err)
	}
	return result.Data, nil
}

// WaitForVectorStore polls the store until indexing finishes (no files left
// in progress) or the context is cancelled. Same fixed-interval discipline as
// run polling.
func (c *Client) WaitForVectorStore(ctx context.Context, storeID string, interval time.Duration) (*VectorStore, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		store, err := c.GetVectorStore(ctx, storeID)
		if err != nil {
			return nil, err
		}
		if store.Status == "completed" || store.FileCounts.InProgress == 0 && store.FileCounts.Total > 0 {
			return store, nil
		}
		select {
		case <-ctx.Done():
			return store, ctx.Err()
		case <-ticker.C:
		}
	}
}
