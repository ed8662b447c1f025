package testutil

import (
	"context"
	"io"
	"os"
	"sync"

	"gardencam/internal/core/domain"
	"gardencam/internal/core/ports"
)

// FakeCamera writes Content to the requested path, or fails with Err.
type FakeCamera struct {
	mu      sync.Mutex
	Content []byte
	Err     error
	Paths   []string
}

func (c *FakeCamera) Capture(ctx context.Context, path string) error {
	c.mu.Lock()
	c.Paths = append(c.Paths, path)
	c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	return os.WriteFile(path, c.Content, 0644)
}

// Calls returns how many captures were attempted.
func (c *FakeCamera) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Paths)
}

// FakeZesty is an in-memory ports.MediaStore and ports.ContentStore.
// Each *Err field makes the matching call fail.
type FakeZesty struct {
	mu sync.Mutex

	UploadErr  error
	CreateErr  error
	PublishErr error

	Uploads   []Upload
	Items     []ports.ItemPayload
	Published []Publish
}

// Upload is a recorded UploadFile call.
type Upload struct {
	BinZUID string
	Meta    ports.UploadMeta
	Body    []byte
}

// Publish is a recorded PublishItem call.
type Publish struct {
	ModelZUID string
	ItemZUID  string
	Version   int
}

func (z *FakeZesty) UploadFile(ctx context.Context, binZUID string, r io.Reader, meta ports.UploadMeta) (*domain.Asset, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	z.Uploads = append(z.Uploads, Upload{BinZUID: binZUID, Meta: meta, Body: body})
	if z.UploadErr != nil {
		return nil, z.UploadErr
	}
	return &domain.Asset{ID: "3-asset", Title: meta.Title}, nil
}

func (z *FakeZesty) CreateItem(ctx context.Context, modelZUID string, item ports.ItemPayload) (*domain.Record, error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.Items = append(z.Items, item)
	if z.CreateErr != nil {
		return nil, z.CreateErr
	}
	return &domain.Record{ZUID: "7-item", Version: 1}, nil
}

func (z *FakeZesty) PublishItem(ctx context.Context, modelZUID, itemZUID string, version int) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.Published = append(z.Published, Publish{ModelZUID: modelZUID, ItemZUID: itemZUID, Version: version})
	return z.PublishErr
}

// NetworkCalls returns the total number of remote calls made.
func (z *FakeZesty) NetworkCalls() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return len(z.Uploads) + len(z.Items) + len(z.Published)
}
