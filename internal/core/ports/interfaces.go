package ports

import (
	"context"
	"io"

	"gardencam/internal/core/domain"
)

// Camera defines the contract for taking a still photo.
type Camera interface {
	// Capture writes a single image to path.
	Capture(ctx context.Context, path string) error
}

// UploadMeta describes a file sent to the media API.
type UploadMeta struct {
	Title    string
	FileName string
}

// MediaStore defines the contract for storing binary assets in a bin.
type MediaStore interface {
	// UploadFile streams r into the given bin and returns the stored asset.
	UploadFile(ctx context.Context, binZUID string, r io.Reader, meta UploadMeta) (*domain.Asset, error)
}

// ItemPayload is the body of a content item creation request.
type ItemPayload struct {
	Data map[string]any `json:"data"`
	Meta ItemMeta       `json:"meta"`
}

// ItemMeta carries ownership information for a content item.
type ItemMeta struct {
	ContentModelZUID  string `json:"contentModelZUID"`
	CreatedByUserZUID string `json:"createdByUserZUID"`
}

// ContentStore defines the contract for content items.
type ContentStore interface {
	// CreateItem creates an item of the given model.
	CreateItem(ctx context.Context, modelZUID string, item ItemPayload) (*domain.Record, error)

	// PublishItem marks the given version of an item live.
	PublishItem(ctx context.Context, modelZUID, itemZUID string, version int) error
}

// Authenticator exchanges user credentials for a session token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Workspace defines the contract for the local capture directory.
type Workspace interface {
	// Path returns the filesystem path for a capture file name.
	Path(name string) string

	// Open opens a captured file for reading.
	Open(name string) (io.ReadCloser, error)

	// Remove deletes a captured file. Missing files are not an error.
	Remove(name string) error
}
