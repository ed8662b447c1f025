package zesty

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"gardencam/internal/core/domain"
	"gardencam/internal/core/ports"
)

// UploadFile streams r to the media storage service as a new file in binZUID.
func (c *Client) UploadFile(ctx context.Context, binZUID string, r io.Reader, meta ports.UploadMeta) (*domain.Asset, error) {
	endpoint := fmt.Sprintf("%s/upload/gcs/%s", c.endpoints.MediaURL, url.PathEscape(binZUID))

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	// The body is produced while the request is being sent.
	go func() {
		pw.CloseWithError(writeUploadForm(mw, binZUID, r, meta))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("zesty upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result struct {
		Data []domain.Asset `json:"data"`
	}
	err = c.do(req, "upload", &result)
	pr.Close()
	if err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("zesty upload: empty data in response")
	}

	asset := result.Data[0]
	if asset.ID == "" {
		return nil, fmt.Errorf("zesty upload: missing file id in response")
	}
	return &asset, nil
}

func writeUploadForm(mw *multipart.Writer, binZUID string, r io.Reader, meta ports.UploadMeta) error {
	fields := [][2]string{
		{"bin_id", binZUID},
		{"title", meta.Title},
		{"fileName", meta.FileName},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("file", meta.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("stream file: %w", err)
	}
	return mw.Close()
}
