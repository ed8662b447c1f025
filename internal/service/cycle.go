package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"gardencam/internal/core/domain"
	"gardencam/internal/core/ports"
)

// A freshly created item is always at version 1, so no lookup is needed.
const initialVersion = 1

// Log messages operators grep for on the device console.
const (
	MsgCameraOn    = "CAMERA ON"
	MsgCameraOff   = "CAMERA OFF"
	MsgSaveFailed  = "Failed saving photo to Zesty.io"
	MsgCaptureFail = "Camera capture failed"
)

// ErrCapture marks a failure of the capture step.
var ErrCapture = errors.New("capture failed")

// Targets are the remote identifiers every cycle writes to.
type Targets struct {
	BinZUID   string
	ModelZUID string
	UserZUID  string
}

// Cycle runs one capture, upload, create, publish and cleanup sequence.
type Cycle struct {
	camera    ports.Camera
	media     ports.MediaStore
	content   ports.ContentStore
	workspace ports.Workspace
	targets   Targets
	clock     Clock
	ids       IDGenerator
	logger    *slog.Logger
}

// NewCycle creates a new Cycle.
func NewCycle(
	camera ports.Camera,
	media ports.MediaStore,
	content ports.ContentStore,
	workspace ports.Workspace,
	targets Targets,
	logger *slog.Logger,
) *Cycle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cycle{
		camera:    camera,
		media:     media,
		content:   content,
		workspace: workspace,
		targets:   targets,
		clock:     RealClock{},
		ids:       UUIDGenerator{},
		logger:    logger,
	}
}

// Run executes a complete cycle. Errors are logged and recorded on the
// result, never retried. The local file is removed on every path.
func (c *Cycle) Run(ctx context.Context) (result *domain.CycleResult) {
	job := domain.NewCaptureJob(c.ids.New(), c.clock.Now())
	result = &domain.CycleResult{Job: job, StartedAt: job.TakenAt}
	logger := c.logger.With("cycle", job.ID, "file", job.FileName)

	defer func() {
		if err := c.workspace.Remove(job.FileName); err != nil {
			logger.Error("Failed removing photo", "err", err)
			result.Err = multierror.Append(result.Err, err).ErrorOrNil()
		}
		result.CompletedAt = c.clock.Now()
	}()

	logger.Debug("Taking photo", "path", c.workspace.Path(job.FileName))
	if err := c.camera.Capture(ctx, c.workspace.Path(job.FileName)); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrCapture, err)
		logger.Error(MsgCaptureFail, "err", err)
		return result
	}

	if err := c.save(ctx, logger, job, result); err != nil {
		result.Err = err
		logger.Error(err.Error())
		logger.Error(MsgSaveFailed)
		logger.Info(MsgCameraOff)
		return result
	}

	logger.Info("Photo published", "asset", result.Asset.ID, "item", result.Record.ZUID)
	return result
}

// save uploads the captured file, creates the item and publishes it.
func (c *Cycle) save(ctx context.Context, logger *slog.Logger, job domain.CaptureJob, result *domain.CycleResult) error {
	f, err := c.workspace.Open(job.FileName)
	if err != nil {
		return err
	}
	defer f.Close()

	asset, err := c.media.UploadFile(ctx, c.targets.BinZUID, f, ports.UploadMeta{
		Title:    job.Title,
		FileName: job.FileName,
	})
	if err != nil {
		return fmt.Errorf("upload photo: %w", err)
	}
	result.Asset = asset
	logger.Debug("Photo uploaded", "asset", asset.ID)

	record, err := c.content.CreateItem(ctx, c.targets.ModelZUID, ports.ItemPayload{
		Data: map[string]any{
			"title": asset.Title,
			"image": asset.ID,
		},
		Meta: ports.ItemMeta{
			ContentModelZUID:  c.targets.ModelZUID,
			CreatedByUserZUID: c.targets.UserZUID,
		},
	})
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	result.Record = record
	logger.Debug("Item created", "item", record.ZUID)

	if err := c.content.PublishItem(ctx, c.targets.ModelZUID, record.ZUID, initialVersion); err != nil {
		return fmt.Errorf("publish item %s: %w", record.ZUID, err)
	}
	result.Published = true
	return nil
}
