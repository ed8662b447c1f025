package domain

import (
	"fmt"
	"time"
)

// CaptureJob represents a single photo cycle.
// It only lives until the local file is removed.
type CaptureJob struct {
	ID       string    `json:"cycle_id"`
	TakenAt  time.Time `json:"taken_at"`
	Epoch    int64     `json:"epoch"` // Unix milliseconds
	FileName string    `json:"file_name"`
	Title    string    `json:"title"`
}

// NewCaptureJob derives the file name and title from the tick time.
func NewCaptureJob(id string, now time.Time) CaptureJob {
	epoch := now.UnixMilli()
	return CaptureJob{
		ID:       id,
		TakenAt:  now.UTC(),
		Epoch:    epoch,
		FileName: fmt.Sprintf("garden_img_%d.jpg", epoch),
		Title:    fmt.Sprintf("PI Zero Garden Photo Taken on %d", epoch),
	}
}

// Asset is an uploaded media file as reported by the media API.
type Asset struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Record is a content item created from an asset.
type Record struct {
	ZUID    string `json:"ZUID"`
	Version int    `json:"version"`
}

// CycleResult holds the outcome of a completed cycle.
type CycleResult struct {
	Job         CaptureJob
	Asset       *Asset
	Record      *Record
	Published   bool
	Err         error
	StartedAt   time.Time
	CompletedAt time.Time
}

// Success reports whether every step of the cycle went through.
func (r *CycleResult) Success() bool {
	return r.Err == nil && r.Published
}
