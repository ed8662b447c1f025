package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCaptureJob(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 123_456_789, time.FixedZone("CET", 3600))

	job := NewCaptureJob("cycle-1", now)

	assert.Equal(t, "cycle-1", job.ID)
	assert.Equal(t, int64(1705311000123), job.Epoch)
	assert.Equal(t, "garden_img_1705311000123.jpg", job.FileName)
	assert.Equal(t, "PI Zero Garden Photo Taken on 1705311000123", job.Title)
	assert.Equal(t, time.UTC, job.TakenAt.Location())
}

func TestNewCaptureJobIsDeterministic(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, NewCaptureJob("a", now).FileName, NewCaptureJob("b", now).FileName)
}

func TestNewCaptureJobUniquePerMillisecond(t *testing.T) {
	base := time.UnixMilli(1700000000000)

	a := NewCaptureJob("a", base)
	b := NewCaptureJob("b", base.Add(time.Millisecond))
	sameMs := NewCaptureJob("c", base.Add(999*time.Microsecond))

	assert.NotEqual(t, a.FileName, b.FileName)
	assert.NotEqual(t, a.Title, b.Title)
	assert.Equal(t, a.FileName, sameMs.FileName)
}

func TestCycleResultSuccess(t *testing.T) {
	assert.True(t, (&CycleResult{Published: true}).Success())
	assert.False(t, (&CycleResult{Published: false}).Success())
	assert.False(t, (&CycleResult{Published: true, Err: errors.New("cleanup")}).Success())
}
