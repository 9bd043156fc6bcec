package core

import (
	"time"
)

type JobKind string

const (
	JobKindText    JobKind = "text"
	JobKindBarcode JobKind = "barcode"
	JobKindBatch   JobKind = "batch"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// BatchItem is one entry of a batch job. It carries either a text or a
// barcode payload, printed Quantity times in sequence.
type BatchItem struct {
	Kind      JobKind `json:"kind"`
	Content   string  `json:"content,omitempty"`
	Code      string  `json:"code,omitempty"`
	Symbology string  `json:"symbology,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Position  string  `json:"position,omitempty"`
	Font      string  `json:"font,omitempty"`
	Quantity  int     `json:"quantity"`
}

type Job struct {
	ID        string  `json:"id"`
	Kind      JobKind `json:"kind"`
	Content   string  `json:"content,omitempty"`
	Code      string  `json:"code,omitempty"`
	Symbology string  `json:"symbology,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Position  string  `json:"position,omitempty"`
	Font      string  `json:"font,omitempty"`

	Items []BatchItem `json:"items,omitempty"`

	Status       JobStatus  `json:"status"`
	ErrorMessage string     `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Units is the number of physical prints the job produces.
func (j *Job) Units() int {
	if j.Kind != JobKindBatch {
		return 1
	}
	total := 0
	for _, item := range j.Items {
		q := item.Quantity
		if q < 1 {
			q = 1
		}
		total += q
	}
	return total
}

// DeviceRef identifies the configured output device by its USB
// vendor/product pair.
type DeviceRef struct {
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
}
