package device

import (
	"context"
	"fmt"
	"log/slog"

	"printagent/internal/core"
	"printagent/internal/escpos"
)

// CounterSink records completed physical prints.
type CounterSink interface {
	IncrementPrintCount(ctx context.Context, vendorID, productID uint16, count int) error
}

// Renderer drives one job against a physical printer: encode the
// payload as an ESC/POS stream, open the device transport, write,
// close. It implements core.Renderer.
type Renderer struct {
	opener   Opener
	counters CounterSink
	logger   *slog.Logger
}

func NewRenderer(opener Opener, counters CounterSink, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		opener:   opener,
		counters: counters,
		logger:   logger,
	}
}

func (r *Renderer) Render(job *core.Job, ref core.DeviceRef) error {
	data, err := Encode(job)
	if err != nil {
		return err
	}

	w, err := r.opener.Open(ref)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write to printer: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close printer: %w", err)
	}

	if r.counters != nil {
		if err := r.counters.IncrementPrintCount(context.Background(), ref.VendorID, ref.ProductID, job.Units()); err != nil {
			// Accounting only; the print itself succeeded.
			r.logger.Warn("failed to record print count", "error", err)
		}
	}

	return nil
}

// Encode turns a job into the ESC/POS byte stream for the whole
// document. Batch items render in array order, each repeated its
// quantity times before the next item begins.
func Encode(job *core.Job) ([]byte, error) {
	b := escpos.NewBuilder().Init().Font("A").Align("center")

	switch job.Kind {
	case core.JobKindText:
		b.Text(job.Content)
	case core.JobKindBarcode:
		encodeBarcode(b, job.Code, job.Symbology, job.Width, job.Height, job.Position, job.Font)
	case core.JobKindBatch:
		for _, item := range job.Items {
			quantity := item.Quantity
			if quantity < 1 {
				quantity = 1
			}
			for i := 0; i < quantity; i++ {
				switch item.Kind {
				case core.JobKindText:
					b.Text(item.Content)
				case core.JobKindBarcode:
					encodeBarcode(b, item.Code, item.Symbology, item.Width, item.Height, item.Position, item.Font)
				default:
					return nil, fmt.Errorf("unsupported batch item kind: %s", item.Kind)
				}
			}
		}
	default:
		return nil, fmt.Errorf("unsupported job kind: %s", job.Kind)
	}

	return b.Bytes()
}

func encodeBarcode(b *escpos.Builder, code, symbology string, width, height int, position, font string) {
	b.Barcode(code, symbology, escpos.BarcodeOptions{
		Width:    width,
		Height:   height,
		Position: position,
		Font:     font,
	})
	// Spacing after the symbol so the HRI line clears the tear bar.
	b.Feed(2)
}
