package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"printagent/internal/core"
	"printagent/internal/escpos"
)

type PrintHandler struct {
	spooler *core.Spooler
}

func NewPrintHandler(spooler *core.Spooler) *PrintHandler {
	return &PrintHandler{spooler: spooler}
}

type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

type BarcodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Type     string `json:"type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Position string `json:"position"`
	Font     string `json:"font"`
}

type BatchItemRequest struct {
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content"`
	Code     string `json:"code"`
	Barcode  string `json:"barcode_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Position string `json:"position"`
	Font     string `json:"font"`
	Quantity int    `json:"quantity"`
}

type BatchRequest struct {
	Items []BatchItemRequest `json:"items" binding:"required,min=1"`
}

func barcodeDefaults(symbology, position, font string) (string, string, string) {
	if symbology == "" {
		symbology = "EAN13"
	}
	if position == "" {
		position = "below"
	}
	if font == "" {
		font = "A"
	}
	return symbology, position, font
}

func validateBarcode(symbology, position, font string) error {
	if !escpos.IsSymbology(symbology) {
		return fmt.Errorf("unknown barcode type %q", symbology)
	}
	switch position {
	case "above", "below", "both", "off":
	default:
		return fmt.Errorf("invalid position %q (valid: above, below, both, off)", position)
	}
	switch font {
	case "A", "B", "a", "b":
	default:
		return fmt.Errorf("invalid font %q (valid: A, B)", font)
	}
	return nil
}

// PrintText queues a plain text job for the default printer.
func (h *PrintHandler) PrintText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Text is required"})
		return
	}

	job := h.spooler.Submit(&core.Job{
		Kind:    core.JobKindText,
		Content: req.Text,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Text job queued",
		"data":    job,
	})
}

// PrintBarcode queues a single barcode job.
func (h *PrintHandler) PrintBarcode(c *gin.Context) {
	var req BarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Barcode code is required"})
		return
	}

	symbology, position, font := barcodeDefaults(req.Type, req.Position, req.Font)
	if err := validateBarcode(symbology, position, font); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	width := req.Width
	if width == 0 {
		width = 2
	}
	height := req.Height
	if height == 0 {
		height = 100
	}

	job := h.spooler.Submit(&core.Job{
		Kind:      core.JobKindBarcode,
		Code:      req.Code,
		Symbology: symbology,
		Width:     width,
		Height:    height,
		Position:  position,
		Font:      font,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Barcode job queued",
		"data":    job,
	})
}

// PrintBatch queues an ordered batch of text and barcode items.
func (h *PrintHandler) PrintBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Items are required"})
		return
	}

	items := make([]core.BatchItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("item %d: quantity must be positive", i)})
			return
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		switch core.JobKind(item.Type) {
		case core.JobKindText:
			if item.Content == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("item %d: content is required", i)})
				return
			}
			items = append(items, core.BatchItem{
				Kind:     core.JobKindText,
				Content:  item.Content,
				Quantity: quantity,
			})
		case core.JobKindBarcode:
			if item.Code == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("item %d: code is required", i)})
				return
			}
			symbology, position, font := barcodeDefaults(item.Barcode, item.Position, item.Font)
			if err := validateBarcode(symbology, position, font); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("item %d: %s", i, err.Error())})
				return
			}
			width := item.Width
			if width == 0 {
				width = 2
			}
			height := item.Height
			if height == 0 {
				height = 100
			}
			items = append(items, core.BatchItem{
				Kind:      core.JobKindBarcode,
				Code:      item.Code,
				Symbology: symbology,
				Width:     width,
				Height:    height,
				Position:  position,
				Font:      font,
				Quantity:  quantity,
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("item %d: unknown type %q", i, item.Type)})
			return
		}
	}

	job := h.spooler.Submit(&core.Job{
		Kind:  core.JobKindBatch,
		Items: items,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Batch job queued",
		"data":    job,
	})
}
