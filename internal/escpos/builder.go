// Package escpos assembles ESC/POS command streams for receipt
// printers: text blocks and 1D barcodes.
package escpos

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	esc = 0x1b
	gs  = 0x1d
	lf  = 0x0a
)

// Barcode symbologies, GS k function B encoding.
var symbologyMap = map[string]byte{
	"UPC-A":   65,
	"UPC-E":   66,
	"EAN13":   67,
	"EAN8":    68,
	"CODE39":  69,
	"ITF":     70,
	"NW7":     71,
	"CODABAR": 71,
	"CODE93":  72,
	"CODE128": 73,
}

// HRI text positions, GS H argument.
var positionMap = map[string]byte{
	"off":   0,
	"above": 1,
	"below": 2,
	"both":  3,
}

var fontMap = map[string]byte{
	"A": 0,
	"B": 1,
}

var alignMap = map[string]byte{
	"left":   0,
	"center": 1,
	"right":  2,
}

type BarcodeOptions struct {
	Width    int    // module width, 2-6
	Height   int    // in dots, 1-255
	Position string // above, below, both, off
	Font     string // A or B
}

// Builder accumulates an ESC/POS document. Methods chain; the first
// error sticks and Bytes reports it.
type Builder struct {
	buf bytes.Buffer
	err error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Init() *Builder {
	b.write(esc, '@')
	return b
}

func (b *Builder) Font(font string) *Builder {
	n, ok := fontMap[strings.ToUpper(font)]
	if !ok {
		b.fail(fmt.Errorf("unknown font %q (valid: A, B)", font))
		return b
	}
	b.write(esc, 'M', n)
	return b
}

func (b *Builder) Align(align string) *Builder {
	n, ok := alignMap[strings.ToLower(align)]
	if !ok {
		b.fail(fmt.Errorf("unknown alignment %q (valid: left, center, right)", align))
		return b
	}
	b.write(esc, 'a', n)
	return b
}

func (b *Builder) Text(content string) *Builder {
	if b.err != nil {
		return b
	}
	b.buf.WriteString(content)
	b.write(lf)
	return b
}

func (b *Builder) Feed(lines int) *Builder {
	if lines < 0 {
		lines = 0
	}
	if lines > 255 {
		lines = 255
	}
	b.write(esc, 'd', byte(lines))
	return b
}

func (b *Builder) Barcode(code, symbology string, opts BarcodeOptions) *Builder {
	if b.err != nil {
		return b
	}
	if code == "" {
		b.fail(fmt.Errorf("barcode code is empty"))
		return b
	}
	if len(code) > 255 {
		b.fail(fmt.Errorf("barcode code too long: %d bytes", len(code)))
		return b
	}

	sym, ok := symbologyMap[strings.ToUpper(symbology)]
	if !ok {
		b.fail(fmt.Errorf("unknown barcode symbology %q", symbology))
		return b
	}

	position, ok := positionMap[strings.ToLower(opts.Position)]
	if !ok {
		position = positionMap["below"]
	}

	font, ok := fontMap[strings.ToUpper(opts.Font)]
	if !ok {
		font = fontMap["A"]
	}

	width := opts.Width
	if width < 2 {
		width = 2
	}
	if width > 6 {
		width = 6
	}

	height := opts.Height
	if height < 1 {
		height = 100
	}
	if height > 255 {
		height = 255
	}

	b.write(gs, 'H', position)
	b.write(gs, 'f', font)
	b.write(gs, 'h', byte(height))
	b.write(gs, 'w', byte(width))
	b.write(gs, 'k', sym, byte(len(code)))
	b.buf.WriteString(code)
	return b
}

func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.buf.Bytes(), nil
}

func (b *Builder) write(bs ...byte) {
	if b.err != nil {
		return
	}
	b.buf.Write(bs)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Symbologies lists the supported barcode symbology names.
func Symbologies() []string {
	return []string{"UPC-A", "UPC-E", "EAN13", "EAN8", "CODE39", "ITF", "NW7", "CODABAR", "CODE93", "CODE128"}
}

// IsSymbology reports whether the given name is a supported symbology.
func IsSymbology(name string) bool {
	_, ok := symbologyMap[strings.ToUpper(name)]
	return ok
}
