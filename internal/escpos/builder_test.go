package escpos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFontAlignText(t *testing.T) {
	out, err := NewBuilder().
		Init().
		Font("A").
		Align("center").
		Text("hello").
		Bytes()
	require.NoError(t, err)

	expected := []byte{
		0x1b, '@', // init
		0x1b, 'M', 0, // font A
		0x1b, 'a', 1, // center
	}
	expected = append(expected, []byte("hello")...)
	expected = append(expected, 0x0a)

	assert.Equal(t, expected, out)
}

func TestBarcodeEncoding(t *testing.T) {
	out, err := NewBuilder().
		Barcode("4006381333931", "EAN13", BarcodeOptions{
			Width:    2,
			Height:   100,
			Position: "below",
			Font:     "A",
		}).
		Bytes()
	require.NoError(t, err)

	expected := []byte{
		0x1d, 'H', 2, // HRI below
		0x1d, 'f', 0, // HRI font A
		0x1d, 'h', 100, // height
		0x1d, 'w', 2, // module width
		0x1d, 'k', 67, 13, // EAN13, 13 data bytes
	}
	expected = append(expected, []byte("4006381333931")...)

	assert.Equal(t, expected, out)
}

func TestBarcodeDefaults(t *testing.T) {
	// Unset geometry and HRI options fall back to the agent defaults.
	out, err := NewBuilder().
		Barcode("12345678", "CODE39", BarcodeOptions{}).
		Bytes()
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte{0x1d, 'H', 2}), "default HRI position is below")
	assert.True(t, bytes.Contains(out, []byte{0x1d, 'h', 100}), "default height is 100")
	assert.True(t, bytes.Contains(out, []byte{0x1d, 'w', 2}), "default width is 2")
}

func TestBarcodeWidthClamped(t *testing.T) {
	out, err := NewBuilder().
		Barcode("12345678", "CODE39", BarcodeOptions{Width: 99, Height: 50}).
		Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte{0x1d, 'w', 6}))
}

func TestUnknownSymbology(t *testing.T) {
	_, err := NewBuilder().
		Barcode("123", "QRCODE", BarcodeOptions{}).
		Bytes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QRCODE")
}

func TestEmptyBarcodeCode(t *testing.T) {
	_, err := NewBuilder().Barcode("", "EAN13", BarcodeOptions{}).Bytes()
	assert.Error(t, err)
}

func TestFirstErrorSticks(t *testing.T) {
	b := NewBuilder().Font("X").Align("nowhere")
	_, err := b.Bytes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font")
}

func TestSymbologyLookup(t *testing.T) {
	assert.True(t, IsSymbology("ean13"))
	assert.True(t, IsSymbology("NW7"))
	assert.False(t, IsSymbology("AZTEC"))
}

func TestSymbologiesAllSupported(t *testing.T) {
	names := Symbologies()
	require.NotEmpty(t, names)
	for _, name := range names {
		assert.True(t, IsSymbology(name), name)
	}
}
