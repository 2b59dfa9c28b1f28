package render

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
)

// 1-bit BMP container layout. Field order and widths are fixed by the BMP
// format; the firmware decoder rejects any deviation, so the headers are
// explicit structs serialized little-endian rather than inline offset
// arithmetic.

// bmpPixelDataOffset is 14 (file header) + 40 (info header) + 8 (palette).
const bmpPixelDataOffset = 62

// bmpPPM is pixels per meter at roughly 72 DPI.
const bmpPPM = 2835

type bmpFileHeader struct {
	Signature  [2]byte // "BM"
	FileSize   uint32
	Reserved   uint32
	DataOffset uint32
}

type bmpInfoHeader struct {
	HeaderSize      uint32 // 40
	Width           int32
	Height          int32 // negative: rows stored top-down
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ImportantColors uint32
}

// bmpPalette is the 2-entry BGRA color table: index 0 black, index 1 white.
var bmpPalette = [8]byte{
	0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x00,
}

// EncodeBMP packs a grayscale raster into a 1-bit-per-pixel BMP. Pixels
// brighter than 128 become white (bit 1), the rest black (bit 0). Bits are
// packed most-significant-bit first; each row is zero-padded to a 4-byte
// multiple per the BMP row-alignment rule.
func EncodeBMP(img *image.Gray) []byte {
	width := img.Rect.Dx()
	height := img.Rect.Dy()

	rowSize := (width + 7) / 8
	paddedRowSize := (rowSize + 3) / 4 * 4
	pixelDataSize := paddedRowSize * height
	fileSize := bmpPixelDataOffset + pixelDataSize

	buf := bytes.NewBuffer(make([]byte, 0, fileSize))

	_ = binary.Write(buf, binary.LittleEndian, bmpFileHeader{
		Signature:  [2]byte{'B', 'M'},
		FileSize:   uint32(fileSize),
		DataOffset: bmpPixelDataOffset,
	})
	_ = binary.Write(buf, binary.LittleEndian, bmpInfoHeader{
		HeaderSize:      40,
		Width:           int32(width),
		Height:          int32(-height),
		Planes:          1,
		BitsPerPixel:    1,
		ImageSize:       uint32(pixelDataSize),
		XPixelsPerMeter: bmpPPM,
		YPixelsPerMeter: bmpPPM,
		ColorsUsed:      2,
		ImportantColors: 2,
	})
	buf.Write(bmpPalette[:])

	row := make([]byte, paddedRowSize)
	for y := 0; y < height; y++ {
		for i := range row {
			row[i] = 0
		}

		var acc byte
		bits := 0
		out := 0
		for x := 0; x < width; x++ {
			bit := byte(0)
			if img.GrayAt(img.Rect.Min.X+x, img.Rect.Min.Y+y).Y > 128 {
				bit = 1
			}
			acc = acc<<1 | bit
			bits++
			if bits == 8 {
				row[out] = acc
				out++
				acc, bits = 0, 0
			}
		}
		if bits > 0 {
			// Unused low bits of the final partial byte stay zero.
			row[out] = acc << (8 - bits)
		}
		buf.Write(row)
	}

	return buf.Bytes()
}

// EncodePNG encodes the raster as PNG, the intermediate/preview format.
func EncodePNG(img *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
