package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 32

var (
	bodyColor   = color.RGBA{0x3a, 0x3c, 0x44, 0xff}
	accentColor = color.RGBA{0x4c, 0xaf, 0x50, 0xff}
)

// Icon returns the tray icon in the format systray expects on this
// platform: ICO on Windows, PNG elsewhere.
func Icon() []byte {
	return iconFor(runtime.GOOS)
}

func iconFor(goos string) []byte {
	data := iconPNG()
	if goos == "windows" {
		return wrapICO(data, iconSize)
	}
	return data
}

// iconPNG draws a controller silhouette with a d-pad and two buttons.
func iconPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	fill := func(x0, y0, x1, y1 int, c color.RGBA) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	disc := func(cx, cy, r int, c color.RGBA) {
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}

	fill(6, 9, 26, 21, bodyColor)
	disc(7, 17, 6, bodyColor)
	disc(24, 17, 6, bodyColor)

	fill(7, 14, 13, 16, accentColor)
	fill(9, 12, 11, 18, accentColor)
	disc(21, 13, 1, accentColor)
	disc(24, 16, 1, accentColor)

	var buf bytes.Buffer
	// Encoding an in-memory RGBA image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// wrapICO puts one PNG image into an ICO container.
func wrapICO(pngData []byte, size int) []byte {
	const headerSize = 6 + 16
	var buf bytes.Buffer
	header := struct {
		Reserved, Type, Count uint16
		Width, Height         uint8
		Colors, Reserved2     uint8
		Planes, BitCount      uint16
		Bytes, Offset         uint32
	}{
		Type:     1,
		Count:    1,
		Width:    uint8(size),
		Height:   uint8(size),
		Planes:   1,
		BitCount: 32,
		Bytes:    uint32(len(pngData)),
		Offset:   headerSize,
	}
	_ = binary.Write(&buf, binary.LittleEndian, header)
	buf.Write(pngData)
	return buf.Bytes()
}
