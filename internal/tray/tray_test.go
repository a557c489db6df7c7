package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserCommand(t *testing.T) {
	const url = "http://localhost:8080"
	cases := []struct {
		goos string
		args []string
	}{
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", url}},
		{"darwin", []string{"open", url}},
		{"linux", []string{"xdg-open", url}},
		{"freebsd", []string{"xdg-open", url}},
	}
	for _, tc := range cases {
		t.Run(tc.goos, func(t *testing.T) {
			assert.Equal(t, tc.args, browserCommand(tc.goos, url).Args)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	called := 0
	tr := New("http://localhost:1234", nil, func() { called++ })
	assert.NotNil(t, tr.logger)
	assert.Equal(t, "http://localhost:1234", tr.url)
	tr.once.Do(tr.shutdownFunc)
	tr.once.Do(tr.shutdownFunc)
	assert.Equal(t, 1, called)
}

func TestIcon(t *testing.T) {
	data := iconFor("linux")
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, iconSize, img.Bounds().Dy())

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "corners are transparent")
	_, _, _, a = img.At(16, 15).RGBA()
	assert.NotZero(t, a)

	ico := iconFor("windows")
	require.Greater(t, len(ico), 22)
	assert.Equal(t, []byte{0, 0, 1, 0, 1, 0}, ico[:6])
	assert.Equal(t, uint8(iconSize), ico[6])
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(ico[14:18]))
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(ico[18:22]))
	assert.Equal(t, data, ico[22:])
}
