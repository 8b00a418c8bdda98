package labels

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererPNG(t *testing.T) {
	r := NewRenderer("https://pharmatrack.example/", 128)
	assert.Equal(t, "https://pharmatrack.example/medicine/mdc-1", r.VerificationURL("mdc-1"))

	data, err := r.PNG("mdc-1")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestRendererRejectsEmptyID(t *testing.T) {
	_, err := NewRenderer("http://localhost:8080", 0).PNG(" ")
	assert.ErrorIs(t, err, ErrEmptyMedicineID)
}
