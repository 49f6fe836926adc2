package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestValidateMimeType(t *testing.T) {
	mimeType, err := ValidateMimeType(bytes.NewReader(pngHeader), AllowedPhotoTypes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, ".png", ExtensionFor(mimeType))

	_, err = ValidateMimeType(bytes.NewReader([]byte("hola mundo")), AllowedPhotoTypes)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".pdf", ExtensionFor(MimePDF))
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, "", ExtensionFor(MimeOctetStream))
}
