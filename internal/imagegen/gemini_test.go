package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractInlineImage(t *testing.T) {
	parts := []*genai.Part{
		genai.NewPartFromText("here is your image"),
		{InlineData: &genai.Blob{Data: []byte("png-bytes"), MIMEType: "image/png"}},
	}

	img := extractInlineImage(parts)
	require.NotNil(t, img)
	assert.Equal(t, []byte("png-bytes"), img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestExtractInlineImageDefaultsMIMEType(t *testing.T) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{Data: []byte("bytes")}},
	}

	img := extractInlineImage(parts)
	require.NotNil(t, img)
	assert.Equal(t, "image/jpeg", img.MIMEType)
}

func TestExtractInlineImageNoImageParts(t *testing.T) {
	assert.Nil(t, extractInlineImage(nil))
	assert.Nil(t, extractInlineImage([]*genai.Part{genai.NewPartFromText("text only")}))
	assert.Nil(t, extractInlineImage([]*genai.Part{{InlineData: &genai.Blob{}}}))
}

func TestEnvAuthorizer(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-123")

	a := NewEnvAuthorizer()
	assert.True(t, a.HasAuthorization())

	a.Invalidate()
	assert.False(t, a.HasAuthorization())

	// Requesting again with a key present restores the selection.
	assert.True(t, a.RequestAuthorization())
	assert.True(t, a.HasAuthorization())
}

func TestEnvAuthorizerWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	a := NewEnvAuthorizer()
	assert.False(t, a.HasAuthorization())
	assert.False(t, a.RequestAuthorization())
}
