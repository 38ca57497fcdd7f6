package imagegen

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const geminiImageModel = "gemini-2.5-flash-image"

// Image is the result of a generation call.
type Image struct {
	Data     []byte
	MIMEType string
}

// Generator produces an image for a text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// GeminiGenerator implements Generator against Google's Gemini image API.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Gemini-backed generator. It uses the
// GEMINI_API_KEY environment variable for authentication.
func NewGeminiGenerator(ctx context.Context) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

// Generate requests a single image for the prompt and returns its raw bytes
// and MIME type. A response without inline image data counts as a failure.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*Image, error) {
	if prompt == "" {
		return nil, fmt.Errorf("empty prompt")
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}

	result, err := g.client.Models.GenerateContent(ctx, geminiImageModel, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from Gemini")
	}

	img := extractInlineImage(result.Candidates[0].Content.Parts)
	if img == nil {
		return nil, fmt.Errorf("no image was generated")
	}

	if result.UsageMetadata != nil {
		log.Info().
			Str("model", geminiImageModel).
			Int32("inputTokens", result.UsageMetadata.PromptTokenCount).
			Int32("totalTokens", result.UsageMetadata.TotalTokenCount).
			Msg("image generation call")
	}

	return img, nil
}

func extractInlineImage(parts []*genai.Part) *Image {
	for _, part := range parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		return &Image{Data: part.InlineData.Data, MIMEType: mimeType}
	}
	return nil
}
