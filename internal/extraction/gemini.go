package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcribePrompt asks the model for a faithful transcription rather than
// an interpretation: the regex core downstream does the actual field
// recovery, so labels and amounts must survive verbatim.
const transcribePrompt = `You are reading an invoice document. Transcribe ALL visible text from the image into plain text, preserving the reading order and starting a new line for each visual line of the document.

Important:
- Copy labels and values exactly as printed (for example "Invoice ID:", "Subtotal", "Total paid", currency symbols and amounts)
- Do not summarize, translate, or reformat numbers
- Do not add any commentary before or after the transcription
- Do not use markdown code blocks`

// Gemini implements the Extractor interface by transcribing rendered
// document images with Google Gemini. It is the path for scanned or
// image-only documents that carry no text layer.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Extractor instance.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Extract transcribes a document and returns its plain text.
func (g *Gemini) Extract(data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pngData, err := renderDocumentPNG(data, contentType)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", pngData),
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var transcript strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			transcript.WriteString(string(text))
		}
	}

	// Remove markdown code fences if the model added them anyway
	text := strings.TrimSpace(transcript.String())
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text), nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
