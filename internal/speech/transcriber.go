package speech

import (
	"context"
	"errors"
	"io"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrEmptyAudio is returned when transcription is requested with no audio.
var ErrEmptyAudio = errors.New("speech: audio is empty")

// Transcriber converts user audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, contentType string) (string, error)
}

// OpenAITranscriber calls the OpenAI transcription API with a fixed
// Italian language hint.
type OpenAITranscriber struct {
	sdk      openaisdk.Client
	language string
}

var _ Transcriber = (*OpenAITranscriber)(nil)

// NewOpenAITranscriber creates a transcriber using whisper-1.
func NewOpenAITranscriber(apiKey string) *OpenAITranscriber {
	return &OpenAITranscriber{
		sdk:      openaisdk.NewClient(option.WithAPIKey(apiKey)),
		language: "it",
	}
}

// Transcribe returns the transcript text for the given audio stream.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audio io.Reader, filename, contentType string) (string, error) {
	if audio == nil {
		return "", ErrEmptyAudio
	}

	resp, err := t.sdk.Audio.Transcriptions.New(ctx, openaisdk.AudioTranscriptionNewParams{
		File:     openaisdk.File(audio, filename, contentType),
		Model:    openaisdk.AudioModelWhisper1,
		Language: openaisdk.String(t.language),
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
