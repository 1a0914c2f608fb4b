package speech

import (
	"context"
	"errors"
	"io"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrEmptyText is returned when synthesis is requested for blank text.
var ErrEmptyText = errors.New("speech: text is empty")

// maxSpeechRunes caps the synthesized text. Replies are short by prompt
// design; anything longer is a caller bug.
const maxSpeechRunes = 4000

// Synthesizer converts reply text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// OpenAISynthesizer calls the OpenAI speech API. Output is raw PCM
// (24kHz, 16-bit, mono) ready for the avatar audio pipeline.
type OpenAISynthesizer struct {
	sdk   openaisdk.Client
	voice openaisdk.AudioSpeechNewParamsVoice
}

var _ Synthesizer = (*OpenAISynthesizer)(nil)

// SynthesizerOption configures the OpenAISynthesizer.
type SynthesizerOption func(*OpenAISynthesizer)

// WithVoice overrides the default voice.
func WithVoice(voice openaisdk.AudioSpeechNewParamsVoice) SynthesizerOption {
	return func(s *OpenAISynthesizer) {
		s.voice = voice
	}
}

// NewOpenAISynthesizer creates a synthesizer using tts-1 with the nova
// voice.
func NewOpenAISynthesizer(apiKey string, opts ...SynthesizerOption) *OpenAISynthesizer {
	s := &OpenAISynthesizer{
		sdk:   openaisdk.NewClient(option.WithAPIKey(apiKey)),
		voice: openaisdk.AudioSpeechNewParamsVoice("nova"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize returns PCM audio bytes for text.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	if runes := []rune(text); len(runes) > maxSpeechRunes {
		text = string(runes[:maxSpeechRunes])
	}

	resp, err := s.sdk.Audio.Speech.New(ctx, openaisdk.AudioSpeechNewParams{
		Model:          openaisdk.SpeechModelTTS1,
		Voice:          s.voice,
		Input:          text,
		ResponseFormat: openaisdk.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
