package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/crea-eci/azzurra/internal/speech"
)

// maxAudioBytes caps uploaded audio for transcription.
const maxAudioBytes = 10 << 20

// SpeechHandler handles speech synthesis and transcription requests.
type SpeechHandler struct {
	synthesizer speech.Synthesizer
	transcriber speech.Transcriber
}

// NewSpeechHandler creates a speech handler.
func NewSpeechHandler(synthesizer speech.Synthesizer, transcriber speech.Transcriber) *SpeechHandler {
	return &SpeechHandler{synthesizer: synthesizer, transcriber: transcriber}
}

// SynthesizeRequest is the body for POST /v1/tts.
type SynthesizeRequest struct {
	Text string `json:"text"`
}

// TranscribeResponse is the reply for POST /v1/stt.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// Synthesize handles POST /v1/tts and streams raw PCM audio (24kHz,
// 16-bit, mono) back to the client.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		RespondBadRequest(w, "Invalid request body")

		return
	}

	if strings.TrimSpace(req.Text) == "" {
		RespondBadRequest(w, "text is required")

		return
	}

	audio, err := h.synthesizer.Synthesize(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, speech.ErrEmptyText) {
			RespondBadRequest(w, "text is required")

			return
		}

		RespondServiceUnavailable(w, "Speech synthesis is temporarily unavailable")

		return
	}

	w.Header().Set("Content-Type", "audio/pcm")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// Transcribe handles POST /v1/stt. The audio arrives as a multipart
// "audio" part.
func (h *SpeechHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		RespondBadRequest(w, "Invalid multipart body")

		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		RespondBadRequest(w, "audio file part is required")

		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/webm"
	}

	text, err := h.transcriber.Transcribe(r.Context(), io.LimitReader(file, maxAudioBytes), header.Filename, contentType)
	if err != nil {
		RespondServiceUnavailable(w, "Transcription is temporarily unavailable")

		return
	}

	RespondSuccess(w, http.StatusOK, TranscribeResponse{Text: text})
}
