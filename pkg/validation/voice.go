package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrTranscriptionRequired signals that audio was uploaded but the server
// does not transcribe; the client must transcribe locally and resend text.
var ErrTranscriptionRequired = errors.New("client-side transcription required")

const maxTTSTextLength = 5000

var emailAddressRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// VoiceRequestValidator validates voice-assistant requests.
type VoiceRequestValidator struct{}

// NewVoiceRequestValidator creates a new VoiceRequestValidator.
func NewVoiceRequestValidator() *VoiceRequestValidator {
	return &VoiceRequestValidator{}
}

// ValidateVoiceRequest checks that a processable input is present. Audio
// without a transcription is the distinguished transcription-required case.
func (v *VoiceRequestValidator) ValidateVoiceRequest(transcription string, hasAudio bool) error {
	if transcription != "" {
		return nil
	}
	if hasAudio {
		return ErrTranscriptionRequired
	}
	return errors.New("transcription or audio is required")
}

// ValidateTTSRequest validates a synthesis request.
func (v *VoiceRequestValidator) ValidateTTSRequest(text string) error {
	if text == "" {
		return errors.New("text cannot be empty")
	}
	if len(text) > maxTTSTextLength {
		return fmt.Errorf("text must be at most %d characters, got %d", maxTTSTextLength, len(text))
	}
	return nil
}

// ValidateEmailRequest validates an outbound email request.
func (v *VoiceRequestValidator) ValidateEmailRequest(to, subject string) error {
	if to == "" {
		return errors.New("recipient address is required")
	}
	if !emailAddressRe.MatchString(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}
	if subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

// ValidateReminderRequest validates an explicit reminder creation.
func (v *VoiceRequestValidator) ValidateReminderRequest(title, text string) error {
	if title == "" && text == "" {
		return errors.New("title or text is required")
	}
	return nil
}

// ValidatePriority validates a reminder priority value.
func (v *VoiceRequestValidator) ValidatePriority(priority string) error {
	switch priority {
	case "", "low", "medium", "high":
		return nil
	default:
		return fmt.Errorf("priority must be one of: low, medium, high; got %s", priority)
	}
}
