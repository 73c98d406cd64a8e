// Package normalize turns heterogeneous backend response bodies into the
// uniform {success, message} shape the rest of the gateway consumes. The
// backend variously answers with a JSON object, a JSON-encoded string, plain
// text, or nothing at all; everything in here is total over arbitrary bytes.
package normalize

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/trackventory/gateway/internal/models"
)

// Mode selects the fallback polarity when the body carries no explicit
// success flag.
type Mode int

const (
	// ModeSuccess is used for 2xx responses.
	ModeSuccess Mode = iota
	// ModeError is used for non-2xx responses and transport failures.
	ModeError
)

const (
	// FallbackSuccessMessage is used when a success body has no message.
	FallbackSuccessMessage = "Operation completed"
	// FallbackErrorMessage is used when an error body has no message.
	FallbackErrorMessage = "An error occurred"
)

// envelope is the loose shape backend bodies tend to have. Pointers
// distinguish "absent" from zero values.
type envelope struct {
	Success *bool   `json:"success"`
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

// Normalize converts a raw response body into a Result. The body may be a
// JSON object, a JSON string that itself wraps JSON, a bare string, or
// empty. It never fails; unparseable input becomes the message verbatim.
func Normalize(raw []byte, mode Mode) models.Result {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return fallback(mode)
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err == nil {
		return fromEnvelope(env, mode)
	}

	// Some endpoints double-encode: the body is a JSON string whose content
	// is itself JSON (or a plain message).
	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err == nil {
		return Normalize([]byte(inner), mode)
	}

	// Valid JSON of a non-object kind (number, bool, array) or malformed
	// text: the whole body is the message. No partial extraction from
	// malformed JSON.
	return models.Result{Success: mode == ModeSuccess, Message: text}
}

func fromEnvelope(env envelope, mode Mode) models.Result {
	res := fallback(mode)
	if env.Success != nil {
		res.Success = *env.Success
	}
	switch {
	case env.Message != nil && *env.Message != "":
		res.Message = *env.Message
	case env.Error != nil && *env.Error != "":
		res.Message = *env.Error
	}
	return res
}

func fallback(mode Mode) models.Result {
	if mode == ModeSuccess {
		return models.Ok(FallbackSuccessMessage)
	}
	return models.Failure(FallbackErrorMessage)
}
