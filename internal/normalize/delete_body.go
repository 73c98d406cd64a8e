package normalize

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/trackventory/gateway/internal/models"
)

// BodyKind tags the shape of a delete response body. Delete endpoints are
// the one place the backend answers with an object, a bare string, or
// nothing, depending on version.
type BodyKind int

const (
	// BodyEmpty covers missing bodies and JSON null/true acknowledgements.
	BodyEmpty BodyKind = iota
	// BodyStructured is a JSON object.
	BodyStructured
	// BodyPlainText is anything else, e.g. "Store deleted successfully".
	BodyPlainText
)

// DeleteBody is the decoded variant of a delete response body. Success is
// decided by the HTTP status code alone, never by whether the body parsed.
type DeleteBody struct {
	Kind BodyKind
	// Text holds the raw body for BodyPlainText.
	Text string
	// Message holds the message field for BodyStructured, if any.
	Message string
}

// DecodeDeleteBody classifies a delete response body.
func DecodeDeleteBody(raw []byte) DeleteBody {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" || text == "true" {
		return DeleteBody{Kind: BodyEmpty}
	}

	// A JSON-encoded string is plain text once unwrapped.
	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err == nil {
		if strings.TrimSpace(inner) == "" {
			return DeleteBody{Kind: BodyEmpty}
		}
		return DeleteBody{Kind: BodyPlainText, Text: inner}
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err == nil {
		body := DeleteBody{Kind: BodyStructured}
		switch {
		case env.Message != nil:
			body.Message = *env.Message
		case env.Error != nil:
			body.Message = *env.Error
		}
		return body
	}

	return DeleteBody{Kind: BodyPlainText, Text: text}
}

// Result folds the body into a normalized result for a 2xx delete response.
// The fallback message is used when the body carries nothing readable.
func (b DeleteBody) Result(fallback string) models.Result {
	switch b.Kind {
	case BodyPlainText:
		return models.Ok(b.Text)
	case BodyStructured:
		if b.Message != "" {
			return models.Ok(b.Message)
		}
	}
	return models.Ok(fallback)
}
