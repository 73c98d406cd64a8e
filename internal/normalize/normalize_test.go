package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StructuredBodies(t *testing.T) {
	t.Run("MessageFieldRoundTrip_SuccessMode", func(t *testing.T) {
		res := Normalize([]byte(`{"message":"X"}`), ModeSuccess)
		assert.True(t, res.Success)
		assert.Equal(t, "X", res.Message)
	})

	t.Run("MessageFieldRoundTrip_ErrorMode", func(t *testing.T) {
		res := Normalize([]byte(`{"message":"X"}`), ModeError)
		assert.False(t, res.Success)
		assert.Equal(t, "X", res.Message)
	})

	t.Run("ErrorFieldUsedWhenNoMessage", func(t *testing.T) {
		res := Normalize([]byte(`{"error":"denied"}`), ModeError)
		assert.False(t, res.Success)
		assert.Equal(t, "denied", res.Message)
	})

	t.Run("MessagePreferredOverError", func(t *testing.T) {
		res := Normalize([]byte(`{"message":"m","error":"e"}`), ModeError)
		assert.Equal(t, "m", res.Message)
	})

	t.Run("ExplicitSuccessFlagOverridesMode", func(t *testing.T) {
		res := Normalize([]byte(`{"success":false,"message":"nope"}`), ModeSuccess)
		assert.False(t, res.Success)
		assert.Equal(t, "nope", res.Message)

		res = Normalize([]byte(`{"success":true,"message":"yes"}`), ModeError)
		assert.True(t, res.Success)
		assert.Equal(t, "yes", res.Message)
	})

	t.Run("ObjectWithoutMessageFallsBack", func(t *testing.T) {
		res := Normalize([]byte(`{"id":42}`), ModeSuccess)
		assert.True(t, res.Success)
		assert.Equal(t, FallbackSuccessMessage, res.Message)
	})
}

func TestNormalize_StringBodies(t *testing.T) {
	t.Run("DoubleEncodedJSONUnwrapped", func(t *testing.T) {
		res := Normalize([]byte(`"{\"message\":\"inner\"}"`), ModeError)
		assert.False(t, res.Success)
		assert.Equal(t, "inner", res.Message)
	})

	t.Run("JSONStringBecomesMessage", func(t *testing.T) {
		res := Normalize([]byte(`"plain note"`), ModeSuccess)
		assert.True(t, res.Success)
		assert.Equal(t, "plain note", res.Message)
	})

	t.Run("NonJSONTextBecomesMessage_ErrorMode", func(t *testing.T) {
		res := Normalize([]byte("backend exploded"), ModeError)
		assert.False(t, res.Success)
		assert.Equal(t, "backend exploded", res.Message)
	})

	t.Run("MalformedJSONNotPatternMatched", func(t *testing.T) {
		// Truncated JSON must come back verbatim, not regex-stripped.
		res := Normalize([]byte(`{"message":"lost`), ModeError)
		assert.False(t, res.Success)
		assert.Equal(t, `{"message":"lost`, res.Message)
	})
}

func TestNormalize_EmptyAndOddBodies(t *testing.T) {
	t.Run("EmptyBodyFallsBack", func(t *testing.T) {
		res := Normalize(nil, ModeSuccess)
		assert.True(t, res.Success)
		assert.Equal(t, FallbackSuccessMessage, res.Message)

		res = Normalize([]byte("  "), ModeError)
		assert.False(t, res.Success)
		assert.Equal(t, FallbackErrorMessage, res.Message)
	})

	t.Run("NullBodyFallsBack", func(t *testing.T) {
		res := Normalize([]byte("null"), ModeSuccess)
		assert.True(t, res.Success)
		assert.Equal(t, FallbackSuccessMessage, res.Message)
	})
}

func TestDecodeDeleteBody(t *testing.T) {
	t.Run("PlainTextSuccess", func(t *testing.T) {
		body := DecodeDeleteBody([]byte("Store deleted successfully"))
		assert.Equal(t, BodyPlainText, body.Kind)

		res := body.Result("fallback")
		assert.True(t, res.Success)
		assert.Equal(t, "Store deleted successfully", res.Message)
	})

	t.Run("EmptyAndAckBodies", func(t *testing.T) {
		for _, raw := range []string{"", "null", "true"} {
			body := DecodeDeleteBody([]byte(raw))
			assert.Equal(t, BodyEmpty, body.Kind, "raw=%q", raw)

			res := body.Result("User deleted successfully")
			assert.True(t, res.Success)
			assert.Equal(t, "User deleted successfully", res.Message)
		}
	})

	t.Run("StructuredBodyWithMessage", func(t *testing.T) {
		body := DecodeDeleteBody([]byte(`{"success":true,"message":"gone"}`))
		assert.Equal(t, BodyStructured, body.Kind)
		assert.Equal(t, "gone", body.Message)
		assert.Equal(t, "gone", body.Result("fallback").Message)
	})

	t.Run("QuotedStringUnwrapped", func(t *testing.T) {
		body := DecodeDeleteBody([]byte(`"Store deleted successfully"`))
		assert.Equal(t, BodyPlainText, body.Kind)
		assert.Equal(t, "Store deleted successfully", body.Text)
	})
}
