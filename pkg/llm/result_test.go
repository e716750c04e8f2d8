package llm

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantKind FailureKind
	}{
		{
			name:     "success takes first content block",
			body:     `{"content":[{"type":"text","text":"08:00 -> 21.5°C"},{"type":"text","text":"ignored"}]}`,
			wantText: "08:00 -> 21.5°C",
		},
		{
			name:     "error message",
			body:     `{"error":{"message":"rate limited"}}`,
			wantText: "rate limited",
			wantKind: KindAPI,
		},
		{
			name:     "error wins over content",
			body:     `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"},"content":[{"text":"forecast"}]}`,
			wantText: "Overloaded",
			wantKind: KindAPI,
		},
		{
			name:     "error without message falls back to type",
			body:     `{"error":{"type":"invalid_request_error"}}`,
			wantText: "invalid_request_error",
			wantKind: KindAPI,
		},
		{
			name:     "null error is ignored",
			body:     `{"error":null,"content":[{"text":"ok"}]}`,
			wantText: "ok",
		},
		{
			name:     "empty text is still a success",
			body:     `{"content":[{"text":""}]}`,
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeResponse([]byte(tt.body))
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestDecodeResponseMalformedIsFailure(t *testing.T) {
	bodies := []string{
		``,
		`not json`,
		`null`,
		`[]`,
		`{}`,
		`{"content":[]}`,
		`{"content":"text"}`,
		`{"content":[{"type":"tool_use"}]}`,
		`{"content":[{"text":42}]}`,
		`{"content":["text"]}`,
		`{"content":[{"text":"cut`,
	}

	for _, body := range bodies {
		got := DecodeResponse([]byte(body))
		assert.Equal(t, true, got.Failed())
		assert.Equal(t, KindFormat, got.Kind)
		assert.Equal(t, true, strings.HasPrefix(got.Text, "malformed inference response"))
	}
}

func TestDecodeChatCompletion(t *testing.T) {
	got := DecodeChatCompletion([]byte(`{"choices":[{"message":{"role":"assistant","content":"forecast"}}]}`))
	assert.Equal(t, false, got.Failed())
	assert.Equal(t, "forecast", got.Text)

	got = DecodeChatCompletion([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	assert.Equal(t, KindAPI, got.Kind)
	assert.Equal(t, "Incorrect API key provided", got.Text)

	got = DecodeChatCompletion([]byte(`{"choices":[{"message":null}]}`))
	assert.Equal(t, KindFormat, got.Kind)
}

func TestStatusFailure(t *testing.T) {
	got := statusFailure(429, `{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`, DecodeResponse)
	assert.Equal(t, KindAPI, got.Kind)
	assert.Equal(t, "rate limited", got.Text)

	got = statusFailure(502, "<html>Bad Gateway</html>", DecodeResponse)
	assert.Equal(t, KindAPI, got.Kind)
	assert.Equal(t, "inference endpoint returned status 502: <html>Bad Gateway</html>", got.Text)

	got = statusFailure(500, "", DecodeResponse)
	assert.Equal(t, "inference endpoint returned status 500", got.Text)
}

func TestFailureDefaultsKind(t *testing.T) {
	got := Failure("", "boom")
	assert.Equal(t, true, got.Failed())
	assert.Equal(t, KindFormat, got.Kind)
	assert.Equal(t, false, Success("").Failed())
}
