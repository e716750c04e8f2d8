package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

type FailureKind string

const (
	// KindTransport: the endpoint could not be reached or timed out.
	KindTransport FailureKind = "transport"
	// KindAPI: the endpoint answered with a structured error.
	KindAPI FailureKind = "api"
	// KindFormat: the endpoint answered with something we could not interpret.
	KindFormat FailureKind = "format"
)

// Result is either a success carrying the generated text or a failure
// carrying a displayable message. Kind is empty for successes.
type Result struct {
	Text string
	Kind FailureKind
}

func Success(text string) Result {
	return Result{Text: text}
}

func Failure(kind FailureKind, message string) Result {
	if kind == "" {
		kind = KindFormat
	}
	return Result{Text: message, Kind: kind}
}

func (r Result) Failed() bool {
	return r.Kind != ""
}

// DecodeResponse classifies a messages-endpoint body. An error.message wins
// over any other content; otherwise content[0].text is the success text.
func DecodeResponse(body []byte) Result {
	return decodeWith(body, "content[0].text", func(payload map[string]any) (string, bool) {
		return firstText(payload["content"], func(block map[string]any) any {
			return block["text"]
		})
	})
}

// DecodeChatCompletion classifies a chat-completions body; the success text is
// choices[0].message.content.
func DecodeChatCompletion(body []byte) Result {
	return decodeWith(body, "choices[0].message.content", func(payload map[string]any) (string, bool) {
		return firstText(payload["choices"], func(choice map[string]any) any {
			msg, ok := choice["message"].(map[string]any)
			if !ok {
				return nil
			}
			return msg["content"]
		})
	})
}

func decodeWith(body []byte, field string, extract func(map[string]any) (string, bool)) Result {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return Failure(KindFormat, fmt.Sprintf("malformed inference response: %v", err))
	}
	if payload == nil {
		return Failure(KindFormat, "malformed inference response: not a JSON object")
	}

	if raw, ok := payload["error"]; ok && raw != nil {
		return errorFailure(raw)
	}

	text, ok := extract(payload)
	if !ok {
		return Failure(KindFormat, fmt.Sprintf("malformed inference response: missing %s", field))
	}
	return Success(text)
}

func errorFailure(raw any) Result {
	switch e := raw.(type) {
	case map[string]any:
		if msg, ok := e["message"].(string); ok {
			return Failure(KindAPI, msg)
		}
		if typ, ok := e["type"].(string); ok {
			return Failure(KindAPI, typ)
		}
	case string:
		return Failure(KindAPI, e)
	}
	return Failure(KindAPI, "inference endpoint returned an error without a message")
}

func firstText(list any, pick func(map[string]any) any) (string, bool) {
	items, ok := list.([]any)
	if !ok || len(items) == 0 {
		return "", false
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := pick(first).(string)
	return text, ok
}

// statusFailure turns a non-2xx response into a failure, preferring the
// message the endpoint put in its error body.
func statusFailure(status int, body string, decode func([]byte) Result) Result {
	if r := decode([]byte(body)); r.Kind == KindAPI {
		return r
	}
	detail := strings.TrimSpace(body)
	if detail == "" {
		return Failure(KindAPI, fmt.Sprintf("inference endpoint returned status %d", status))
	}
	return Failure(KindAPI, fmt.Sprintf("inference endpoint returned status %d: %s", status, truncate(detail, 400)))
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}
