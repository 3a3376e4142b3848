package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Turn is one prior exchange in a conversation. Assistant turns may carry
// the result they produced; chit-chat turns carry none.
type Turn struct {
	Role    string       `json:"role,omitempty"`
	Content string       `json:"content,omitempty"`
	Result  *QueryResult `json:"result,omitempty"`
}

// UnmarshalJSON accepts the engine's own shape as well as externally
// serialised variants: camelCase keys, a payload nested under
// "structuredData" or "result", or a bare result object.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode turn: %w", err)
	}
	raw = normalizeKeys(raw).(map[string]any)

	*t = Turn{
		Role:    firstString(raw, "role", "speaker", "sender"),
		Content: firstString(raw, "content", "text", "message"),
	}

	payload := raw
	for _, key := range []string{"structured_data", "result", "query_result"} {
		if nested, ok := raw[key].(map[string]any); ok {
			payload = nested
			break
		}
	}
	_, hasItems := payload["items"]
	_, hasMeta := payload["metadata"]
	if !hasItems && !hasMeta {
		return nil
	}
	if _, ok := payload["response_text"]; !ok {
		if s, ok := payload["response"].(string); ok {
			payload["response_text"] = s
		}
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("re-encode turn payload: %w", err)
	}
	var res QueryResult
	if err := json.Unmarshal(buf, &res); err != nil {
		return fmt.Errorf("decode turn payload: %w", err)
	}
	if res.ItemType == "" {
		res.ItemType = res.Metadata.ItemType
	}
	t.Result = &res
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s
		}
	}
	return ""
}

// normalizeKeys rewrites every object key to snake_case, recursively.
func normalizeKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[snakeCase(k)] = normalizeKeys(inner)
		}
		return out
	case []any:
		for i := range val {
			val[i] = normalizeKeys(val[i])
		}
		return val
	default:
		return v
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '_' && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
