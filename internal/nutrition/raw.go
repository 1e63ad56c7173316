package nutrition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedResponse reports a recognition response that is not a JSON
// object keyed by food name.
var ErrMalformedResponse = errors.New("nutrition: malformed recognition response")

// RawServing is one serving entry exactly as the recognition service sent it.
// Numeric fields may arrive as JSON numbers or as numeric strings.
type RawServing map[string]any

func (s RawServing) text(key string) string {
	switch v := s[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// RawFoodPayload is the value stored under one food name in the response.
type RawFoodPayload struct {
	Secondary []RawServing
	Primary   RawServing
	Quantity  any
}

// RawEntry pairs a food name with its payload.
type RawEntry struct {
	Name    string
	Payload RawFoodPayload
}

// RawResponse is the decoded response in the order the service listed foods.
type RawResponse []RawEntry

// DecodeResponse reads a recognition response body. Entry order follows the
// order of keys in the JSON object.
func DecodeResponse(r io.Reader) (RawResponse, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object, got %v", ErrMalformedResponse, token)
	}

	response := RawResponse{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		name, _ := keyToken.(string)

		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformedResponse, name, err)
		}
		payload, err := payloadFromValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformedResponse, name, err)
		}
		response = append(response, RawEntry{Name: name, Payload: payload})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return response, nil
}

// DecodeResponseBytes is DecodeResponse for an in-memory body.
func DecodeResponseBytes(body []byte) (RawResponse, error) {
	return DecodeResponse(bytes.NewReader(body))
}

func payloadFromValue(value any) (RawFoodPayload, error) {
	switch v := value.(type) {
	case nil:
		return RawFoodPayload{}, nil
	case map[string]any:
		return RawFoodPayload{
			Secondary: servingsFromValue(v["secondary"]),
			Primary:   servingFromValue(v["primary"]),
			Quantity:  v["quantity"],
		}, nil
	default:
		return RawFoodPayload{}, fmt.Errorf("payload is %T, not an object", value)
	}
}

func servingsFromValue(value any) []RawServing {
	switch v := value.(type) {
	case []any:
		servings := make([]RawServing, 0, len(v))
		for _, entry := range v {
			if serving := servingFromValue(entry); serving != nil {
				servings = append(servings, serving)
			}
		}
		return servings
	case map[string]any:
		return []RawServing{RawServing(v)}
	default:
		return nil
	}
}

func servingFromValue(value any) RawServing {
	if v, ok := value.(map[string]any); ok {
		return RawServing(v)
	}
	return nil
}

func parseNumeric(value any) float64 {
	parsed, _ := parseOptionalNumeric(value)
	return parsed
}

func parseOptionalNumeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		return parseNumericString(v)
	default:
		return 0, false
	}
}

// parseNumericString accepts a plain number, or a number followed by a unit
// such as "1.3 g". Text before the number rejects the whole value.
func parseNumericString(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	}
	match := unitNumberPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

var unitNumberPattern = regexp.MustCompile(`^([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*[\pL%]`)
