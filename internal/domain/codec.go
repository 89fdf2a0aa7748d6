package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Export serializes the bucket mapping as human-readable JSON with
// numerically sorted keys and two-space indentation. The output is
// deterministic: exporting the same mapping twice yields identical text.
func (b Buckets) Export() string {
	var sb strings.Builder
	sb.WriteString("{\n")

	keys := b.Keys()
	for i, k := range keys {
		labels, err := json.Marshal(b[k])
		if err != nil {
			// A []string cannot fail to marshal.
			labels = []byte("[]")
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", strconv.Itoa(k), labels))
		if i < len(keys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

// ParseImport parses and validates import text. It returns a
// *FormatError when the text is not a JSON object, and a *SchemaError
// when the object lacks any of the required bucket keys, maps a key to
// something other than a sequence of strings, has a key that is not a
// positive integer, or has an empty sequence. Activity contents are not
// validated further.
//
// The returned mapping is fully detached from the input; the caller is
// expected to confirm with the user before replacing live state with it.
func ParseImport(text string) (Buckets, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &FormatError{Err: err}
	}

	parsed := make(Buckets, len(raw))
	for key, value := range raw {
		minutes, err := strconv.Atoi(key)
		if err != nil || minutes < MinDuration {
			return nil, &SchemaError{Reason: fmt.Sprintf("key %q is not a positive integer duration", key)}
		}

		var labels []string
		if err := json.Unmarshal(value, &labels); err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("key %q does not map to a sequence of strings", key)}
		}
		if len(labels) == 0 {
			return nil, &SchemaError{Reason: fmt.Sprintf("key %q maps to an empty sequence", key)}
		}
		parsed[minutes] = labels
	}

	for _, required := range RequiredKeys() {
		if _, ok := parsed[required]; !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("missing required key %q", strconv.Itoa(required))}
		}
	}

	return parsed, nil
}

// ParseStored parses the persisted serialization. Unlike ParseImport it
// does not demand the default keys: a user may have deleted any of them
// interactively and that state is still valid. It only requires a
// well-formed mapping that satisfies the store invariants (at least one
// bucket, every bucket non-empty).
func ParseStored(text string) (Buckets, error) {
	var raw map[string][]string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &FormatError{Err: err}
	}
	if len(raw) == 0 {
		return nil, &SchemaError{Reason: "no buckets"}
	}

	parsed := make(Buckets, len(raw))
	for key, labels := range raw {
		minutes, err := strconv.Atoi(key)
		if err != nil || minutes < MinDuration {
			return nil, &SchemaError{Reason: fmt.Sprintf("key %q is not a positive integer duration", key)}
		}
		if len(labels) == 0 {
			return nil, &SchemaError{Reason: fmt.Sprintf("key %q maps to an empty sequence", key)}
		}
		parsed[minutes] = labels
	}
	return parsed, nil
}
