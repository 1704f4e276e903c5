// Package utils holds the lenient-input helpers shared by the API adapters
// and the CLI: tolerant JSON parsing for remote payloads and hand-written
// property files, and markdown cleanup for report output.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the common defects of near-JSON payloads: single quotes,
// unquoted keys, trailing commas, unclosed brackets, comments, and markdown
// code fences around the body.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %v", err)
	}
	return repaired, nil
}

// ParseHJSON converts Human JSON (comments, unquoted keys and strings,
// optional commas) into standard JSON. Hand-written assumption files use this
// form.
func ParseHJSON(data string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(data), &result); err != nil {
		return "", fmt.Errorf("hjson parse error: %v", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("json marshal error: %v", err)
	}
	return string(out), nil
}

// ParseHJSONToStruct decodes Hjson straight into a known schema.
func ParseHJSONToStruct(data string, schema interface{}) error {
	if err := hjson.Unmarshal([]byte(data), schema); err != nil {
		return fmt.Errorf("hjson unmarshal error: %v", err)
	}
	return nil
}

// SmartParse decodes input into schema, escalating through three strategies:
// strict JSON, repaired JSON, then Hjson. It returns the canonical JSON that
// finally decoded, so callers can log or persist what was actually accepted.
func SmartParse(input string, schema interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	if converted, err := ParseHJSON(input); err == nil {
		if err := json.Unmarshal([]byte(converted), schema); err == nil {
			return converted, nil
		}
	}

	return "", fmt.Errorf("smart parse failed: input is not JSON, repairable JSON, or hjson")
}
