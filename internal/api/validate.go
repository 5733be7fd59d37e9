package api

import (
	"encoding/json"
	"log/slog"
)

// ValidResponse reports whether raw looks like a well-formed single-item
// envelope: a JSON object with a boolean "success" and a "data" member. It
// never panics and never returns an error; malformations are logged as
// diagnostics and collapse to false.
func ValidResponse(raw []byte, logger *slog.Logger) bool {
	fields, ok := decodeObject(raw, logger)
	if !ok {
		return false
	}
	if !hasBool(fields, "success") {
		logObj(logger, "envelope missing boolean success field", raw)
		return false
	}
	if _, ok := fields["data"]; !ok {
		logObj(logger, "envelope missing data field", raw)
		return false
	}
	return true
}

// ValidListResponse reports whether raw looks like a well-formed list
// envelope: a valid envelope whose data is a JSON array, with pagination (if
// present) being an object.
func ValidListResponse(raw []byte, logger *slog.Logger) bool {
	if !ValidResponse(raw, logger) {
		return false
	}
	fields, _ := decodeObject(raw, logger)

	var items []json.RawMessage
	if err := json.Unmarshal(fields["data"], &items); err != nil {
		logObj(logger, "envelope data is not an array", raw)
		return false
	}

	if p, ok := fields["pagination"]; ok {
		var page map[string]json.RawMessage
		if err := json.Unmarshal(p, &page); err != nil {
			logObj(logger, "envelope pagination is not an object", raw)
			return false
		}
	}
	return true
}

func decodeObject(raw []byte, logger *slog.Logger) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		if logger != nil {
			logger.Warn("response is not a JSON object", "error", err)
		}
		return nil, false
	}
	return fields, true
}

func hasBool(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var b bool
	return json.Unmarshal(raw, &b) == nil
}

func logObj(logger *slog.Logger, msg string, raw []byte) {
	if logger == nil {
		return
	}
	preview := raw
	if len(preview) > 256 {
		preview = preview[:256]
	}
	logger.Warn(msg, "body", string(preview))
}
