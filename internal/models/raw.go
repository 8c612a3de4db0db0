package models

// Helpers for normalizing raw directory payloads. Backends return records as
// loosely typed maps whose field spellings differ between API versions; the
// FromRaw constructors are the single place those differences are absorbed.

func rawString(raw map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if s, ok := value.(string); ok {
			return s, true
		}
	}
	return "", false
}

func rawStringSlice(raw map[string]any, key string) []string {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
