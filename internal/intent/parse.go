package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaViolation marks classifier output that is JSON but not shaped
// like the schema.
var ErrSchemaViolation = errors.New("classifier output violates schema")

// Parse decodes classifier output. Absent and sentinel values are not
// errors; a branch of the wrong JSON type is.
func Parse(data []byte) (*Classification, error) {
	data = stripFence(bytes.TrimSpace(data))
	if len(data) == 0 {
		return nil, errors.New("empty classifier output")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode classifier output: %w", err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: top level is null", ErrSchemaViolation)
	}

	c := &Classification{}

	branches := []struct {
		key    string
		fields []string
		set    func(f map[string]string)
	}{
		{keyMusic, []string{"platform", "query"}, func(f map[string]string) {
			c.Music = &Music{Platform: f["platform"], Query: f["query"]}
		}},
		{keyYouTube, []string{"query"}, func(f map[string]string) { c.YouTube = &YouTube{Query: f["query"]} }},
		{keyCall, []string{"number"}, func(f map[string]string) { c.Call = &Call{Number: f["number"]} }},
		{keyWebsite, []string{"url"}, func(f map[string]string) { c.Website = &Website{URL: f["url"]} }},
		{keyMap, []string{"query"}, func(f map[string]string) { c.Map = &Map{Query: f["query"]} }},
		{keyOpenApp, []string{"appName"}, func(f map[string]string) { c.OpenApp = &OpenApp{AppName: f["appName"]} }},
		{keySearch, []string{"query"}, func(f map[string]string) { c.WebSearch = &WebSearch{Query: f["query"]} }},
	}

	for _, b := range branches {
		fields, err := object(top, b.key, b.fields...)
		if err != nil {
			return nil, err
		}
		if fields != nil {
			b.set(fields)
		}
	}

	text, present, err := str(top[keyGeneral], keyGeneral)
	if err != nil {
		return nil, err
	}
	// The sentinel marks the whole branch absent, unlike an empty answer.
	if present && !isSentinel(text) {
		c.General = &General{Text: normalize(text)}
	}

	return c, nil
}

// object reads branch key as an object of string fields. It returns nil
// when the branch is absent.
func object(top map[string]json.RawMessage, key string, names ...string) (map[string]string, error) {
	raw, ok := top[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	// Some models answer an unused branch with "", false or the bare
	// sentinel string instead of null.
	if isFalsy(raw) {
		return nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %s must be an object", ErrSchemaViolation, key)
	}

	out := make(map[string]string, len(names))
	for _, name := range names {
		v, _, err := str(obj[name], key+"."+name)
		if err != nil {
			return nil, err
		}
		out[name] = normalize(v)
	}
	return out, nil
}

// str decodes an optional JSON string.
func str(raw json.RawMessage, path string) (string, bool, error) {
	if raw == nil || isNull(raw) {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, fmt.Errorf("%w: %s must be a string", ErrSchemaViolation, path)
	}
	return s, true, nil
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return ""
	}
	return s
}

func isSentinel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), sentinelNil)
}

// isFalsy reports a scalar that stands for an unpopulated branch.
func isFalsy(raw json.RawMessage) bool {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		return true
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return false
	}
	return strings.TrimSpace(s) == "" || isSentinel(s)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stripFence removes a ```json ... ``` wrapper that local models add.
func stripFence(data []byte) []byte {
	if !bytes.HasPrefix(data, []byte("```")) {
		return data
	}
	data = bytes.TrimPrefix(data, []byte("```"))
	if nl := bytes.IndexByte(data, '\n'); nl >= 0 {
		data = data[nl+1:]
	}
	data = bytes.TrimSuffix(bytes.TrimSpace(data), []byte("```"))
	return bytes.TrimSpace(data)
}
