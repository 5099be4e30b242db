package routegen

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractReplyText pulls the model's text out of a provider response body.
// Chat completions, legacy completions and the Responses API put it in
// different places; a body that is already the route object is returned as is.
func ExtractReplyText(body []byte) string {
	if !gjson.ValidBytes(body) {
		return string(body)
	}
	root := gjson.ParseBytes(body)

	if c := root.Get("choices.0.message.content"); c.Exists() {
		if c.IsArray() {
			return joinTexts(c.Get("#.text"))
		}
		if c.IsObject() {
			return c.Raw
		}
		if c.Type == gjson.String {
			return c.String()
		}
	}
	if t := root.Get("choices.0.text"); t.Type == gjson.String {
		return t.String()
	}
	if t := root.Get("output_text"); t.Type == gjson.String && t.String() != "" {
		return t.String()
	}
	if out := root.Get("output.#.content.#.text"); out.IsArray() {
		var b strings.Builder
		for _, item := range out.Array() {
			b.WriteString(joinTexts(item))
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	if root.IsObject() && root.Get("places").Exists() {
		return root.Raw
	}
	return ""
}

func joinTexts(r gjson.Result) string {
	if !r.IsArray() {
		return r.String()
	}
	var b strings.Builder
	for _, part := range r.Array() {
		b.WriteString(part.String())
	}
	return b.String()
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseProviderReply returns the JSON object the model produced. Anything that
// is not a single JSON object is a MalformedResponse carrying the raw text.
func ParseProviderReply(body []byte) (map[string]any, error) {
	const op = "parse_reply"
	text := stripCodeFence(ExtractReplyText(body))
	if text == "" {
		e := newError(KindMalformedResponse, op, nil, "no text in provider reply")
		e.Raw = string(body)
		return nil, e
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	// ids above 2^53 would lose precision as float64
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		e := newError(KindMalformedResponse, op, err, "reply is not a JSON object")
		e.Raw = text
		return nil, e
	}
	if dec.More() {
		e := newError(KindMalformedResponse, op, nil, "trailing data after JSON object")
		e.Raw = text
		return nil, e
	}
	if obj == nil {
		e := newError(KindMalformedResponse, op, nil, "reply is null")
		e.Raw = text
		return nil, e
	}
	return obj, nil
}
