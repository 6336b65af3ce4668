package service

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`, true},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"commentary", `Here is the result: {"a": {"b": 2}} hope that helps`, `{"a": {"b": 2}}`, true},
		{"braces in strings", `{"text": "use {braces} freely"}`, `{"text": "use {braces} freely"}`, true},
		{"escaped quote", `{"text": "she said \"hi\""}`, `{"text": "she said \"hi\""}`, true},
		{"unterminated", `{"a": 1`, "", false},
		{"none", "no json here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	got, ok := extractJSONArray("Sure!\n```json\n[{\"q\": \"x\"}, {\"q\": \"y\"}]\n```")
	if !ok || got != `[{"q": "x"}, {"q": "y"}]` {
		t.Errorf("extractJSONArray = %q, %v", got, ok)
	}

	if _, ok := extractJSONArray(`{"not": "an array value here"}`); ok {
		t.Error("object braces must not satisfy an array extraction")
	}
}
