package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAIResponse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    *aiResponse
	}{
		{
			name:  "Valid JSON response",
			input: `{"description": "An eight channel voltage monitor", "keywords": ["electronics", "sensor"]}`,
			expected: &aiResponse{
				Description: "An eight channel voltage monitor",
				Keywords:    []string{"electronics", "sensor"},
			},
		},
		{
			name: "JSON with extra text",
			input: "```json\n" + `{
				"description": "A tiny kart racing game",
				"keywords": ["game", "arcade", "racing"]
			}` + "\n```",
			expected: &aiResponse{
				Description: "A tiny kart racing game",
				Keywords:    []string{"game", "arcade", "racing"},
			},
		},
		{
			name:        "Invalid JSON",
			input:       `{"description": broken}`,
			expectError: true,
		},
		{
			name:        "No JSON content",
			input:       `Just some text without JSON`,
			expectError: true,
		},
		{
			name:        "Empty input",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseAIResponse(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected.Description, result.Description)
				assert.Equal(t, tt.expected.Keywords, result.Keywords)
			}
		})
	}
}
