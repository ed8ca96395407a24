package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
		input       string
		expect      string
	}{
		{description: "plain config", input: "runtime:\n  port: 3569\n", expect: "runtime:\n  port: 3569\n"},
		{description: "directory user", env: map[string]string{"FBP_USER": "jane"}, input: "directory:\n  user: ${env.FBP_USER}\n", expect: "directory:\n  user: jane\n"},
		{description: "port fallback", input: "port: ${env.FBP_UNSET_PORT:-4000}", expect: "port: 4000"},
		{description: "set value wins over fallback", env: map[string]string{"FBP_PORT": "5000"}, input: "port: ${env.FBP_PORT:-4000}", expect: "port: 5000"},
		{description: "empty value takes fallback", env: map[string]string{"FBP_LABEL": ""}, input: "label: ${env.FBP_LABEL:-fbp}", expect: "label: fbp"},
		{description: "fallback is a URL", input: "url: ${env.FBP_UNSET_URL:-http://api.flowhub.io}", expect: "url: http://api.flowhub.io"},
		{description: "unset without fallback", input: "secretURL: '${env.FBP_UNSET}'", expect: "secretURL: ''"},
		{description: "host and port", env: map[string]string{"FBP_HOST": "ws://10.0.0.1", "FBP_PORT": "80"}, input: "${env.FBP_HOST}:${env.FBP_PORT}", expect: "ws://10.0.0.1:80"},
		{description: "invalid key kept", env: map[string]string{"FBP_USER": "jane"}, input: "${env.a-b} ${env.FBP_USER}", expect: "${env.a-b} jane"},
		{description: "unterminated", input: "user: ${env.FBP_USER", expect: "user: ${env.FBP_USER"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			for k, v := range testCase.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, testCase.expect, expandEnv(testCase.input))
		})
	}
}
