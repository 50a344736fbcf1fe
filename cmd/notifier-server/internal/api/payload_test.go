package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		want        string
	}{
		{
			name:        "json with message field",
			body:        `{"message":"disk full"}`,
			contentType: "application/json",
			want:        "disk full",
		},
		{
			name:        "json with charset parameter",
			body:        `{"message":"disk full"}`,
			contentType: "application/json; charset=utf-8",
			want:        "disk full",
		},
		{
			name:        "json object without message field renders whole payload",
			body:        `{"level":"critical"}`,
			contentType: "application/json",
			want:        `{"level":"critical"}`,
		},
		{
			name:        "json with numeric message field renders the field",
			body:        `{"message":42}`,
			contentType: "application/json",
			want:        `42`,
		},
		{
			name:        "json with array message field renders the field",
			body:        `{"message":["a","b"],"level":"info"}`,
			contentType: "application/json",
			want:        `["a","b"]`,
		},
		{
			name:        "json with empty message field means no message",
			body:        `{"message":"","level":"critical"}`,
			contentType: "application/json",
			want:        "",
		},
		{
			name:        "json with null message field means no message",
			body:        `{"message":null}`,
			contentType: "application/json",
			want:        "",
		},
		{
			name:        "json with zero message field means no message",
			body:        `{"message":0}`,
			contentType: "application/json",
			want:        "",
		},
		{
			name:        "json with false message field means no message",
			body:        `{"message":false}`,
			contentType: "application/json",
			want:        "",
		},
		{
			name:        "json with empty object message field means no message",
			body:        `{"message":{}}`,
			contentType: "application/json",
			want:        "",
		},
		{
			name:        "invalid json with json content type falls back to text",
			body:        `{"broken`,
			contentType: "application/json",
			want:        `{"broken`,
		},
		{
			name:        "plain text verbatim",
			body:        "service restarted",
			contentType: "text/plain",
			want:        "service restarted",
		},
		{
			name:        "no content type treated as text",
			body:        "hello",
			contentType: "",
			want:        "hello",
		},
		{
			name:        "json-looking body without json content type stays text",
			body:        `{"message":"x"}`,
			contentType: "text/plain",
			want:        `{"message":"x"}`,
		},
		{
			name:        "whitespace trimmed",
			body:        "  padded  \n",
			contentType: "text/plain",
			want:        "padded",
		},
		{
			name:        "empty body",
			body:        "",
			contentType: "application/json",
			want:        "",
		},
		{
			name:        "whitespace only",
			body:        "   ",
			contentType: "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body), tt.contentType))
		})
	}
}
