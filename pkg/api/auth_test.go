package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_MessageForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single string",
			body: `{"statusCode":401,"message":"Credenciales inválidas","error":"Unauthorized"}`,
			want: "Credenciales inválidas",
		},
		{
			name: "list of validation errors",
			body: `{"statusCode":400,"message":["email must be an email","password is too weak"],"error":"Bad Request"}`,
			want: "email must be an email. password is too weak",
		},
		{
			name: "no message",
			body: `{"statusCode":500,"error":"Internal Server Error"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))
			assert.Equal(t, tt.want, resp.Message.String())
		})
	}
}

func TestMessages_InvalidType(t *testing.T) {
	var m Messages
	err := json.Unmarshal([]byte(`42`), &m)
	assert.Error(t, err)
}
