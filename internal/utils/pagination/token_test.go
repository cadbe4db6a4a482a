package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		Date:      time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "0f8e2a55-7c1d-4d0e-9a5b-1f7c3e2d9b10",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)

	// Zero times survive the round trip
	zero := Cursor{ID: "x"}
	decoded, err = DecodeToken(EncodeToken(zero))
	require.NoError(t, err)
	assert.True(t, decoded.Date.IsZero())
	assert.True(t, decoded.CreatedAt.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	encode := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{name: "not base64", token: "this is not base64!", wantMsg: "base64 decode"},
		{name: "missing separator", token: encode("2023-05-15T00:00:00Z"), wantMsg: "split"},
		{name: "bad date", token: encode("notadate|2023-05-15T14:30:45Z|id"), wantMsg: "date parse"},
		{name: "bad created_at", token: encode("2023-05-15T00:00:00Z|nope|id"), wantMsg: "created_at parse"},
		{name: "empty id", token: encode("2023-05-15T00:00:00Z|2023-05-15T00:00:00Z|"), wantMsg: "missing id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
