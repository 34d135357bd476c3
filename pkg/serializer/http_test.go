package serializer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   any
		want   string
	}{
		{
			name:   "result",
			status: http.StatusOK,
			data:   sampleResult(),
			want:   `{"runner":"DataflowRunner","accepted":false,"violations":[{"option":"num_workers","message":"Invalid value (0) for option: num_workers."}]}`,
		},
		{
			name:   "accepted with no violations",
			status: http.StatusOK,
			data:   result{Runner: "DirectRunner", Accepted: true},
			want:   `{"runner":"DirectRunner","accepted":true,"violations":null}`,
		},
		{
			name:   "error status",
			status: http.StatusBadRequest,
			data:   map[string]string{"code": "INVALID_REQUEST"},
			want:   `{"code":"INVALID_REQUEST"}`,
		},
		{
			name:   "nil",
			status: http.StatusOK,
			data:   nil,
			want:   `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondJSON(w, tt.status, tt.data)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"matcher": func() {}})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")

	var v any
	assert.Error(t, json.Unmarshal(w.Body.Bytes(), &v))
}
