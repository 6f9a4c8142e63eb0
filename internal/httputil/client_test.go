// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-summarizer/pkg/types"
)

func TestNewClient_UserAgent(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.HTTPConfig
		header string
		want   string
	}{
		{name: "default", want: DefaultUserAgent},
		{name: "configured", cfg: types.HTTPConfig{UserAgent: "summarizer/1.2"}, want: "summarizer/1.2"},
		{name: "request header wins", header: "custom/0.1", want: "custom/0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, r.Header.Get("User-Agent"))
			}))
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("User-Agent", tt.header)
			}

			resp, err := NewClient(tt.cfg).Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			got, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNewClient_Timeout(t *testing.T) {
	assert.Zero(t, NewClient(types.HTTPConfig{}).Timeout)
	assert.Equal(t, 3*time.Second, NewClient(types.HTTPConfig{Timeout: 3 * time.Second}).Timeout)
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "ok", status: http.StatusOK},
		{name: "created", status: http.StatusCreated},
		{name: "not found with body", status: http.StatusNotFound, body: `{"error":"model 'x' not found"}`, wantErr: `HTTP 404: {"error":"model 'x' not found"}`},
		{name: "empty body", status: http.StatusBadGateway, wantErr: "HTTP 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(tt.status)
			rec.WriteString(tt.body)

			err := CheckStatus(rec.Result())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCheckStatus_TruncatesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusInternalServerError)
	rec.WriteString(strings.Repeat("x", 4*maxErrorBody))

	err := CheckStatus(rec.Result())
	require.Error(t, err)
	assert.Len(t, err.Error(), len("HTTP 500: ")+maxErrorBody)
}
