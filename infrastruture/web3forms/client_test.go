package web3forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *dmn.ContactMessage {
	return &dmn.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Phone:   "555-123-4567",
		Subject: "Hi",
		Message: "Hello there",
	}
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrMissingAccessKey)

	c, err := New(Options{AccessKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.endpoint)
	assert.Equal(t, DefaultFromName, c.fromName)
}

func TestForward(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	defer srv.Close()

	c, err := New(Options{Endpoint: srv.URL, AccessKey: "key-123"})
	require.NoError(t, err)
	require.NoError(t, c.Forward(context.Background(), testMessage()))

	assert.Equal(t, "key-123", got["access_key"])
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, "ada@example.com", got["replyto"])
	assert.Equal(t, false, got["botcheck"])
	assert.Equal(t, DefaultFromName, got["from_name"])
	assert.Equal(t, "555-123-4567", got["phone"])
}

func TestForward_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success false", http.StatusOK, `{"success":false,"message":"Invalid access key"}`},
		{"server error", http.StatusInternalServerError, `{"success":false}`},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(Options{Endpoint: srv.URL, AccessKey: "key"})
			require.NoError(t, err)
			assert.ErrorIs(t, c.Forward(context.Background(), testMessage()), ErrRejected)
		})
	}
}

func TestForward_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(Options{
		Endpoint:   srv.URL,
		AccessKey:  "key",
		HTTPClient: &http.Client{Timeout: 20 * time.Millisecond},
	})
	require.NoError(t, err)

	err = c.Forward(context.Background(), testMessage())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
}
