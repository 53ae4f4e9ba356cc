package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientFetchUpdates(t *testing.T) {
	since := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transfers/updates", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "2024-05-01T10:00:00Z", r.URL.Query().Get("since"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "Updates retrieved",
			"data": {
				"updates": [{"transferId": 7, "reference": "TRF-abc", "status": "COMPLETED", "amount": "300", "bankName": "Chase", "timestamp": "2024-05-01T11:00:00Z"}],
				"count": 1,
				"timestamp": "2024-05-01T11:00:01Z",
				"hasMore": false
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-token")
	page, err := c.FetchUpdates(context.Background(), &since, 25)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, uint(7), page.Updates[0].TransferID)
	assert.Equal(t, "COMPLETED", page.Updates[0].Status)
	assert.False(t, page.HasMore)
}

func TestClientFetchUpdatesOmitsEmptyQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"success": true, "data": {"updates": [], "count": 0, "hasMore": false}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-token")
	page, err := c.FetchUpdates(context.Background(), nil, 0)

	assert.NoError(t, err)
	assert.Equal(t, 0, page.Count)
}

func TestClientFetchUpdatesErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "unsuccessful envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success": false, "message": "token expired"}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(server.URL, "test-token")
			page, err := c.FetchUpdates(context.Background(), nil, 0)

			assert.Error(t, err)
			assert.Nil(t, page)
		})
	}
}
