package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() Context {
	date := "2026-06-01"
	return Context{
		Wedding: WeddingContext{
			ID:        1,
			Name:      "Alex & Jordan Wedding",
			Date:      &date,
			VenueName: "Rose Garden Estate",
		},
		Guests:           []GuestContext{},
		Tasks:            []TaskContext{},
		GuestbookEntries: []GuestbookEntryContext{},
	}
}

func TestAsk(t *testing.T) {
	t.Run("returns the answer on success", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/ask", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"answer":"You have 0 guests."}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		answer, err := client.Ask(context.Background(), "How many guests?", testContext())
		require.NoError(t, err)
		assert.Equal(t, "You have 0 guests.", answer)

		assert.Equal(t, "How many guests?", gotBody["question"])
		wedding, ok := gotBody["wedding"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Alex & Jordan Wedding", wedding["name"])
		assert.Contains(t, gotBody, "guests")
		assert.Contains(t, gotBody, "tasks")
		assert.Contains(t, gotBody, "guestbook_entries")
	})

	t.Run("fails when the answer is empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"answer":"   "}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Ask(context.Background(), "Hi", testContext())
		require.Error(t, err)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "AI service returned an empty answer.", reqErr.Error())
	})

	t.Run("fails when the response is not valid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Ask(context.Background(), "Hi", testContext())
		require.Error(t, err)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, reqErr.Error(), "not valid JSON")
	})

	t.Run("fails on non-2xx status with the code in the message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("Bad Gateway"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.Ask(context.Background(), "Hi", testContext())
		require.Error(t, err)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, reqErr.Error(), "502")
		assert.Contains(t, reqErr.Error(), "Bad Gateway")
	})

	t.Run("fails when the service is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		client := NewClient(srv.URL, time.Second)
		_, err := client.Ask(context.Background(), "Hi", testContext())
		require.Error(t, err)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
	})
}
