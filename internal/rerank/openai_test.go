package rerank

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

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestOpenAIClientRank(t *testing.T) {
	items := []Summary{
		{Index: 0, Description: "Dipirona 500mg"},
		{Index: 1, Description: "Novalgina 500mg"},
	}

	t.Run("parses the returned order", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req.Model)
			require.Len(t, req.Messages, 2)

			_, _ = w.Write([]byte(chatReply("[1, 0]")))
		}))
		defer srv.Close()

		c := NewOpenAIClient("sk-test", "gpt-4o-mini", 5*time.Second)
		c.BaseURL = srv.URL

		got, err := c.Rank(context.Background(), "dipirona", items)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0}, got)
		assert.Equal(t, "Bearer sk-test", gotAuth)
	})

	t.Run("tolerates code fences", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(chatReply("```json\n[0, 1]\n```")))
		}))
		defer srv.Close()

		c := NewOpenAIClient("sk-test", "gpt-4o-mini", 5*time.Second)
		c.BaseURL = srv.URL

		got, err := c.Rank(context.Background(), "dipirona", items)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, got)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewOpenAIClient("sk-test", "gpt-4o-mini", 5*time.Second)
		c.BaseURL = srv.URL

		_, err := c.Rank(context.Background(), "dipirona", items)
		assert.Error(t, err)
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		c := NewOpenAIClient("sk-test", "gpt-4o-mini", 5*time.Second)
		c.BaseURL = srv.URL

		_, err := c.Rank(context.Background(), "dipirona", items)
		assert.Error(t, err)
	})
}
