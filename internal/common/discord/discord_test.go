package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestSendMessagePostsJSON(t *testing.T) {
	is := is.New(t)

	var (
		got         WebhookMessage
		method      string
		contentType string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SendLogMessage(context.Background(), "WARN", "Route 15A delayed", map[string]interface{}{
		"vehicle": "bus-001",
		"delay":   3,
	})
	is.NoErr(err)

	is.Equal(method, http.MethodPost)
	is.Equal(contentType, "application/json")
	is.Equal(len(got.Embeds), 1)
	is.Equal(got.Embeds[0].Description, "Route 15A delayed")
	is.Equal(got.Embeds[0].Color, 0xFFA500)
	is.Equal(len(got.Embeds[0].Fields), 2)
	is.Equal(got.Embeds[0].Fields[0].Name, "delay")
	is.Equal(got.Embeds[0].Fields[1].Name, "vehicle")
}

func TestSendMessageReportsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).SendMessage(context.Background(), WebhookMessage{Content: "x"}); err == nil {
		t.Error("Expected error for 400 response")
	}
}

func TestSendMessageWithoutURLIsNoop(t *testing.T) {
	c := NewClient("")
	if c.Enabled() {
		t.Error("Client without URL should be disabled")
	}
	if err := c.SendMessage(context.Background(), WebhookMessage{Content: "x"}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
