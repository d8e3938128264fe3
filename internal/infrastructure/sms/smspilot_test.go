package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/config"
)

func newTestClient(apiURL string) *SMSPilotClient {
	return NewSMSPilotClient(config.SMSConfig{
		APIKey:         "test-key",
		APIURL:         apiURL,
		ConnectTimeout: time.Second,
		Timeout:        2 * time.Second,
	})
}

func TestSend_Success(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"send":   r.PostFormValue("send"),
			"to":     r.PostFormValue("to"),
			"apikey": r.PostFormValue("apikey"),
			"format": r.PostFormValue("format"),
		}
		w.Write([]byte(`{"success":true,"cost":1.5}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	err := client.Send(context.Background(), "+79123456789", "hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", gotForm["send"])
	assert.Equal(t, "+79123456789", gotForm["to"])
	assert.Equal(t, "test-key", gotForm["apikey"])
	assert.Equal(t, "json", gotForm["format"])
}

func TestSend_GatewayReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":false,"error":{"code":106}}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send(context.Background(), "+79123456789", "hello")
	assert.ErrorContains(t, err, "reported failure")
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send(context.Background(), "+79123456789", "hello")
	assert.ErrorContains(t, err, "status 500")
}

func TestSend_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send(context.Background(), "+79123456789", "hello")
	assert.ErrorContains(t, err, "malformed")
}

func TestSend_MissingAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewSMSPilotClient(config.SMSConfig{APIURL: srv.URL, Timeout: time.Second, ConnectTimeout: time.Second})
	err := client.Send(context.Background(), "+79123456789", "hello")
	assert.ErrorContains(t, err, "api key")
	assert.Zero(t, calls)
}

func TestMockSender(t *testing.T) {
	assert.NoError(t, NewMockSender().Send(context.Background(), "+79123456789", "hello"))
}
