package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"zenlit/config"
	"zenlit/internal/domain/constants"
	"zenlit/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newParams(t *testing.T, cfg *config.PubSubConfig) PublisherParams {
	return PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: cfg},
		Logger: testLogger(),
	}
}

func TestNewEventPublisher_Selection(t *testing.T) {
	publisher, err := NewEventPublisher(newParams(t, nil))
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishAnonymityChanged(context.Background(), &service.AnonymityChangedEvent{ConversationID: "c1"}))

	publisher, err = NewEventPublisher(newParams(t, &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:1"}))
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)

	_, err = NewEventPublisher(newParams(t, &config.PubSubConfig{Provider: constants.PubSubProviderLocal}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newParams(t, &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newParams(t, &config.PubSubConfig{Provider: "kafka"}))
	assert.EqualError(t, err, "unknown pubsub provider: kafka")
}

func TestLocalHTTPPublisher_PushesEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	event := &service.AnonymityChangedEvent{
		RequestID:       "req-1",
		ConversationID:  "c1",
		UserAID:         "a",
		UserBID:         "b",
		IsAnonymousForA: false,
		IsAnonymousForB: false,
	}

	require.NoError(t, publisher.PublishAnonymityChanged(context.Background(), event))
	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.Equal(t, service.EventTypeAnonymityChanged, received.Message.Attributes["event_type"])
	assert.Equal(t, "c1", received.Message.Attributes["conversation_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.AnonymityChangedEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewLocalHTTPPublisher(server.URL, testLogger()).
		PublishAnonymityChanged(context.Background(), &service.AnonymityChangedEvent{ConversationID: "c1"})
	assert.EqualError(t, err, "push endpoint returned non-success status: 503")
}
