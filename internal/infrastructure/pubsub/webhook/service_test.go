package webhookpubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicswap-network/swapd/internal/core/ports"
	webhookpubsub "github.com/atomicswap-network/swapd/internal/infrastructure/pubsub/webhook"
)

type receivedRequest struct {
	body          string
	authorization string
}

type recordingServer struct {
	*httptest.Server

	locker   sync.Mutex
	received []receivedRequest
}

func newRecordingServer() *recordingServer {
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			rs.locker.Lock()
			rs.received = append(rs.received, receivedRequest{
				body:          string(body),
				authorization: r.Header.Get("Authorization"),
			})
			rs.locker.Unlock()
			w.WriteHeader(http.StatusOK)
		},
	))
	return rs
}

func (rs *recordingServer) requests() []receivedRequest {
	rs.locker.Lock()
	defer rs.locker.Unlock()
	return append([]receivedRequest{}, rs.received...)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	svc := webhookpubsub.NewWebhookPubSubService()

	id, err := svc.Subscribe("order_created", "http://localhost:8080/hook", "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	subs := svc.ListSubscriptionsForTopic("order_created")
	require.Len(t, subs, 1)
	require.Equal(t, id, subs[0].Id())
	require.Equal(t, "order_created", subs[0].Topic())
	require.False(t, subs[0].IsSecured())
}

func TestFailingSubscribe(t *testing.T) {
	t.Parallel()

	svc := webhookpubsub.NewWebhookPubSubService()

	t.Run("empty_topic", func(t *testing.T) {
		_, err := svc.Subscribe("", "http://localhost:8080/hook", "")
		require.EqualError(t, err, webhookpubsub.ErrInvalidTopic.Error())
	})

	t.Run("invalid_endpoint", func(t *testing.T) {
		_, err := svc.Subscribe("order_created", "not a url", "")
		require.Error(t, err)
	})
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	svc := webhookpubsub.NewWebhookPubSubService()

	id, err := svc.Subscribe("order_created", "http://localhost:8080/hook", "")
	require.NoError(t, err)

	err = svc.Unsubscribe("order_created", id)
	require.NoError(t, err)
	require.Empty(t, svc.ListSubscriptionsForTopic("order_created"))

	// Removing an unknown subscription is not an error.
	err = svc.Unsubscribe("order_created", id)
	require.NoError(t, err)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	server := newRecordingServer()
	defer server.Close()

	svc := webhookpubsub.NewWebhookPubSubService()

	_, err := svc.Subscribe("order_created", server.URL, "")
	require.NoError(t, err)

	err = svc.Publish("order_created", `{"event":"order_created"}`)
	require.NoError(t, err)

	requests := server.requests()
	require.Len(t, requests, 1)
	require.Equal(t, `{"event":"order_created"}`, requests[0].body)
	require.Empty(t, requests[0].authorization)

	t.Run("other_topic_not_notified", func(t *testing.T) {
		err := svc.Publish("order_failed", `{"event":"order_failed"}`)
		require.NoError(t, err)
		require.Len(t, server.requests(), 1)
	})
}

func TestPublishToAnyTopicSubscribers(t *testing.T) {
	t.Parallel()

	server := newRecordingServer()
	defer server.Close()

	svc := webhookpubsub.NewWebhookPubSubService()

	_, err := svc.Subscribe(ports.AnyTopic, server.URL, "")
	require.NoError(t, err)

	err = svc.Publish("order_confirmed", `{"event":"order_confirmed"}`)
	require.NoError(t, err)
	require.Len(t, server.requests(), 1)
}

func TestFailingPublish(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("endpoint exploded"))
		},
	))
	defer server.Close()

	svc := webhookpubsub.NewWebhookPubSubService()

	_, err := svc.Subscribe("order_created", server.URL, "")
	require.NoError(t, err)

	err = svc.Publish("order_created", `{"event":"order_created"}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "endpoint exploded")
}

func TestPublishToSecuredWebhook(t *testing.T) {
	t.Parallel()

	server := newRecordingServer()
	defer server.Close()

	svc := webhookpubsub.NewWebhookPubSubService()

	_, err := svc.Subscribe("order_created", server.URL, "itsasecret")
	require.NoError(t, err)

	err = svc.Publish("order_created", `{"event":"order_created"}`)
	require.NoError(t, err)

	requests := server.requests()
	require.Len(t, requests, 1)
	require.True(t, strings.HasPrefix(requests[0].authorization, "Bearer "))
}
