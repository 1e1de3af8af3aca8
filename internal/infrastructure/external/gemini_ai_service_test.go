package external

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joke-demo/internal/domain/entities"
	"joke-demo/internal/infrastructure/services"
)

const fakeImage = "fake image bytes"

func newFakeGemini(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *atomic.Value) {
	t.Helper()

	var calls atomic.Int32
	var lastBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		b, _ := io.ReadAll(r.Body)
		lastBody.Store(string(b))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &lastBody
}

func newRequest() *entities.JokeRequest {
	return entities.NewJokeRequest(
		"gemini-2.5-flash",
		"tell me a joke",
		base64.StdEncoding.EncodeToString([]byte(fakeImage)),
		"image/png",
	)
}

func TestGeminiAIService_GenerateJoke(t *testing.T) {
	const joke = "Why did the cat sit on the keyboard? To keep an eye on the mouse."
	srv, calls, lastBody := newFakeGemini(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"`+joke+`"}]}}]}`)

	service := NewGeminiAIService(services.NewGenAIClientPool("test-key", srv.URL))
	result, err := service.GenerateJoke(context.Background(), newRequest())

	require.NoError(t, err)
	assert.Equal(t, joke, result.Text())
	assert.Equal(t, int32(1), calls.Load())

	sent := lastBody.Load().(string)
	assert.Contains(t, sent, base64.StdEncoding.EncodeToString([]byte(fakeImage)))
	assert.Contains(t, sent, "image/png")
	assert.Contains(t, sent, "tell me a joke")
	assert.Less(t, strings.Index(sent, "image/png"), strings.Index(sent, "tell me a joke"))
}

func TestGeminiAIService_EmptyResponse(t *testing.T) {
	srv, _, _ := newFakeGemini(t, http.StatusOK, `{"candidates":[]}`)

	service := NewGeminiAIService(services.NewGenAIClientPool("test-key", srv.URL))
	result, err := service.GenerateJoke(context.Background(), newRequest())

	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}

func TestGeminiAIService_TransportError(t *testing.T) {
	srv, calls, _ := newFakeGemini(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`)

	service := NewGeminiAIService(services.NewGenAIClientPool("test-key", srv.URL))
	result, err := service.GenerateJoke(context.Background(), newRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, entities.ErrTransport)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiAIService_InvalidPayload(t *testing.T) {
	srv, calls, _ := newFakeGemini(t, http.StatusOK, `{}`)

	service := NewGeminiAIService(services.NewGenAIClientPool("test-key", srv.URL))
	_, err := service.GenerateJoke(context.Background(),
		entities.NewJokeRequest("gemini-2.5-flash", "p", "not base64!", "image/png"))

	assert.ErrorIs(t, err, entities.ErrTransport)
	assert.Zero(t, calls.Load())
}

func TestGeminiAIService_MissingAPIKey(t *testing.T) {
	service := NewGeminiAIService(services.NewGenAIClientPool("", ""))
	_, err := service.GenerateJoke(context.Background(), newRequest())

	assert.ErrorIs(t, err, entities.ErrTransport)
}
