package main

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

func TestRun_Session(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), &config.Settings{}, strings.NewReader("hello\nexit\n"), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "How can I help you?")
	assert.Contains(t, out.String(), "Good bye!")
}

func TestRun_CancelledWhileWaitingForInput(t *testing.T) {
	in, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, run(ctx, &config.Settings{}, in, io.Discard))
}

func TestRun_PublishesFeeds(t *testing.T) {
	const port = "18097"

	in, w := io.Pipe()
	errChan := make(chan error, 1)
	go func() {
		errChan <- run(context.Background(), &config.Settings{FeedPort: port}, in, io.Discard)
	}()

	_, err := io.WriteString(w, "add Ann 1234567890\n")
	require.NoError(t, err)

	url := "http://127.0.0.1:" + port + config.RouteContacts
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.Contains(string(body), "FN:Ann")
	}, 2*time.Second, 50*time.Millisecond)

	_, err = io.WriteString(w, "exit\n")
	require.NoError(t, err)

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after exit")
	}
}
