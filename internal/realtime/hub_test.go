package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bracketeer/bracket/internal/domain"
)

func TestPublishNewPlayableIsNoOpWithNoMatches(t *testing.T) {
	h := NewHub()
	go h.Run()

	done := make(chan struct{})
	go func() {
		h.PublishNewPlayable(domain.NewBracketID(), nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PublishNewPlayable with no matches should not block on the broadcast channel")
	}
}

func TestPublishNewPlayableBroadcastsToRegisteredClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{send: make(chan []byte, 1)}
	h.Register(client)
	// give Run a moment to process the registration
	time.Sleep(10 * time.Millisecond)

	bracketID := domain.NewBracketID()
	matchID := domain.NewMatchID()
	h.PublishNewPlayable(bracketID, []domain.MatchID{matchID})

	select {
	case msg := <-client.send:
		assert.Contains(t, string(msg), bracketID.String())
		assert.Contains(t, string(msg), matchID.String())
	case <-time.After(time.Second):
		t.Fatal("expected client to receive the broadcast event")
	}
}
