package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/logger"
)

type fakeCompleter struct {
	text    string
	err     error
	prompt  string
	release chan struct{} // when set, Complete blocks until closed
}

func (f *fakeCompleter) Complete(ctx context.Context, _ string, prompt string) (string, error) {
	f.prompt = prompt

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return f.text, f.err
}

func newSession(completer *fakeCompleter, timeout time.Duration) *Session {
	return New(Config{
		L:         logger.New(),
		Completer: completer,
		Catalog:   hostel.Catalog(),
		Model:     "gpt-4o-mini",
		Timeout:   timeout,
	})
}

func TestAskAppendsBothTurns(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{text: "Try Quiet Corner Stay, it fits a tight budget."}
	s := newSession(fake, time.Second)

	reply, err := s.Ask(context.Background(), "cheap and quiet please")
	require.NoError(t, err)
	require.Equal(t, RoleAssistant, reply.Role)
	require.Equal(t, fake.text, reply.Text)

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	require.Equal(t, Turn{Role: RoleUser, Text: "cheap and quiet please"}, transcript[0])
	require.Equal(t, reply, transcript[1])
	require.False(t, s.Typing())
}

func TestAskPromptCarriesCatalogAndQuery(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{text: "ok"}
	s := newSession(fake, time.Second)

	_, err := s.Ask(context.Background(), "somewhere with a gym")
	require.NoError(t, err)

	require.Contains(t, fake.prompt, `"HostelScout AI"`)
	require.Contains(t, fake.prompt, `User Query: "somewhere with a gym"`)
	require.Contains(t, fake.prompt, "Recommend 1-3 hostels")

	// Every catalog entry rides along, serialized.
	for _, h := range hostel.Catalog() {
		require.Contains(t, fake.prompt, h.Name)
	}
}

func TestAskFailureBecomesFallbackTurn(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{err: errors.New("connection refused")}
	s := newSession(fake, time.Second)

	reply, err := s.Ask(context.Background(), "anything")
	require.NoError(t, err, "service failure never propagates")
	require.Equal(t, fallbackFailure, reply.Text)

	transcript := s.Transcript()
	require.Equal(t, fallbackFailure, transcript[len(transcript)-1].Text)
	require.False(t, s.Typing(), "typing indicator resets after a failure")
}

func TestAskEmptyCompletionBecomesFallbackTurn(t *testing.T) {
	t.Parallel()

	s := newSession(&fakeCompleter{text: ""}, time.Second)

	reply, err := s.Ask(context.Background(), "anything")
	require.NoError(t, err)
	require.Equal(t, fallbackEmpty, reply.Text)
}

func TestAskTimeoutBecomesFallbackTurn(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{text: "too late", release: make(chan struct{})}
	s := newSession(fake, 10*time.Millisecond)

	reply, err := s.Ask(context.Background(), "anything")
	require.NoError(t, err)
	require.Equal(t, fallbackFailure, reply.Text)
	require.False(t, s.Typing())
}

func TestAskRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	s := newSession(&fakeCompleter{text: "ok"}, time.Second)

	_, err := s.Ask(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyQuery)
	require.Empty(t, s.Transcript())
}

func TestAskRejectsConcurrentQuery(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fake := &fakeCompleter{text: "done", release: release}
	s := newSession(fake, time.Second)

	done := make(chan struct{})

	go func() {
		_, _ = s.Ask(context.Background(), "first")
		close(done)
	}()

	require.Eventually(t, s.Typing, time.Second, time.Millisecond)

	_, err := s.Ask(context.Background(), "second")
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	<-done

	transcript := s.Transcript()
	require.Len(t, transcript, 2, "the rejected query leaves no trace")
	require.True(t, strings.HasPrefix(transcript[0].Text, "first"))
}
