package ssa

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordingNotifier captures every event it receives on a channel so
// tests can observe asynchronous dispatch without sleeping blindly.
type recordingNotifier struct {
	id      string
	events  chan JumpFiredEvent
	closed  bool
	failN   int // fail the first failN calls, then succeed
	callNum int
}

func (n *recordingNotifier) ID() string   { return n.id }
func (n *recordingNotifier) Type() string { return "recording" }
func (n *recordingNotifier) Notify(ctx context.Context, event JumpFiredEvent) error {
	n.callNum++
	if n.callNum <= n.failN {
		return context.DeadlineExceeded
	}
	n.events <- event
	return nil
}
func (n *recordingNotifier) Close() error { n.closed = true; return nil }

func TestNotificationManager_RegisterListUnregister(t *testing.T) {
	nm := NewNotificationManager(nil)
	defer nm.Close()

	n := &recordingNotifier{id: "a", events: make(chan JumpFiredEvent, 1)}
	require.NoError(t, nm.RegisterNotifier(n))
	require.ElementsMatch(t, []string{"a"}, nm.ListNotifiers())

	require.Error(t, nm.RegisterNotifier(n)) // duplicate ID
	require.Error(t, nm.RegisterNotifier(nil))

	require.NoError(t, nm.UnregisterNotifier("a"))
	require.True(t, n.closed)
	require.Empty(t, nm.ListNotifiers())

	require.Error(t, nm.UnregisterNotifier("missing"))
}

func TestNotificationManager_EnqueueDispatchesToNotifier(t *testing.T) {
	nm := NewNotificationManager(nil)
	defer nm.Close()

	n := &recordingNotifier{id: "a", events: make(chan JumpFiredEvent, 1)}
	require.NoError(t, nm.RegisterNotifier(n))

	nm.Enqueue(JumpFiredEvent{JumpName: "birth", SimTime: 1.5}, []string{"a"})

	select {
	case event := <-n.events:
		require.Equal(t, "birth", event.JumpName)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification dispatch")
	}
}

func TestNotificationManager_EnqueueWithNoNotifierIDsIsNoop(t *testing.T) {
	nm := NewNotificationManager(nil)
	defer nm.Close()
	nm.Enqueue(JumpFiredEvent{JumpName: "birth"}, nil) // must not panic or block
}

func TestNotificationManager_RetriesOnFailureThenSucceeds(t *testing.T) {
	nm := NewNotificationManager(nil)
	defer nm.Close()

	n := &recordingNotifier{id: "a", events: make(chan JumpFiredEvent, 1), failN: 2}
	require.NoError(t, nm.RegisterNotifier(n))

	nm.Enqueue(JumpFiredEvent{JumpName: "death"}, []string{"a"})

	select {
	case event := <-n.events:
		require.Equal(t, "death", event.JumpName)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for notification retry to succeed")
	}
}

func TestNotificationManager_CloseIsIdempotentAndClosesNotifiers(t *testing.T) {
	nm := NewNotificationManager(nil)
	n := &recordingNotifier{id: "a", events: make(chan JumpFiredEvent, 1)}
	require.NoError(t, nm.RegisterNotifier(n))

	require.NoError(t, nm.Close())
	require.True(t, n.closed)
	require.NoError(t, nm.Close()) // second call is a no-op, not an error
}

func TestJumpFiredEvent_JSONRoundTrips(t *testing.T) {
	event := JumpFiredEvent{RunID: "r1", JumpIndex: 2, JumpName: "birth", SimTime: 3.5, U: []int64{1, 2}}
	data, err := event.JSON()
	require.NoError(t, err)

	var decoded JumpFiredEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, event, decoded)
}
