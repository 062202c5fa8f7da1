package notify

import (
	"errors"
	"testing"
	"time"
)

var errTestCrash = errors.New("disk on fire")

func dialLoopback(t *testing.T, factory EncoderFactory) (client, server *MessageConnection) {
	t.Helper()

	accepted := make(chan *MessageConnection, 1)
	listener, err := ListenTCP("127.0.0.1:0", factory, accepted)
	if err != nil {
		t.Fatalf("ListenTCP: %v", err)
	}
	t.Cleanup(listener.StopListening)

	addr := listener.listener.Addr().String()

	client, err = ConnectTCP(addr, factory, time.Second)
	if err != nil {
		t.Fatalf("ConnectTCP: %v", err)
	}
	t.Cleanup(client.Close)

	select {
	case server = <-accepted:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for accepted connection")
	}
	t.Cleanup(server.Close)

	return client, server
}

func TestRemoteObserverForwardsHooks(t *testing.T) {
	client, server := dialLoopback(t, MakeGobEncoderFactory())

	obs := NewRemoteObserver("worker-0", client)
	obs.Running()

	msg, err := server.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if msg.ID() != HookRunning {
		t.Fatalf("expected message ID %q, got %q", HookRunning, msg.ID())
	}

	var evt Event
	msg.Data(&evt)
	if evt.WorkerName != "worker-0" || evt.Hook != HookRunning {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestRemoteObserverCrashedCarriesFailureMessage(t *testing.T) {
	client, server := dialLoopback(t, MakeJSONEncoderFactory())

	obs := NewRemoteObserver("worker-1", client)
	obs.Crashed(errTestCrash)

	msg, err := server.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}

	var evt Event
	msg.Data(&evt)
	if evt.Hook != HookCrashed || evt.Failure != errTestCrash.Error() {
		t.Fatalf("unexpected event: %+v", evt)
	}
}
