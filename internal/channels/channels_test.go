package channels

import (
	"testing"
	"time"

	"github.com/stuncs69/vexel/internal/object"
)

func TestSendRecvFIFOOrder(t *testing.T) {
	id := Create()
	Send(id, &object.Number{Value: 1})
	Send(id, &object.Number{Value: 2})
	Send(id, &object.Number{Value: 3})

	for _, want := range []int32{1, 2, 3} {
		v, ok := Recv(id)
		if !ok {
			t.Fatalf("Recv(%d) returned ok=false, want a value", id)
		}
		n, isNum := v.(*object.Number)
		if !isNum || n.Value != want {
			t.Errorf("got %v, want Number(%d)", v, want)
		}
	}
}

func TestRecvOnDrainedClosedChannelReturnsNotOK(t *testing.T) {
	id := Create()
	Send(id, &object.Number{Value: 1})
	Close(id)

	v, ok := Recv(id)
	if !ok || v.(*object.Number).Value != 1 {
		t.Fatalf("expected the buffered value to still be delivered before closed-and-empty, got %v, %v", v, ok)
	}
	_, ok = Recv(id)
	if ok {
		t.Error("expected Recv on a drained closed channel to return ok=false")
	}
}

func TestSendOnClosedChannelFails(t *testing.T) {
	id := Create()
	Close(id)
	if Send(id, &object.Number{Value: 1}) {
		t.Error("expected Send on a closed channel to fail")
	}
}

func TestRecvBlocksUntilSend(t *testing.T) {
	id := Create()
	done := make(chan object.Value, 1)
	go func() {
		v, _ := Recv(id)
		done <- v
	}()

	select {
	case <-done:
		t.Fatal("Recv returned before any Send")
	case <-time.After(50 * time.Millisecond):
	}

	Send(id, &object.String{Value: "hello"})

	select {
	case v := <-done:
		if v.(*object.String).Value != "hello" {
			t.Errorf("got %v, want hello", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv never unblocked after Send")
	}
}

func TestRecvUnblocksOnClose(t *testing.T) {
	id := Create()
	done := make(chan bool, 1)
	go func() {
		_, ok := Recv(id)
		done <- ok
	}()

	Close(id)

	select {
	case ok := <-done:
		if ok {
			t.Error("expected Recv to report ok=false when unblocked by Close with nothing queued")
		}
	case <-time.After(time.Second):
		t.Fatal("Recv never unblocked after Close")
	}
}

func TestUnknownChannelOperationsFail(t *testing.T) {
	const bogus = int32(999999)
	if Send(bogus, &object.Null{}) {
		t.Error("expected Send on an unknown id to fail")
	}
	if _, ok := Recv(bogus); ok {
		t.Error("expected Recv on an unknown id to fail")
	}
	if Close(bogus) {
		t.Error("expected Close on an unknown id to fail")
	}
	if Exists(bogus) {
		t.Error("expected Exists on an unknown id to be false")
	}
	if _, known := IsClosed(bogus); known {
		t.Error("expected IsClosed on an unknown id to report known=false")
	}
}

func TestExistsAndIsClosed(t *testing.T) {
	id := Create()
	if !Exists(id) {
		t.Error("expected a freshly created channel to exist")
	}
	closed, known := IsClosed(id)
	if !known || closed {
		t.Errorf("got closed=%v known=%v, want closed=false known=true", closed, known)
	}
	Close(id)
	closed, known = IsClosed(id)
	if !known || !closed {
		t.Errorf("got closed=%v known=%v, want closed=true known=true", closed, known)
	}
}
