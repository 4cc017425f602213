package realtime

import (
	"testing"
)

func TestBroadcaster_PublishDeliversToSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish("canvas")
	if got := <-ch1; got != "canvas" {
		t.Errorf("ch1 got %q, want canvas", got)
	}
	if got := <-ch2; got != "canvas" {
		t.Errorf("ch2 got %q, want canvas", got)
	}
}

func TestBroadcaster_PublishSeveralEventsInOrder(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish("canvas", "panels", "study")
	for _, want := range []string{"canvas", "panels", "study"} {
		if got := <-ch; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestBroadcaster_DropsWhenSubscriberLags(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < subscriberBuffer*2; i++ {
		b.Publish("recording")
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("buffered %d events, want %d", len(ch), subscriberBuffer)
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	if b.Len() != 0 {
		t.Errorf("Len %d, want 0", b.Len())
	}
	// second unsubscribe is a no-op
	b.Unsubscribe(ch)
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Close()
	if _, open := <-ch; open {
		t.Error("Close should close subscriber channels")
	}
	late := b.Subscribe()
	if _, open := <-late; open {
		t.Error("Subscribe after Close should return a closed channel")
	}
	b.Publish("canvas")
	b.Close()
}
