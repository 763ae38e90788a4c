package bus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeEmit_LiteralMatch(t *testing.T) {
	b := New(nil)
	var got []Event
	b.Subscribe("sequence:started", func(topic string, event Event) {
		got = append(got, event)
	})

	b.Emit("sequence:started", Event{"name": "a"})
	b.Emit("sequence:completed", Event{"name": "b"})

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0]["name"])
}

func TestSubscribeEmit_WildcardMatch(t *testing.T) {
	b := New(nil)
	var topics []string
	b.Subscribe("sequence:*", func(topic string, event Event) {
		topics = append(topics, topic)
	})

	b.Emit("sequence:started", Event{})
	b.Emit("sequence:completed", Event{})
	b.Emit("movement:started", Event{})

	assert.Equal(t, []string{"sequence:started", "sequence:completed"}, topics)
}

func TestEmit_DispatchOrderMatchesSubscriptionOrder(t *testing.T) {
	b := New(nil)
	var order []int
	b.Subscribe("x", func(string, Event) { order = append(order, 1) })
	b.Subscribe("x", func(string, Event) { order = append(order, 2) })
	b.Subscribe("x", func(string, Event) { order = append(order, 3) })

	b.Emit("x", Event{})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)
	var calls int
	unsubscribe := b.Subscribe("x", func(string, Event) { calls++ })

	b.Emit("x", Event{})
	unsubscribe()
	b.Emit("x", Event{})

	assert.Equal(t, 1, calls)

	// calling twice must not panic
	unsubscribe()
}

func TestListenerPanic_IsolatedAndReported(t *testing.T) {
	b := New(nil)
	var secondRan bool
	var reported Event

	b.Subscribe("x", func(string, Event) { panic("boom") })
	b.Subscribe("x", func(string, Event) { secondRan = true })
	b.Subscribe(ListenerErrorTopic, func(topic string, event Event) { reported = event })

	b.Emit("x", Event{})

	assert.True(t, secondRan, "a panicking listener must not block the next listener")
	require.NotNil(t, reported)
	assert.Equal(t, "x", reported["topic"])
	assert.Contains(t, reported["error"], "boom")
}

func TestListenerPanic_NeverReemittedOnOriginalTopic(t *testing.T) {
	b := New(nil)
	var xCount int
	b.Subscribe("x", func(string, Event) { panic("boom") })
	b.Subscribe("x", func(string, Event) { xCount++ })

	b.Emit("x", Event{})

	assert.Equal(t, 1, xCount, "the panic must not cause a re-dispatch on the original topic")
}

func TestDuplicateSubscriptionsAreIndependent(t *testing.T) {
	b := New(nil)
	var calls int
	fn := func(string, Event) { calls++ }
	unsubscribeA := b.Subscribe("x", fn)
	b.Subscribe("x", fn)

	b.Emit("x", Event{})
	assert.Equal(t, 2, calls)

	unsubscribeA()
	b.Emit("x", Event{})
	assert.Equal(t, 3, calls)
}

func TestBus_ConcurrentEmitIsSafe(t *testing.T) {
	b := New(nil)
	var mu sync.Mutex
	var total int
	b.Subscribe("x", func(string, Event) {
		mu.Lock()
		total++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Emit("x", Event{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, total)
}
