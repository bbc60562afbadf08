package bollywood

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingActor struct {
	mu       sync.Mutex
	received []interface{}
	senders  []*PID
	panicOn  interface{}
}

func (a *recordingActor) Receive(ctx Context) {
	a.mu.Lock()
	a.received = append(a.received, ctx.Message())
	a.senders = append(a.senders, ctx.Sender())
	a.mu.Unlock()

	if a.panicOn != nil && ctx.Message() == a.panicOn {
		panic("boom")
	}
}

func (a *recordingActor) messages() []interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]interface{}(nil), a.received...)
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestEngine_DeliversInOrder(t *testing.T) {
	engine := NewEngine()
	defer engine.Shutdown(time.Second)

	actor := &recordingActor{}
	pid := engine.Spawn(NewProps(func() Actor { return actor }))
	require.NotNil(t, pid)
	sender := &PID{ID: "sender"}

	for i := 0; i < 10; i++ {
		engine.Send(pid, i, sender)
	}

	require.True(t, waitFor(t, func() bool { return len(actor.messages()) == 11 }))
	msgs := actor.messages()
	assert.Equal(t, Started{}, msgs[0])
	for i := 0; i < 10; i++ {
		assert.Equal(t, i, msgs[i+1])
	}

	actor.mu.Lock()
	assert.Nil(t, actor.senders[0])
	assert.Equal(t, sender, actor.senders[1])
	actor.mu.Unlock()
}

func TestEngine_StopDeliversLifecycle(t *testing.T) {
	engine := NewEngine()
	defer engine.Shutdown(time.Second)

	actor := &recordingActor{}
	pid := engine.Spawn(NewProps(func() Actor { return actor }))
	require.True(t, waitFor(t, func() bool { return len(actor.messages()) == 1 }))

	engine.Stop(pid)

	require.True(t, waitFor(t, func() bool { return !engine.Alive(pid) }))
	assert.Equal(t, []interface{}{Started{}, Stopping{}, Stopped{}}, actor.messages())

	engine.Send(pid, "late", nil)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, actor.messages(), 3)
}

func TestEngine_PanicStopsActor(t *testing.T) {
	engine := NewEngine()
	defer engine.Shutdown(time.Second)

	actor := &recordingActor{panicOn: "explode"}
	pid := engine.Spawn(NewProps(func() Actor { return actor }))

	engine.Send(pid, "explode", nil)

	require.True(t, waitFor(t, func() bool { return !engine.Alive(pid) }))
	msgs := actor.messages()
	assert.Equal(t, Stopped{}, msgs[len(msgs)-1])
}

func TestEngine_SystemMessagesFromOutsideAreIgnored(t *testing.T) {
	engine := NewEngine()
	defer engine.Shutdown(time.Second)

	actor := &recordingActor{}
	pid := engine.Spawn(NewProps(func() Actor { return actor }))
	engine.Send(pid, Stopped{}, nil)
	engine.Send(pid, "after", nil)

	require.True(t, waitFor(t, func() bool { return len(actor.messages()) == 2 }))
	assert.Equal(t, []interface{}{Started{}, "after"}, actor.messages())
	assert.True(t, engine.Alive(pid))
}

func TestEngine_NilProducerResult(t *testing.T) {
	engine := NewEngine()
	defer engine.Shutdown(time.Second)

	pid := engine.Spawn(NewProps(func() Actor { return nil }))
	require.NotNil(t, pid)
	assert.True(t, waitFor(t, func() bool { return !engine.Alive(pid) }))
}

func TestEngine_Shutdown(t *testing.T) {
	engine := NewEngine()
	actors := make([]*recordingActor, 3)
	pids := make([]*PID, 3)
	for i := range actors {
		actor := &recordingActor{}
		actors[i] = actor
		pids[i] = engine.Spawn(NewProps(func() Actor { return actor }))
	}

	engine.Shutdown(time.Second)

	for i, actor := range actors {
		assert.False(t, engine.Alive(pids[i]))
		msgs := actor.messages()
		require.NotEmpty(t, msgs)
		assert.Equal(t, Stopped{}, msgs[len(msgs)-1])
	}
	assert.Nil(t, engine.Spawn(NewProps(func() Actor { return &recordingActor{} })))
}

func TestNewProps_NilProducerPanics(t *testing.T) {
	assert.Panics(t, func() { NewProps(nil) })
}

func TestPID_String(t *testing.T) {
	var pid *PID
	assert.Equal(t, "<nil>", pid.String())
	assert.Equal(t, "actor-1", (&PID{ID: "actor-1"}).String())
}
