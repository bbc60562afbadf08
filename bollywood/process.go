package bollywood

import (
	"fmt"
	"runtime/debug"
	"sync"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its mailbox and run loop.
type process struct {
	engine   *Engine
	pid      *PID
	props    *Props
	actor    Actor
	mailbox  chan *messageEnvelope
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage queues a message without blocking. A full mailbox drops it.
func (p *process) sendMessage(message interface{}, sender *PID) {
	select {
	case <-p.stopCh:
		return
	default:
	}

	select {
	case p.mailbox <- &messageEnvelope{Sender: sender, Message: message}:
	default:
		fmt.Printf("Actor %s mailbox full, dropping message %T\n", p.pid, message)
	}
}

func (p *process) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *process) run() {
	defer p.engine.remove(p.pid)

	p.actor = p.props.Produce()
	if p.actor == nil {
		fmt.Printf("Actor %s producer returned nil actor\n", p.pid)
		return
	}

	defer func() {
		p.invokeReceive(Stopping{}, nil)
		p.invokeReceive(Stopped{}, nil)
	}()

	if !p.invokeReceive(Started{}, nil) {
		return
	}

	for {
		// A pending stop wins over queued user messages.
		select {
		case <-p.stopCh:
			return
		default:
		}

		select {
		case <-p.stopCh:
			return
		case envelope := <-p.mailbox:
			if isSystemMessage(envelope.Message) {
				continue
			}
			if !p.invokeReceive(envelope.Message, envelope.Sender) {
				return
			}
		}
	}
}

// invokeReceive calls Receive and recovers a panic. It reports false when
// the actor panicked, which stops the actor.
func (p *process) invokeReceive(msg interface{}, sender *PID) (ok bool) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  sender,
		message: msg,
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Actor %s panicked during Receive(%T): %v\nStack trace:\n%s\n", p.pid, msg, r, string(debug.Stack()))
			p.signalStop()
			ok = false
		}
	}()

	p.actor.Receive(ctx)
	return true
}
