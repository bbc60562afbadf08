package bollywood

// Actor processes the messages of its mailbox one at a time.
type Actor interface {
	Receive(ctx Context)
}

// Producer creates a new instance of an Actor.
type Producer func() Actor

// Props describes how to create an actor.
type Props struct {
	producer Producer
}

// NewProps creates a new Props object with the given actor producer.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer}
}

// Produce creates a new actor instance using the configured producer.
func (p *Props) Produce() Actor {
	return p.producer()
}

// PID references a running actor.
type PID struct {
	ID string
}

func (pid *PID) String() string {
	if pid == nil {
		return "<nil>"
	}
	return pid.ID
}

// Context is handed to Receive for every message.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() interface{}
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }

// Started is the first message every actor receives.
type Started struct{}

// Stopping asks the actor to release its resources. No user message is
// delivered after it.
type Stopping struct{}

// Stopped is the last message an actor receives.
type Stopped struct{}

type messageEnvelope struct {
	Sender  *PID
	Message interface{}
}

func isSystemMessage(message interface{}) bool {
	switch message.(type) {
	case Started, Stopping, Stopped:
		return true
	}
	return false
}
