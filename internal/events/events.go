// Package events publishes encode/decode lifecycle notifications over
// an in-process EventBus, consumed optionally by callers that
// subscribe to it. The codec core never imports this package.
package events

import "github.com/asaskevich/EventBus"

const (
	TopicEncoded = "abicodec.encoded"
	TopicDecoded = "abicodec.decoded"
)

// Encoded is published after a successful Function encode.
type Encoded struct {
	CorrelationID string
	FunctionName  string
	InputID       uint32
	BodyBits      int
}

// Decoded is published after a successful Function decode.
type Decoded struct {
	CorrelationID string
	FunctionName  string
	Selector      uint32
}

// Bus wraps EventBus.Bus with the two topics this package defines. A
// nil *Bus drops every publish silently.
type Bus struct {
	bus EventBus.Bus
}

func New() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) PublishEncoded(e Encoded) {
	if b == nil {
		return
	}
	b.bus.Publish(TopicEncoded, e)
}

func (b *Bus) PublishDecoded(e Decoded) {
	if b == nil {
		return
	}
	b.bus.Publish(TopicDecoded, e)
}

// SubscribeEncoded registers fn to run on every Encoded event.
func (b *Bus) SubscribeEncoded(fn func(Encoded)) error {
	return b.bus.Subscribe(TopicEncoded, fn)
}

// SubscribeDecoded registers fn to run on every Decoded event.
func (b *Bus) SubscribeDecoded(fn func(Decoded)) error {
	return b.bus.Subscribe(TopicDecoded, fn)
}
