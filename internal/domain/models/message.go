package models

// MessageKind tags a Message.
type MessageKind int

const (
	KindTick MessageKind = iota
	KindShutdown
)

func (k MessageKind) String() string {
	switch k {
	case KindTick:
		return "tick"
	case KindShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Message is the unit transferred from the tick generator to the dashboard
// loop: either a Tick carrying one candle or a Shutdown notice.
type Message struct {
	Kind       MessageKind
	Instrument InstrumentID
	Candle     Candle
}

// Tick builds a tick message.
func Tick(id InstrumentID, c Candle) Message {
	return Message{Kind: KindTick, Instrument: id, Candle: c}
}

// Shutdown builds a shutdown message.
func Shutdown() Message { return Message{Kind: KindShutdown} }
