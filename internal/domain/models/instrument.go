package models

import (
	"errors"
	"fmt"

	"golang.org/x/text/currency"
)

var (
	ErrEmptyRegistry     = errors.New("instrument registry is empty")
	ErrDuplicateSymbol   = errors.New("duplicate instrument symbol")
	ErrUnknownInstrument = errors.New("unknown instrument")
)

// InstrumentID is the registry index assigned to an instrument at startup.
type InstrumentID int

// Instrument is one tracked synthetic price series.
type Instrument struct {
	ID          InstrumentID
	Symbol      string        // e.g. "USD/BTC"
	Quote       currency.Unit // currency prices are quoted in
	SeedPrice   float64
	Volatility  float64 // max absolute move per tick
	VolumeScale float64
}

// Registry is the fixed instrument table. IDs are dense indexes in
// [0, Len()), so lookups never hash and never miss for a valid id.
type Registry struct {
	instruments []Instrument
}

// NewRegistry assigns ids in the given order.
func NewRegistry(instruments []Instrument) (*Registry, error) {
	if len(instruments) == 0 {
		return nil, ErrEmptyRegistry
	}
	seen := make(map[string]struct{}, len(instruments))
	out := make([]Instrument, len(instruments))
	for i, in := range instruments {
		if _, dup := seen[in.Symbol]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, in.Symbol)
		}
		seen[in.Symbol] = struct{}{}
		in.ID = InstrumentID(i)
		out[i] = in
	}
	return &Registry{instruments: out}, nil
}

// Len returns the number of registered instruments.
func (r *Registry) Len() int { return len(r.instruments) }

// Get returns the instrument with the given id. It panics on an id that was
// never issued by this registry.
func (r *Registry) Get(id InstrumentID) Instrument {
	if int(id) < 0 || int(id) >= len(r.instruments) {
		panic(fmt.Sprintf("%v: id %d", ErrUnknownInstrument, id))
	}
	return r.instruments[id]
}

// All returns the instruments in id order.
func (r *Registry) All() []Instrument {
	out := make([]Instrument, len(r.instruments))
	copy(out, r.instruments)
	return out
}

// Symbol is the presentation name of id.
func (r *Registry) Symbol(id InstrumentID) string { return r.Get(id).Symbol }
