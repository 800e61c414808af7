package service

import (
	"testing"
)

func TestUISignalsState(t *testing.T) {
	signals := NewUISignals()
	var received []Signal
	unsubscribe := signals.Subscribe(func(s Signal) { received = append(received, s) })

	signals.Emit(SignalOpenCart)
	if !signals.State().CartOpen {
		t.Fatalf("cart panel should be open")
	}
	signals.Emit(SignalCloseCart)
	signals.Emit(SignalOpenLogin)
	state := signals.State()
	if state.CartOpen || !state.LoginOpen {
		t.Fatalf("unexpected state after close/login: %+v", state)
	}

	signals.Emit(SignalNavigateHome)
	if signals.State().Navigate != "/" {
		t.Fatalf("navigate signal missing: %+v", signals.State())
	}
	signals.AckNavigation()
	if signals.State().Navigate != "" {
		t.Fatalf("navigate signal should be acknowledged")
	}

	unsubscribe()
	unsubscribe()
	signals.Emit(SignalOpenCart)
	if len(received) != 4 {
		t.Fatalf("expected 4 signals before unsubscribe, got %d", len(received))
	}
}

func TestUISignalsManualToggles(t *testing.T) {
	signals := NewUISignals()
	signals.SetCartOpen(true)
	signals.SetLoginOpen(true)
	signals.SetCartOpen(false)
	state := signals.State()
	if state.CartOpen || !state.LoginOpen {
		t.Fatalf("unexpected state: %+v", state)
	}
}
