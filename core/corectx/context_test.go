package corectx

import (
	"testing"
	"time"
)

func TestNilContextIsUsable(t *testing.T) {
	var c *Context
	if c.Log() == nil {
		t.Error("Log() on a nil Context should return a usable logger")
	}
	if c.Clock().IsZero() {
		t.Error("Clock() on a nil Context should return a real timestamp")
	}
}

func TestDiscardDropsOutput(t *testing.T) {
	c := Discard()
	c.Log().Info("this should go nowhere")
}

func TestClockOverride(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &Context{Now: func() time.Time { return fixed }}
	if !c.Clock().Equal(fixed) {
		t.Errorf("Clock() = %v, want %v", c.Clock(), fixed)
	}
}
