package ui

import (
	"testing"
	"time"
)

func TestFlashWatchReceivesMessages(t *testing.T) {
	f := NewFlashModel()
	f.Info("saved")

	select {
	case fm := <-f.Watch():
		if fm.Text != "saved" || fm.Level != FlashInfo {
			t.Errorf("watched message = %+v", fm)
		}
	case <-time.After(time.Second):
		t.Fatal("no message on watch channel")
	}
}

func TestFlashWatchNeverBlocksSetter(t *testing.T) {
	f := NewFlashModel()
	// Nobody draining the channel; setting must still not block.
	for i := 0; i < 20; i++ {
		f.Info("msg")
	}
	if f.Get() != "msg" {
		t.Errorf("Get() = %q, want msg", f.Get())
	}
}
