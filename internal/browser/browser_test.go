package browser

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if !opts.Headless {
		t.Error("Expected headless to be true by default")
	}

	if opts.NavigationTimeout != 30*time.Second {
		t.Errorf("Expected navigation timeout to be 30s, got %v", opts.NavigationTimeout)
	}

	if opts.TitleWaitTimeout != 15*time.Second {
		t.Errorf("Expected title wait timeout to be 15s, got %v", opts.TitleWaitTimeout)
	}
}
