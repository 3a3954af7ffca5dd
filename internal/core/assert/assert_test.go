package assert

import (
	"strings"
	"testing"
)

func TestThatPasses(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	That(true, "never shown")
}

func TestThatPanicsWithError(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic value, got %T", r)
		}
		if !strings.Contains(err.Error(), "index 7 out of range") {
			t.Fatalf("unexpected message: %v", err)
		}
	}()
	That(false, "index %d out of range", 7)
}
