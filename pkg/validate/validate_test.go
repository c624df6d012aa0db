package validate

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorfFormats(t *testing.T) {
	err := Errorf("dob %q is not a date", "junk")
	if err.Error() != `dob "junk" is not a date` {
		t.Errorf("message = %q", err.Error())
	}
}

func TestIsError(t *testing.T) {
	if !IsError(Errorf("bad input")) {
		t.Error("Errorf result should be a client input error")
	}
	if !IsError(fmt.Errorf("update: %w", Errorf("bad input"))) {
		t.Error("wrapped client input error should still match")
	}
	if IsError(errors.New("connection refused")) {
		t.Error("plain errors must not match")
	}
	if IsError(nil) {
		t.Error("nil must not match")
	}
}
