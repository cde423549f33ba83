package errorsx

import "testing"

func TestWrapAndReason(t *testing.T) {
	err := Wrap(assertErr{}, ReasonCompleteCall)
	if Reason(err) != ReasonCompleteCall {
		t.Fatalf("expected reason %s, got %s", ReasonCompleteCall, Reason(err))
	}
	if !HasReason(err, ReasonCompleteCall) {
		t.Fatalf("expected HasReason true")
	}
}

func TestWrapPreservesExistingReason(t *testing.T) {
	first := Wrap(assertErr{}, ReasonClassifyCall)
	second := Wrap(first, ReasonCompleteCall)
	if Reason(second) != ReasonClassifyCall {
		t.Fatalf("expected reason preserved, got %s", Reason(second))
	}
}

func TestReasonNilError(t *testing.T) {
	if Wrap(nil, ReasonStoreSave) != nil {
		t.Fatalf("expected nil passthrough")
	}
	if Reason(nil) != ReasonUnknown {
		t.Fatalf("expected unknown reason for nil error")
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
