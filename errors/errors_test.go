package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseInverse,
				Kind:   KindShapeMismatch,
				Path:   []string{"scale[1]", "angle[3]"},
				Detail: "shape [4 5], expected [5 4]",
			},
			contains: []string{"[inverse]", "shape_mismatch", "scale[1].angle[3]", "shape [4 5]"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseForward,
				Kind:  KindRankMismatch,
			},
			contains: []string{"[forward]", "rank_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseNative,
				Kind:   KindNativeFailure,
				Detail: "transform aborted",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[native]", "native_failure", "transform aborted", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseForward,
		Kind:  KindNativeFailure,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseForward,
		Kind:  KindRankMismatch,
		Path:  []string{"foo"},
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseForward, Kind: KindRankMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseInverse, Kind: KindRankMismatch}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseForward, Kind: KindEmptyBuffer}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseForward, Kind: KindRankMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestIsStructural(t *testing.T) {
	if !IsStructural(ScaleMismatch(PhaseInverse, 2, 3)) {
		t.Error("scale mismatch should be structural")
	}
	if !IsStructural(RankMismatch(PhaseForward, 1, 2)) {
		t.Error("rank mismatch should be structural")
	}
	if IsStructural(Native(PhaseForward, errors.New("boom"))) {
		t.Error("native failure should not be structural")
	}
	if IsStructural(errors.New("plain")) {
		t.Error("plain errors should not be structural")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseInverse, KindShapeMismatch).
		Path("scale[0]", "angle[1]").
		Value([]int{3, 4}).
		Cause(cause).
		Detail("expected %v, got %v", []int{4, 3}, []int{3, 4}).
		Build()

	if err.Phase != PhaseInverse {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseInverse)
	}
	if err.Kind != KindShapeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindShapeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "scale[0]" || err.Path[1] != "angle[1]" {
		t.Errorf("Path = %v, want [scale[0] angle[1]]", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected [4 3], got [3 4]" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("RankMismatch", func(t *testing.T) {
		err := RankMismatch(PhaseForward, 1, 2)
		if err.Kind != KindRankMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindRankMismatch)
		}
		if err.Value != 1 {
			t.Errorf("Value = %v, want 1", err.Value)
		}
		if !containsSubstring(err.Detail, "rank 1") {
			t.Errorf("Detail = %v, should contain got rank", err.Detail)
		}
	})

	t.Run("ScaleMismatch", func(t *testing.T) {
		err := ScaleMismatch(PhaseInverse, 2, 3)
		if err.Kind != KindScaleMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindScaleMismatch)
		}
		if !containsSubstring(err.Detail, "2") || !containsSubstring(err.Detail, "3") {
			t.Errorf("Detail = %v, should contain both counts", err.Detail)
		}
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		err := ShapeMismatch(PhaseInverse, []string{"scale[1]"}, []int{3, 4}, []int{4, 3})
		if err.Kind != KindShapeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindShapeMismatch)
		}
		if len(err.Path) != 1 {
			t.Errorf("Path = %v, want one element", err.Path)
		}
	})

	t.Run("EmptyBuffer", func(t *testing.T) {
		err := EmptyBuffer(PhaseForward)
		if err.Kind != KindEmptyBuffer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindEmptyBuffer)
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument(PhaseQuery, "nbscales %d < 1", 0)
		if err.Kind != KindInvalidArgument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidArgument)
		}
		if err.Detail != "nbscales 0 < 1" {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseForward, 1024)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !containsSubstring(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("Native", func(t *testing.T) {
		cause := errors.New("segfault avoided")
		err := Native(PhaseInverse, cause)
		if err.Kind != KindNativeFailure {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNativeFailure)
		}
		if !errors.Is(err, &Error{Phase: PhaseInverse, Kind: KindNativeFailure}) {
			t.Error("errors.Is should match phase and kind")
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the cause")
		}
	})
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && containsSubstringHelper(s, substr)))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
