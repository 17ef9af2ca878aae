package pipeline_test

import (
	"errors"
	"strings"
	"testing"

	"resonate/internal/pipeline"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("column missing")
	err := pipeline.Wrap(pipeline.ErrStructural, "remote", "load csv", "required column absent", base)
	if !errors.Is(err, pipeline.ErrStructural) {
		t.Fatalf("expected structural marker in %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause in %v", err)
	}
	if !strings.Contains(err.Error(), "remote: load csv") {
		t.Fatalf("missing context in %v", err)
	}
}

func TestWrapNilMarkerDefaultsToEnvironment(t *testing.T) {
	err := pipeline.Wrap(nil, "report", "write csv", "", errors.New("disk full"))
	if !errors.Is(err, pipeline.ErrEnvironment) {
		t.Fatalf("expected environment marker in %v", err)
	}
}

func TestIsStructural(t *testing.T) {
	if pipeline.IsStructural(errors.New("plain")) {
		t.Fatal("plain error misclassified")
	}
	if !pipeline.IsStructural(pipeline.Wrap(pipeline.ErrStructural, "a", "b", "c", nil)) {
		t.Fatal("structural error not classified")
	}
}
