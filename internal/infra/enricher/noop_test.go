package enricher

import (
	"context"
	"errors"
	"testing"
)

func TestNoOpSummarize(t *testing.T) {
	n := NewNoOp()
	if _, err := n.Summarize(context.Background(), "anything"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Summarize() error = %v, want ErrUnavailable", err)
	}
}

func TestNoOpScoreTechiness(t *testing.T) {
	n := NewNoOp()
	if _, err := n.ScoreTechiness(context.Background(), "anything"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ScoreTechiness() error = %v, want ErrUnavailable", err)
	}
}
