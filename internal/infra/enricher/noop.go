package enricher

import (
	"context"
)

// NoOp is an enricher that declines every request. With it configured,
// notifications carry only the source label and the linked title.
type NoOp struct{}

// NewNoOp creates a new NoOp enricher.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize always reports enrichment as unavailable.
func (n *NoOp) Summarize(_ context.Context, _ string) (string, error) {
	return "", ErrUnavailable
}

// ScoreTechiness always reports enrichment as unavailable.
func (n *NoOp) ScoreTechiness(_ context.Context, _ string) (int, error) {
	return 0, ErrUnavailable
}
