package rowsource

import (
	"context"
	"iter"

	"github.com/hupe1980/pcstgo/resource"
)

// ThrottleEdges wraps src so that each row waits on the limiter's row rate
// before being delivered. With a nil limiter the source passes through
// unchanged.
func ThrottleEdges(src EdgeSource, l *resource.Limiter) EdgeSource {
	if l == nil {
		return src
	}
	return &throttledEdges{src: src, l: l}
}

type throttledEdges struct {
	src EdgeSource
	l   *resource.Limiter
}

func (t *throttledEdges) EdgeRows(ctx context.Context) iter.Seq2[EdgeRow, error] {
	return func(yield func(EdgeRow, error) bool) {
		for row, err := range t.src.EdgeRows(ctx) {
			if err == nil {
				err = WrapError("edges", t.l.WaitRow(ctx))
			}
			if err != nil {
				yield(EdgeRow{}, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// ThrottlePrizes is the prize-row counterpart of ThrottleEdges.
func ThrottlePrizes(src PrizeSource, l *resource.Limiter) PrizeSource {
	if l == nil {
		return src
	}
	return &throttledPrizes{src: src, l: l}
}

type throttledPrizes struct {
	src PrizeSource
	l   *resource.Limiter
}

func (t *throttledPrizes) PrizeRows(ctx context.Context) iter.Seq2[PrizeRow, error] {
	return func(yield func(PrizeRow, error) bool) {
		for row, err := range t.src.PrizeRows(ctx) {
			if err == nil {
				err = WrapError("prizes", t.l.WaitRow(ctx))
			}
			if err != nil {
				yield(PrizeRow{}, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}
