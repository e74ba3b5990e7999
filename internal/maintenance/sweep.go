package maintenance

import (
	"context"
	"errors"
	"time"
)

// Budget bounds a sweep in wall-clock time. A new page is started only while
// at least SafetyMargin of MaxDuration remains.
type Budget struct {
	MaxDuration  time.Duration
	SafetyMargin time.Duration
	Now          func() time.Time
}

func (b Budget) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Page is the outcome of one unit of sweep work.
type Page struct {
	Processed int64
	Deleted   int64
	Updated   int64
	// More reports that another page may have work.
	More bool
}

// PageFunc processes one page.
type PageFunc func(ctx context.Context) (Page, error)

// SweepResult accumulates the pages a sweep ran.
type SweepResult struct {
	Pages     int
	Processed int64
	Deleted   int64
	Updated   int64
	// Stopped is set when the budget or the context ended the sweep while
	// pages were still pending.
	Stopped bool
	Elapsed time.Duration
}

// Sweep calls page until it reports no more work, the budget is exhausted or
// ctx is done. Pages run under a context that expires with the budget, so a
// page blocked in the store cannot outlive MaxDuration; a page cut off that
// way stops the sweep without error. Any other page error ends the sweep; the
// pages already run are kept in the result.
func Sweep(ctx context.Context, b Budget, page PageFunc) (SweepResult, error) {
	start := b.now()
	deadline := start.Add(b.MaxDuration)
	var res SweepResult

	pageCtx, cancel := context.WithTimeout(ctx, b.MaxDuration)
	defer cancel()

	for {
		if pageCtx.Err() != nil || deadline.Sub(b.now()) < b.SafetyMargin {
			res.Stopped = true
			break
		}

		p, err := page(pageCtx)
		if err != nil {
			res.Elapsed = b.now().Sub(start)
			if ctx.Err() == nil && errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
				res.Stopped = true
				return res, nil
			}
			return res, err
		}
		res.Pages++
		res.Processed += p.Processed
		res.Deleted += p.Deleted
		res.Updated += p.Updated
		if !p.More {
			break
		}
	}

	res.Elapsed = b.now().Sub(start)
	return res, nil
}
