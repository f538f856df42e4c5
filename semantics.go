// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx

import (
	"errors"
)

// Outcome classifies a load result based on bufx's extended semantics.
//
// OutcomeOK:          progress was made; the window grew.
// OutcomeExhausted:   the source reported end-of-data (the 0-byte signal).
// OutcomeWouldBlock:  no progress is possible right now; retry later.
// OutcomeMore:        progress happened and more completions are expected.
// OutcomeFailure:     any other error.
type Outcome uint8

const (
	OutcomeFailure Outcome = iota
	OutcomeOK
	OutcomeExhausted
	OutcomeWouldBlock
	OutcomeMore
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeExhausted:
		return "Exhausted"
	case OutcomeWouldBlock:
		return "WouldBlock"
	case OutcomeMore:
		return "More"
	default:
		return "Failure"
	}
}

// IsWouldBlock reports whether err carries the bufx would-block semantic.
// It returns true for ErrWouldBlock and wrappers (via errors.Is).
func IsWouldBlock(err error) bool { return errors.Is(err, ErrWouldBlock) }

// IsMore reports whether err carries the bufx multi-shot (more
// completions) semantic. It returns true for ErrMore and wrappers.
func IsMore(err error) bool { return errors.Is(err, ErrMore) }

// IsSemantic reports whether err represents a bufx semantic signal:
// either ErrWouldBlock or ErrMore (including wrapped forms).
func IsSemantic(err error) bool { return IsWouldBlock(err) || IsMore(err) }

// IsNonFailure reports whether err should be treated as a non-failure in
// load control flow: nil, ErrWouldBlock, or ErrMore.
//
// Typical usage: decide whether to keep a source active without logging
// an error or tearing down the connector.
func IsNonFailure(err error) bool { return err == nil || IsSemantic(err) }

// IsProgress reports whether the current call produced usable progress
// now: returns true for nil and ErrMore. In both cases the caller can
// proceed with delivered data; for ErrMore keep polling for subsequent
// completions.
func IsProgress(err error) bool { return err == nil || IsMore(err) }

// Classify maps err to an Outcome. Use when a compact switch is
// preferred over the predicates. It cannot see byte counts, so it never
// reports OutcomeExhausted; use ClassifyFill for load results.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	if IsWouldBlock(err) {
		return OutcomeWouldBlock
	}
	if IsMore(err) {
		return OutcomeMore
	}
	return OutcomeFailure
}

// ClassifyFill maps a (count, error) pair from Fill or Refill to an
// Outcome, distinguishing the designated end-of-source signal (0, nil)
// from both success and failure.
func ClassifyFill(n int, err error) Outcome {
	if err == nil {
		if n == 0 {
			return OutcomeExhausted
		}
		return OutcomeOK
	}
	return Classify(err)
}
