// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bufx_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"code.hybscloud.com/bufx"
)

// Helpers

// scriptedSource replays a fixed sequence of (bytes, err) steps, then
// reports EOF.
type scriptedSource struct {
	steps []struct {
		b   []byte
		err error
	}
	i int
}

func (s *scriptedSource) Read(p []byte) (int, error) {
	if s.i >= len(s.steps) {
		return 0, io.EOF
	}
	st := s.steps[s.i]
	s.i++
	if len(st.b) > 0 {
		n := copy(p, st.b)
		return n, st.err
	}
	return 0, st.err
}

func source(chunks ...[]byte) *scriptedSource {
	s := &scriptedSource{}
	for _, c := range chunks {
		s.steps = append(s.steps, struct {
			b   []byte
			err error
		}{b: c})
	}
	return s
}

// exhaustedSource always reports the 0-byte end-of-source signal.
type exhaustedSource struct{ calls int }

func (s *exhaustedSource) Read(p []byte) (int, error) {
	s.calls++
	return 0, io.EOF
}

func checkIndices(t *testing.T, c *bufx.Cursor, pos, filled, initialized int) {
	t.Helper()
	if c.Pos() != pos {
		t.Fatalf("Pos() = %d, want %d", c.Pos(), pos)
	}
	if c.Filled() != filled {
		t.Fatalf("Filled() = %d, want %d", c.Filled(), filled)
	}
	if c.Initialized() != initialized {
		t.Fatalf("Initialized() = %d, want %d", c.Initialized(), initialized)
	}
}

func TestCursor_New(t *testing.T) {
	c := bufx.NewCursor(8)
	if c.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8", c.Cap())
	}
	checkIndices(t, c, 0, 0, 0)
	if len(c.View()) != 0 {
		t.Fatalf("fresh cursor: View() length = %d, want 0", len(c.View()))
	}
}

func TestCursor_NewNegativeCapacity(t *testing.T) {
	c := bufx.NewCursor(-3)
	if c.Cap() != 0 {
		t.Fatalf("Cap() = %d, want 0", c.Cap())
	}
}

func TestCursor_RefillThenView(t *testing.T) {
	c := bufx.NewCursor(8)
	n, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("unexpected err %v", err)
	}
	if n != 4 {
		t.Fatalf("Refill = %d, want 4", n)
	}
	checkIndices(t, c, 0, 4, 4)
	if !bytes.Equal(c.View(), []byte{1, 2, 3, 4}) {
		t.Fatalf("View() = %v", c.View())
	}
}

func TestCursor_FillAppends(t *testing.T) {
	// pos=2, filled=5, then a 3-byte load: filled goes to 8.
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4, 5})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(2)
	checkIndices(t, c, 2, 5, 5)

	n, err := c.Fill(source([]byte{6, 7, 8}))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if n != 3 {
		t.Fatalf("Fill = %d, want 3", n)
	}
	if c.Filled() != 8 {
		t.Fatalf("Filled() = %d, want 8", c.Filled())
	}
	if c.Pos() != 2 {
		t.Fatalf("Fill must not move Pos: got %d", c.Pos())
	}
}

func TestCursor_RefillResets(t *testing.T) {
	// Same starting state as the append test; Refill starts over.
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4, 5})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(2)

	n, err := c.Refill(source([]byte{6, 7, 8}))
	if err != nil {
		t.Fatalf("refill: %v", err)
	}
	if n != 3 {
		t.Fatalf("Refill = %d, want 3", n)
	}
	checkIndices(t, c, 0, 3, 5)
	if !bytes.Equal(c.View(), []byte{6, 7, 8}) {
		t.Fatalf("View() = %v", c.View())
	}
}

func TestCursor_ExhaustionLeavesStateUnchanged(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(1)

	src := &exhaustedSource{}
	n, err := c.Fill(src)
	if n != 0 || err != nil {
		t.Fatalf("Fill on exhausted source: want (0, nil) got (%d, %v)", n, err)
	}
	checkIndices(t, c, 1, 3, 3)

	n, err = c.Refill(src)
	if n != 0 || err != nil {
		t.Fatalf("Refill on exhausted source: want (0, nil) got (%d, %v)", n, err)
	}
	checkIndices(t, c, 1, 3, 3)
	if src.calls != 2 {
		t.Fatalf("source calls = %d, want 2", src.calls)
	}
}

func TestCursor_DiscardIdempotent(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(2)

	c.Discard()
	checkIndices(t, c, 0, 0, 4)
	c.Discard()
	checkIndices(t, c, 0, 0, 4)
	if c.Cap() != 8 {
		t.Fatalf("Cap() changed: %d", c.Cap())
	}
}

func TestCursor_AdvanceClamps(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4})); err != nil {
		t.Fatalf("refill: %v", err)
	}

	c.Advance(10)
	if c.Pos() != 4 {
		t.Fatalf("Advance must clamp at Filled: Pos() = %d, want 4", c.Pos())
	}

	c.Advance(-5)
	if c.Pos() != 4 {
		t.Fatalf("negative Advance must be a no-op: Pos() = %d", c.Pos())
	}
}

func TestCursor_TryAdvanceContract(t *testing.T) {
	// capacity 8, pos 0, filled 4: TryAdvance(6) fails in place,
	// TryAdvance(4) lands exactly on filled.
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4})); err != nil {
		t.Fatalf("refill: %v", err)
	}

	if c.TryAdvance(6) {
		t.Fatal("TryAdvance(6) must fail with filled=4")
	}
	if c.Pos() != 0 {
		t.Fatalf("failed TryAdvance must not move Pos: got %d", c.Pos())
	}

	if !c.TryAdvance(4) {
		t.Fatal("TryAdvance(4) must succeed with filled=4")
	}
	if c.Pos() != 4 {
		t.Fatalf("Pos() = %d, want 4", c.Pos())
	}

	if c.TryAdvance(-1) {
		t.Fatal("negative TryAdvance must fail")
	}
}

// Regression: no sequence of TryAdvance calls may ever place the read
// position past the end of valid data.
func TestCursor_TryAdvanceNeverPassesFilled(t *testing.T) {
	c := bufx.NewCursor(16)
	if _, err := c.Refill(bytes.NewReader(bytes.Repeat([]byte{9}, 10))); err != nil {
		t.Fatalf("refill: %v", err)
	}
	for _, n := range []int{3, 3, 3, 3, 3, 100, 1, 1, 1} {
		c.TryAdvance(n)
		if c.Pos() > c.Filled() {
			t.Fatalf("Pos() = %d passed Filled() = %d", c.Pos(), c.Filled())
		}
	}
	if c.Pos() != 10 {
		t.Fatalf("Pos() = %d, want 10", c.Pos())
	}
}

func TestCursor_RetreatSaturates(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(3)

	c.Retreat(1)
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}

	c.Retreat(100)
	if c.Pos() != 0 {
		t.Fatalf("Retreat must saturate at 0: Pos() = %d", c.Pos())
	}

	c.Retreat(-2)
	if c.Pos() != 0 {
		t.Fatalf("negative Retreat must be a no-op: Pos() = %d", c.Pos())
	}
}

func TestCursor_TryRetreatContract(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(3)

	if c.TryRetreat(4) {
		t.Fatal("TryRetreat(4) must fail with pos=3")
	}
	if c.Pos() != 3 {
		t.Fatalf("failed TryRetreat must not move Pos: got %d", c.Pos())
	}

	if !c.TryRetreat(3) {
		t.Fatal("TryRetreat(3) must succeed with pos=3")
	}
	if c.Pos() != 0 {
		t.Fatalf("Pos() = %d, want 0", c.Pos())
	}

	if c.TryRetreat(1) {
		t.Fatal("TryRetreat(1) must fail at pos=0")
	}
	if c.TryRetreat(-1) {
		t.Fatal("negative TryRetreat must fail")
	}
}

func TestCursor_ConsumeAtomicity(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3})); err != nil {
		t.Fatalf("refill: %v", err)
	}

	calls := 0
	if c.Consume(5, func(p []byte) { calls++ }) {
		t.Fatal("Consume(5) must fail with only 3 bytes available")
	}
	if calls != 0 {
		t.Fatalf("failed Consume must not call f: calls = %d", calls)
	}
	checkIndices(t, c, 0, 3, 3)

	var got []byte
	if !c.Consume(2, func(p []byte) {
		calls++
		got = append(got, p...)
	}) {
		t.Fatal("Consume(2) must succeed")
	}
	if calls != 1 {
		t.Fatalf("Consume must call f exactly once: calls = %d", calls)
	}
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Fatalf("f received %v, want [1 2]", got)
	}
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}

	if c.Consume(-1, func(p []byte) { calls++ }) {
		t.Fatal("negative Consume must fail")
	}
	if !c.Consume(0, func(p []byte) {
		calls++
		if len(p) != 0 {
			t.Fatalf("Consume(0) slice length = %d", len(p))
		}
	}) {
		t.Fatal("Consume(0) must succeed")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

// Canonical usage cycle: refill, consume, clamp, discard, then hit
// end-of-source.
func TestCursor_RoundTripScenario(t *testing.T) {
	c := bufx.NewCursor(8)
	src := source([]byte{1, 2, 3, 4})

	n, err := c.Refill(src)
	if n != 4 || err != nil {
		t.Fatalf("Refill = (%d, %v), want (4, nil)", n, err)
	}
	checkIndices(t, c, 0, 4, 4)

	var got []byte
	if !c.Consume(2, func(p []byte) { got = append(got, p...) }) {
		t.Fatal("Consume(2) must succeed")
	}
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Fatalf("f received %v, want [1 2]", got)
	}
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}

	c.Advance(10)
	if c.Pos() != 4 {
		t.Fatalf("Advance(10) must clamp: Pos() = %d, want 4", c.Pos())
	}

	c.Discard()
	checkIndices(t, c, 0, 0, 4)

	n, err = c.Fill(src)
	if n != 0 || err != nil {
		t.Fatalf("Fill on exhausted source = (%d, %v), want (0, nil)", n, err)
	}
	checkIndices(t, c, 0, 0, 4)
}

func TestCursor_FillErrorPropagatesVerbatim(t *testing.T) {
	boom := errors.New("disk on fire")
	c := bufx.NewCursor(8)

	s := &scriptedSource{}
	s.steps = append(s.steps, struct {
		b   []byte
		err error
	}{err: boom})

	_, err := c.Fill(s)
	if err != boom {
		t.Fatalf("Fill must propagate the source error unchanged: got %v", err)
	}
	checkIndices(t, c, 0, 0, 0)

	_, err = c.Fill(&scriptedSource{steps: []struct {
		b   []byte
		err error
	}{{err: bufx.ErrWouldBlock}}})
	if err != bufx.ErrWouldBlock {
		t.Fatalf("want ErrWouldBlock got %v", err)
	}
}

func TestCursor_FillCommitsPartialProgressBeforeError(t *testing.T) {
	boom := errors.New("late failure")
	c := bufx.NewCursor(8)

	s := &scriptedSource{steps: []struct {
		b   []byte
		err error
	}{{b: []byte{7, 8}, err: boom}}}

	n, err := c.Fill(s)
	if n != 2 {
		t.Fatalf("Fill = %d, want 2", n)
	}
	if err != boom {
		t.Fatalf("want propagated error, got %v", err)
	}
	checkIndices(t, c, 0, 2, 2)
	if !bytes.Equal(c.View(), []byte{7, 8}) {
		t.Fatalf("View() = %v", c.View())
	}
}

func TestCursor_FillWithFullWindow(t *testing.T) {
	c := bufx.NewCursor(4)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4})); err != nil {
		t.Fatalf("refill: %v", err)
	}

	// Window occupies the whole arena: there is no free space to load
	// into, and the untouched source must stay untouched in spirit.
	n, err := c.Fill(bytes.NewReader([]byte{5, 6}))
	if n != 0 || err != nil {
		t.Fatalf("Fill with full window = (%d, %v), want (0, nil)", n, err)
	}
	checkIndices(t, c, 0, 4, 4)
}

func TestCursor_InitializedSurvivesReuse(t *testing.T) {
	c := bufx.NewCursor(8)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Discard()
	if _, err := c.Refill(bytes.NewReader([]byte{9, 9})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	// The high-water mark never regresses.
	checkIndices(t, c, 0, 2, 6)
}

func TestCursor_ViewNeverExposesBeyondInitialized(t *testing.T) {
	c := bufx.NewCursor(16)
	if _, err := c.Refill(bytes.NewReader([]byte{1, 2, 3, 4, 5})); err != nil {
		t.Fatalf("refill: %v", err)
	}
	c.Advance(2)

	v := c.View()
	if len(v) != c.Filled()-c.Pos() {
		t.Fatalf("View() length = %d, want %d", len(v), c.Filled()-c.Pos())
	}
	if c.Pos()+len(v) > c.Initialized() {
		t.Fatalf("View() reaches offset %d past Initialized() = %d",
			c.Pos()+len(v), c.Initialized())
	}
}
