package sweep

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLinspace(t *testing.T) {
	xs, err := Linspace(0, 1e-9, 500)
	require.NoError(t, err)
	require.Len(t, xs, 500)
	assert.Equal(t, 0.0, xs[0])
	assert.Equal(t, 1e-9, xs[499])
	for i := 1; i < len(xs); i++ {
		assert.Greater(t, xs[i], xs[i-1], "not strictly increasing at %d", i)
	}
}

func TestLinspace_Small(t *testing.T) {
	xs, err := Linspace(2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, xs)

	xs, err = Linspace(0, 1, 5)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{0, 0.25, 0.5, 0.75, 1}, xs); diff != "" {
		t.Errorf("Linspace mismatch (-want +got):\n%s", diff)
	}
}

func TestLinspace_Errors(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		n      int
		want   error
	}{
		{"zero samples", 0, 1, 0, ErrEmptyDomain},
		{"negative samples", 0, 1, -3, ErrEmptyDomain},
		{"reversed", 1, 0, 10, ErrInvalidBounds},
		{"nan", math.NaN(), 1, 10, ErrInvalidBounds},
		{"inf", 0, math.Inf(1), 10, ErrInvalidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Linspace(tt.lo, tt.hi, tt.n)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSeries(t *testing.T) {
	s := NewSeries([]float64{1, 2, 3})
	require.NoError(t, s.Validate())
	assert.Equal(t, 3, s.InvalidCount())
	assert.True(t, math.IsNaN(s.Y[0]))

	s.Y[0], s.Valid[0] = 10, true
	s.Y[2], s.Valid[2] = 30, true

	assert.Equal(t, 1, s.InvalidCount())
	assert.Equal(t, []float64{10, 30}, s.ValidY())

	pts := s.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, Point{X: 1, Y: 10, Valid: true}, pts[0])
	assert.False(t, pts[1].Valid)

	scaled := s.Scale(2)
	assert.Equal(t, 20.0, scaled.Y[0])
	assert.Equal(t, 10.0, s.Y[0], "Scale must not mutate the receiver")
	assert.True(t, math.IsNaN(scaled.Y[1]))
	assert.Equal(t, s.Valid, scaled.Valid)
}

func TestSeries_ValidateMismatch(t *testing.T) {
	s := Series{X: []float64{1, 2}, Y: []float64{1}, Valid: []bool{true, true}}
	assert.ErrorIs(t, s.Validate(), ErrLengthMismatch)
}

func TestParallelFor(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, workers := range []int{0, 1, 3, 64} {
		out := make([]int, 100)
		err := ParallelFor(context.Background(), len(out), workers, func(_ context.Context, i int) error {
			out[i] = i * i
			return nil
		})
		require.NoError(t, err)
		for i, v := range out {
			require.Equal(t, i*i, v, "workers=%d index %d", workers, i)
		}
	}
}

func TestParallelFor_Error(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	var calls atomic.Int64
	err := ParallelFor(context.Background(), 1000, 4, func(_ context.Context, i int) error {
		calls.Add(1)
		if i == 10 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, calls.Load(), int64(1000))
}

func TestParallelFor_Canceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	err := ParallelFor(ctx, 100, 4, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}
