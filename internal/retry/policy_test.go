package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	require.NoError(t, p.Validate())
	assert.Equal(t, 3, p.MaxAttempts())
	assert.Equal(t, 30*time.Second, p.Timeout())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, p.Delays())
}

func TestDefaultPolicy_IsNotShared(t *testing.T) {
	p := DefaultPolicy()
	delays := p.Delays()
	delays[0] = time.Hour

	assert.Equal(t, time.Second, DefaultPolicy().DelayFor(1))
	assert.Equal(t, time.Second, p.DelayFor(1))
}

func TestNewPolicy_CopiesDelays(t *testing.T) {
	delays := []time.Duration{time.Millisecond, 2 * time.Millisecond}
	p, err := NewPolicy(2, time.Second, delays...)
	require.NoError(t, err)

	delays[0] = time.Hour
	assert.Equal(t, time.Millisecond, p.DelayFor(1))
}

func TestNewPolicy_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		timeout     time.Duration
		delays      []time.Duration
	}{
		{"zero attempts", 0, time.Second, nil},
		{"zero timeout", 3, 0, nil},
		{"negative timeout", 3, -time.Second, nil},
		{"negative delay", 3, time.Second, []time.Duration{time.Second, -time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.maxAttempts, tt.timeout, tt.delays...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPolicy))
			assert.True(t, errors.Is(err, flashbooth.ErrInvalidConfig))
		})
	}
}

func TestPolicy_ZeroValueInvalid(t *testing.T) {
	assert.Error(t, Policy{}.Validate())
}

func TestPolicy_DelayFor(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, 1*time.Second, p.DelayFor(1))
	assert.Equal(t, 2*time.Second, p.DelayFor(2))
	assert.Equal(t, 4*time.Second, p.DelayFor(3))
	assert.Equal(t, 4*time.Second, p.DelayFor(7), "attempts beyond the table reuse the last entry")

	empty := p.WithDelays()
	assert.Equal(t, time.Duration(0), empty.DelayFor(1))
}

func TestPolicy_WithOverridesReturnCopies(t *testing.T) {
	base := DefaultPolicy()

	tuned := base.WithMaxAttempts(5).WithTimeout(time.Second).WithDelays(10 * time.Millisecond)

	assert.Equal(t, 5, tuned.MaxAttempts())
	assert.Equal(t, time.Second, tuned.Timeout())
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, tuned.Delays())

	assert.Equal(t, 3, base.MaxAttempts())
	assert.Equal(t, 30*time.Second, base.Timeout())
	assert.Len(t, base.Delays(), 3)
}
