package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadConfig_Validation(t *testing.T) {
	cases := []struct {
		name string
		opts []func(*ThreadConfig)
		want error
	}{
		{"stack below minimum", []func(*ThreadConfig){WithStackSize(MinStackSize - 1)}, ErrInvalidStackSize},
		{"unknown policy", []func(*ThreadConfig){WithPolicy(PolicyInherit + 1)}, ErrInvalidPolicy},
		{"priority on other", []func(*ThreadConfig){WithPolicy(PolicyOther), WithPriority(5)}, ErrInvalidPriority},
		{"priority on inherit", []func(*ThreadConfig){WithPolicy(PolicyInherit), WithPriority(1)}, ErrInvalidPriority},
		{"plain other", []func(*ThreadConfig){WithPolicy(PolicyOther)}, nil},
		{"large stack", []func(*ThreadConfig){WithPolicy(PolicyInherit), WithStackSize(1 << 20)}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewThreadConfig(c.opts...)
			if c.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.want)
			}
		})
	}
}

func TestThreadConfig_RealtimePriorityRange(t *testing.T) {
	lo, hi, err := PriorityRange(PolicyFIFO)
	if err != nil {
		t.Skipf("no real-time range: %v", err)
	}

	_, err = NewThreadConfig(WithPriority(hi + 1))
	assert.ErrorIs(t, err, ErrInvalidPriority)
	_, err = NewThreadConfig(WithPriority(lo - 1))
	assert.ErrorIs(t, err, ErrInvalidPriority)

	c, err := NewThreadConfig(WithPolicy(PolicyRR), WithPriority(hi))
	require.NoError(t, err)
	assert.Equal(t, PolicyRR, c.Policy())
	assert.Equal(t, hi, c.Priority())
}

func TestThreadConfig_ExplicitPriorityWins(t *testing.T) {
	_, hi, err := PriorityRange(PolicyFIFO)
	if err != nil {
		t.Skipf("no real-time range: %v", err)
	}
	opts := make([]func(*ThreadConfig), 1, 4)
	opts[0] = WithPriority(hi - 1)

	th, err := NewRealtimeThread(func(int) {}, 0, hi, opts...)
	require.NoError(t, err)
	defer th.Destroy()
	assert.Equal(t, hi, th.Config().Priority())
	assert.Len(t, opts, 1)
	assert.Nil(t, opts[:2][1], "caller's backing array must be left untouched")
}

func TestThread_NilFunc(t *testing.T) {
	_, err := NewThread[int](nil, 0)
	assert.ErrorIs(t, err, ErrNilFunc)
	_, err = NewAutoThread[int](nil, 0)
	assert.ErrorIs(t, err, ErrNilFunc)
}

func TestPolicy_String(t *testing.T) {
	for p := PolicyFIFO; p <= PolicyInherit; p++ {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("deadline")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Equal(t, "Policy(9)", Policy(9).String())
}

func TestWithConfig_Shared(t *testing.T) {
	shared, err := NewThreadConfig(WithPolicy(PolicyInherit), WithStackSize(64<<10), WithName("base"))
	require.NoError(t, err)

	var seen [2]string
	a, err := NewThread(func(p *string) { *p = "a" }, &seen[0], WithConfig(shared))
	require.NoError(t, err)
	b, err := NewThread(func(p *string) { *p = "b" }, &seen[1], WithConfig(shared), WithName("rx"))
	require.NoError(t, err)

	assert.Equal(t, shared, a.Config())
	assert.Equal(t, "rx", b.Config().Name())
	assert.Equal(t, PolicyInherit, b.Config().Policy())
	assert.Equal(t, 64<<10, b.Config().StackSize())
	assert.Equal(t, "base", shared.Name(), "overrides must not leak into the shared value")

	require.NoError(t, a.Start())
	require.NoError(t, b.Start())
	a.Destroy()
	b.Destroy()
	assert.Equal(t, [2]string{"a", "b"}, seen)
}

func TestWithConfig_Revalidated(t *testing.T) {
	_, err := NewThreadConfig(WithConfig(ThreadConfig{}))
	assert.ErrorIs(t, err, ErrInvalidStackSize)

	base, err := NewThreadConfig(WithPolicy(PolicyOther))
	require.NoError(t, err)
	_, err = NewThreadConfig(WithConfig(base), WithPriority(3))
	assert.ErrorIs(t, err, ErrInvalidPriority)
}
