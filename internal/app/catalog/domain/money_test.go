package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := NewMoney(24990, 100)
		require.NoError(t, err)
		assert.Equal(t, "249.90", m.String())
	})

	t.Run("zero denominator", func(t *testing.T) {
		_, err := NewMoney(1, 0)
		assert.Error(t, err)
	})
}

func TestParseMoney(t *testing.T) {
	t.Run("decimal string", func(t *testing.T) {
		m, err := ParseMoney("249.90")
		require.NoError(t, err)
		assert.InDelta(t, 249.90, m.Float64(), 0.0001)
		assert.False(t, m.IsNegative())
	})

	t.Run("integer string", func(t *testing.T) {
		m, err := ParseMoney("100")
		require.NoError(t, err)
		assert.Equal(t, int64(100), m.Num())
		assert.Equal(t, int64(1), m.Denom())
	})

	t.Run("negative", func(t *testing.T) {
		m, err := ParseMoney("-5")
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseMoney("abc")
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseMoney("")
		assert.Error(t, err)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	a, _ := NewMoney(200, 2)
	b, _ := NewMoney(100, 1)
	zero, _ := NewMoney(0, 1)

	assert.True(t, a.Equals(b)) // 200/2 == 100/1
	assert.True(t, zero.IsZero())
	assert.False(t, a.IsZero())
	assert.True(t, a.IsSafeForStorage())
}

func TestMoney_Copy(t *testing.T) {
	a, _ := NewMoney(100, 1)
	c := a.Copy()
	assert.True(t, a.Equals(c))
	assert.NotSame(t, a, c)
}
