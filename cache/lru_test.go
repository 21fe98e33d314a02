// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)

	l, err := NewLRU[string, int](2)
	require.NoError(t, err)

	l.Add("a", 1)
	l.Add("b", 2)
	l.Add("c", 3)
	assert.Equal(t, 2, l.Len())

	_, ok := l.Get("a")
	assert.False(t, ok, "evicted")

	v, ok := l.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	l.Remove("c")
	_, ok = l.Get("c")
	assert.False(t, ok)
}

func TestLRU_GetOrLoad(t *testing.T) {
	l, err := NewLRU[string, int](10)
	require.NoError(t, err)

	loads := 0
	loader := func(key string) (int, error) {
		loads++
		return len(key), nil
	}

	for range 3 {
		v, err := l.GetOrLoad("four", loader)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	}
	assert.Equal(t, 1, loads)

	failure := errors.New("load failed")
	_, err = l.GetOrLoad("x", func(string) (int, error) { return 0, failure })
	assert.ErrorIs(t, err, failure)
	_, ok := l.Get("x")
	assert.False(t, ok)
}
