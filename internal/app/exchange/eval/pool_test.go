package eval

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sudarshand03/Optimal-Liver-Allocation/pkg/exchange/types"
)

func TestPool(t *testing.T) {
	t.Parallel()

	var pool = NewPool("TestPool")
	assert.NoError(t, pool.LoadDir("./testdata"))
	assert.Equal(t, 4, pool.NumPairs())
	assert.Equal(t, []int{1, 2, 3, 4}, pool.IDs())
	assert.Equal(t, []int{1, 2, 3}, pool.ExchangeIDs()) // pair 4 prefers a direct transplant

	pair, err := pool.Get(3)
	assert.NoError(t, err)
	assert.False(t, pair.Willing)
	assert.Equal(t, types.Profile{Size1: 0, Size2: 1, Blood: 0}, pair.X)
	assert.Equal(t, types.Profile{Size1: 0, Size2: 1, Blood: 1}, pair.Yr)

	_, err = pool.Get(99)
	assert.Equal(t, "no pair with id 99 in the pool", err.Error())
}

func TestPoolBadFile(t *testing.T) {
	t.Parallel()

	var badFile = "TestPoolBadFile.json"
	assert.NoError(t, os.WriteFile(badFile, []byte("not json"), 0600))

	var pool = NewPool("TestPoolBadFile")
	var err = pool.LoadFile(badFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Pool error decoding json file")

	err = os.RemoveAll(badFile)
	assert.NoError(t, err)
}

func TestPoolDimensionMismatch(t *testing.T) {
	t.Parallel()

	var badFile = "TestPoolDimensionMismatch.json"
	var record = `[{"id": 7, "x": [0, 1], "yl": [0, 1, 0], "yr": [0, 1, 1], "willing": true, "direct": false}]`
	assert.NoError(t, os.WriteFile(badFile, []byte(record), 0600))

	var pool = NewPool("TestPoolDimensionMismatch")
	var err = pool.LoadFile(badFile)
	assert.ErrorIs(t, err, types.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "pair 7")
	assert.Equal(t, 0, pool.NumPairs())

	err = os.RemoveAll(badFile)
	assert.NoError(t, err)
}

func TestPoolDuplicateID(t *testing.T) {
	t.Parallel()

	var badFile = "TestPoolDuplicateID.json"
	var records = `[
		{"id": 7, "x": [0, 1, 0], "yl": [0, 1, 0], "yr": [0, 1, 1], "willing": true, "direct": false},
		{"id": 7, "x": [0, 1, 1], "yl": [0, 1, 0], "yr": [0, 1, 1], "willing": true, "direct": false}
	]`
	assert.NoError(t, os.WriteFile(badFile, []byte(records), 0600))

	var pool = NewPool("TestPoolDuplicateID")
	var err = pool.LoadFile(badFile)
	assert.Contains(t, err.Error(), "duplicate pair id: 7")

	err = os.RemoveAll(badFile)
	assert.NoError(t, err)
}
