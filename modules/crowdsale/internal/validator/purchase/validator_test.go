package purchasevalidator

import (
	"testing"
	"time"

	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/stretchr/testify/assert"
)

func TestChainKeepsFirstFailure(t *testing.T) {
	opening := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)
	closing := opening.Add(48 * time.Hour)

	v := New()
	assert.True(t, v.NotPaused(false))
	assert.False(t, v.WithinWindow(opening.Add(-time.Second), opening, closing))
	assert.False(t, v.Whitelisted(false, ethcommon.Address{}))
	assert.False(t, v.AboveMinimum(uint256.NewInt(1), uint256.NewInt(2)))

	assert.False(t, v.Valid)
	assert.ErrorIs(t, v.Err, errs.PhaseViolation)
}

func TestWindowIsInclusive(t *testing.T) {
	opening := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)
	closing := opening.Add(48 * time.Hour)

	for _, now := range []time.Time{opening, closing} {
		v := New()
		assert.True(t, v.WithinWindow(now, opening, closing), now)
	}
	v := New()
	assert.False(t, v.WithinWindow(closing.Add(time.Second), opening, closing))
}

func TestWithinCap(t *testing.T) {
	testCases := []struct {
		name         string
		contribution uint64
		value        uint64
		maxCap       uint64
		valid        bool
	}{
		{"below", 1, 1, 5, true},
		{"exact", 2, 3, 5, true},
		{"above", 3, 3, 5, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			got := v.WithinCap(uint256.NewInt(tc.contribution), uint256.NewInt(tc.value), uint256.NewInt(tc.maxCap))
			assert.Equal(t, tc.valid, got)
			if !tc.valid {
				assert.ErrorIs(t, v.Err, errs.CapExceeded)
			}
		})
	}
}
