package crowdsale

import (
	"testing"
	"time"

	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAt(t *testing.T) {
	opening := time.Date(2018, 3, 2, 0, 0, 0, 0, time.UTC)
	closing := opening.Add(2 * day)

	testCases := []struct {
		offset   time.Duration
		expected Stage
	}{
		{0, Stage1},
		{Stage2Offset - time.Second, Stage1},
		{Stage2Offset, Stage2},
		{Stage3Offset - time.Second, Stage2},
		{Stage3Offset, Stage3},
		{Stage4Offset - time.Second, Stage3},
		{Stage4Offset, Stage4},
		{2 * day, Stage4},
	}
	for _, tc := range testCases {
		t.Run(tc.offset.String(), func(t *testing.T) {
			stage, err := StageAt(opening.Add(tc.offset), opening, closing)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stage)
		})
	}

	_, err := StageAt(opening.Add(-time.Second), opening, closing)
	assert.ErrorIs(t, err, errs.PhaseViolation)
	_, err = StageAt(closing.Add(time.Second), opening, closing)
	assert.ErrorIs(t, err, errs.PhaseViolation)
}

func TestMaxCap(t *testing.T) {
	initial := uint256.NewInt(5)
	for stage, expected := range map[Stage]uint64{Stage1: 5, Stage2: 10, Stage3: 20, Stage4: 40} {
		maxCap, err := MaxCap(initial, stage)
		require.NoError(t, err)
		assert.Equal(t, uint256.NewInt(expected), maxCap)
	}

	_, err := MaxCap(initial, 0)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	huge := new(uint256.Int).SetAllOne()
	_, err = MaxCap(huge, Stage2)
	assert.ErrorIs(t, err, errs.Overflow)
}

func TestPhaseAt(t *testing.T) {
	opening := time.Date(2018, 3, 2, 0, 0, 0, 0, time.UTC)
	closing := opening.Add(3 * day)

	assert.Equal(t, PhasePreSale, PhaseAt(opening.Add(-time.Second), opening, closing))
	assert.Equal(t, PhaseStage1, PhaseAt(opening, opening, closing))
	assert.Equal(t, PhaseStage3, PhaseAt(opening.Add(Stage3Offset), opening, closing))
	assert.Equal(t, PhaseStage4, PhaseAt(closing, opening, closing))
	assert.Equal(t, PhasePostSale, PhaseAt(closing.Add(time.Second), opening, closing))
}

func TestSchedule(t *testing.T) {
	opening := time.Date(2018, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("full", func(t *testing.T) {
		windows, err := Schedule(opening, opening.Add(2*day), uint256.NewInt(1))
		require.NoError(t, err)
		require.Len(t, windows, 4)
		assert.Equal(t, opening.Add(Stage2Offset), windows[0].End)
		assert.Equal(t, opening.Add(2*day), windows[3].End)
		assert.Equal(t, uint256.NewInt(8), windows[3].MaxCap)
	})

	t.Run("short sale", func(t *testing.T) {
		windows, err := Schedule(opening, opening.Add(30*time.Hour), uint256.NewInt(1))
		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.Equal(t, opening.Add(30*time.Hour), windows[1].End)
	})
}
