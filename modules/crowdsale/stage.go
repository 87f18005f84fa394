package crowdsale

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
)

// Stage is the 1-based purchase tier. Each stage doubles the cap of the one before.
type Stage uint8

const (
	Stage1 Stage = iota + 1
	Stage2
	Stage3
	Stage4
)

// Stage start offsets from the opening time.
const (
	Stage2Offset = 24 * time.Hour
	Stage3Offset = 36 * time.Hour
	Stage4Offset = 48 * time.Hour
)

// Multiplier is the factor applied to the initial max cap.
func (s Stage) Multiplier() uint64 {
	if s < Stage1 || s > Stage4 {
		return 0
	}
	return 1 << (s - 1)
}

// StageAt returns the stage active at now.
// It fails with errs.PhaseViolation outside [openingTime, closingTime].
func StageAt(now, openingTime, closingTime time.Time) (Stage, error) {
	if now.Before(openingTime) || now.After(closingTime) {
		return 0, errors.Wrapf(errs.PhaseViolation, "no stage at %s", now.Format(time.RFC3339))
	}
	switch elapsed := now.Sub(openingTime); {
	case elapsed < Stage2Offset:
		return Stage1, nil
	case elapsed < Stage3Offset:
		return Stage2, nil
	case elapsed < Stage4Offset:
		return Stage3, nil
	default:
		return Stage4, nil
	}
}

// MaxCap returns initialMaxCap scaled by the stage multiplier.
func MaxCap(initialMaxCap *uint256.Int, stage Stage) (*uint256.Int, error) {
	m := stage.Multiplier()
	if m == 0 {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid stage %d", stage)
	}
	maxCap, overflow := new(uint256.Int).MulOverflow(initialMaxCap, uint256.NewInt(m))
	if overflow {
		return nil, errors.Wrap(errs.Overflow, "max cap")
	}
	return maxCap, nil
}

// Phase is the derived lifecycle position of the sale.
type Phase string

const (
	PhasePreSale  Phase = "PRE_SALE"
	PhaseStage1   Phase = "STAGE_1"
	PhaseStage2   Phase = "STAGE_2"
	PhaseStage3   Phase = "STAGE_3"
	PhaseStage4   Phase = "STAGE_4"
	PhasePostSale Phase = "POST_SALE"
)

var stagePhases = map[Stage]Phase{
	Stage1: PhaseStage1,
	Stage2: PhaseStage2,
	Stage3: PhaseStage3,
	Stage4: PhaseStage4,
}

func PhaseAt(now, openingTime, closingTime time.Time) Phase {
	if now.Before(openingTime) {
		return PhasePreSale
	}
	stage, err := StageAt(now, openingTime, closingTime)
	if err != nil {
		return PhasePostSale
	}
	return stagePhases[stage]
}

// StageWindow is one row of the stage schedule.
type StageWindow struct {
	Stage Stage
	Start time.Time
	// End is exclusive except for the last stage, which ends at the closing time inclusive.
	End    time.Time
	MaxCap *uint256.Int
}

// Schedule lays out every stage that starts on or before closingTime.
func Schedule(openingTime, closingTime time.Time, initialMaxCap *uint256.Int) ([]StageWindow, error) {
	offsets := []time.Duration{0, Stage2Offset, Stage3Offset, Stage4Offset}
	windows := make([]StageWindow, 0, len(offsets))
	for i, offset := range offsets {
		start := openingTime.Add(offset)
		if start.After(closingTime) {
			break
		}
		end := closingTime
		if i+1 < len(offsets) {
			if next := openingTime.Add(offsets[i+1]); next.Before(closingTime) {
				end = next
			}
		}
		stage := Stage(i + 1)
		maxCap, err := MaxCap(initialMaxCap, stage)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		windows = append(windows, StageWindow{Stage: stage, Start: start, End: end, MaxCap: maxCap})
	}
	return windows, nil
}
