package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/modules/crowdsale"
	"github.com/gaze-network/tokensale/pkg/decimals"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const gweiDecimals = 9

type stageWindow struct {
	Stage  uint8     `json:"stage"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	MaxCap amount    `json:"maxCap"`
}

type getCrowdsaleResult struct {
	Address         string          `json:"address"`
	Owner           string          `json:"owner"`
	Wallet          string          `json:"wallet"`
	TokenWallet     string          `json:"tokenWallet"`
	OpeningTime     time.Time       `json:"openingTime"`
	ClosingTime     time.Time       `json:"closingTime"`
	Now             time.Time       `json:"now"`
	Phase           crowdsale.Phase `json:"phase"`
	Stage           uint8           `json:"stage"`
	Rate            string          `json:"rate"`
	InitialMaxCap   amount          `json:"initialMaxCap"`
	CurrentMaxCap   *amount         `json:"currentMaxCap"`
	MinContribution amount          `json:"minContribution"`
	MaxGasPrice     amount          `json:"maxGasPrice"`
	Raised          amount          `json:"raised"`
	RemainingTokens amount          `json:"remainingTokens"`
	Paused          bool            `json:"paused"`
	WhitelistSize   int             `json:"whitelistSize"`
	Stages          []stageWindow   `json:"stages"`
}

type getCrowdsaleResponse = HttpResponse[getCrowdsaleResult]

func (h *HttpHandler) GetCrowdsale(ctx *fiber.Ctx) (err error) {
	sale := h.contracts.Contracts().Crowdsale
	s := sale.Snapshot()

	windows, err := crowdsale.Schedule(s.OpeningTime, s.ClosingTime, s.InitialMaxCap)
	if err != nil {
		return errors.Wrap(err, "error during Schedule")
	}

	result := getCrowdsaleResult{
		Address:         s.Address.Hex(),
		Owner:           s.Owner.Hex(),
		Wallet:          s.Wallet.Hex(),
		TokenWallet:     s.TokenWallet.Hex(),
		OpeningTime:     s.OpeningTime,
		ClosingTime:     s.ClosingTime,
		Now:             s.Now,
		Phase:           s.Phase,
		Stage:           uint8(s.Stage),
		Rate:            s.Rate.Dec(),
		InitialMaxCap:   newEtherAmount(s.InitialMaxCap),
		MinContribution: newEtherAmount(s.MinContribution),
		MaxGasPrice:     newAmount(s.MaxGasPrice, gweiDecimals),
		Raised:          newEtherAmount(s.Raised),
		RemainingTokens: newAmount(s.RemainingTokens, decimals.Ether),
		Paused:          s.Paused,
		WhitelistSize:   s.WhitelistSize,
		Stages: lo.Map(windows, func(w crowdsale.StageWindow, _ int) stageWindow {
			return stageWindow{
				Stage:  uint8(w.Stage),
				Start:  w.Start,
				End:    w.End,
				MaxCap: newEtherAmount(w.MaxCap),
			}
		}),
	}
	if s.CurrentMaxCap != nil {
		result.CurrentMaxCap = lo.ToPtr(newEtherAmount(s.CurrentMaxCap))
	}

	return errors.WithStack(ctx.JSON(getCrowdsaleResponse{Result: &result}))
}
