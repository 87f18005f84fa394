package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/internal/config"
	"github.com/gaze-network/tokensale/modules/tokensale"
	"github.com/gaze-network/tokensale/pkg/decimals"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func NewScheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the configured crowdsale stages and timelock vesting tranches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := config.Load()
			plan, err := tokensale.NewSalePlan(cmd.Context(), conf.Modules.TokenSale)
			if err != nil {
				return errors.Wrap(err, "invalid token sale configuration")
			}
			return errors.WithStack(renderSchedule(cmd.OutOrStdout(), plan))
		},
	}
}

func renderSchedule(w io.Writer, plan tokensale.SalePlan) error {
	sale := plan.Crowdsale
	fmt.Fprintf(w, "Crowdsale %s, rate %s, minimum contribution %s, max gas price %s gwei\n",
		sale.Address.Hex(),
		sale.Rate.Dec(),
		decimals.FormatUnits(sale.MinContribution, decimals.Ether),
		decimals.FormatUnits(sale.MaxGasPrice, 9),
	)

	stages := tablewriter.NewWriter(w)
	stages.Header("Stage", "Start", "End", "Max Cap")
	for _, s := range plan.Stages {
		if err := stages.Append([]string{
			fmt.Sprintf("%d", s.Stage),
			s.Start.Format(time.RFC3339),
			s.End.Format(time.RFC3339),
			decimals.FormatUnits(s.MaxCap, decimals.Ether),
		}); err != nil {
			return errors.Wrap(err, "can't append stage row")
		}
	}
	if err := stages.Render(); err != nil {
		return errors.Wrap(err, "can't render stages")
	}

	tranches := tablewriter.NewWriter(w)
	tranches.Header("After", "Unlocked")
	for _, t := range plan.Tranches {
		if err := tranches.Append([]string{
			fmt.Sprintf("%d days", int64(t.Offset/(24*time.Hour))),
			fmt.Sprintf("%d/3", t.Thirds),
		}); err != nil {
			return errors.Wrap(err, "can't append tranche row")
		}
	}
	if err := tranches.Render(); err != nil {
		return errors.Wrap(err, "can't render tranches")
	}

	if len(plan.Timelocks) == 0 {
		return nil
	}
	locks := tablewriter.NewWriter(w)
	locks.Header("Timelock", "Owner", "Beneficiary")
	for _, l := range plan.Timelocks {
		if err := locks.Append([]string{l.Address.Hex(), l.Owner.Hex(), l.Beneficiary.Hex()}); err != nil {
			return errors.Wrap(err, "can't append timelock row")
		}
	}
	return errors.Wrap(locks.Render(), "can't render timelocks")
}
