package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ftl/slte-ril/vibrator"
)

func newVibratorCmd() *cobra.Command {
	result := &cobra.Command{
		Use:   "vibrator",
		Short: "Read or write the vibrator intensity",
	}
	result.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current vibrator intensity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := openVibrator()
			if err != nil {
				return err
			}
			intensity, err := v.Intensity()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), intensity)
			return nil
		},
	})
	result.AddCommand(&cobra.Command{
		Use:   "set <intensity>",
		Short: fmt.Sprintf("Set the vibrator intensity (%d-%d, default %d)", vibrator.MinIntensity, vibrator.MaxIntensity, vibrator.DefaultIntensity),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intensity, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid intensity %s: %w", args[0], err)
			}
			v, err := openVibrator()
			if err != nil {
				return err
			}
			if vibrator.AboveWarningThreshold(intensity) {
				fmt.Fprintf(cmd.ErrOrStderr(), "intensity %d is above the warning threshold %d\n", intensity, vibrator.WarningThreshold)
			}
			return v.SetIntensity(intensity)
		},
	})
	return result
}

func openVibrator() (*vibrator.Vibrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return vibrator.New(cfg.Vibrator.Path), nil
}
