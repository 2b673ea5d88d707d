// Package faultlinecmder
package faultlinecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/faultlinehq/faultline/cmd/faultline/config"
	diagnosecmder "github.com/faultlinehq/faultline/cmd/faultline/diagnose"
	rulescmder "github.com/faultlinehq/faultline/cmd/faultline/rules"
	servecmder "github.com/faultlinehq/faultline/cmd/faultline/serve"
	versioncmder "github.com/faultlinehq/faultline/cmd/version"
)

const faultlineLongDesc string = `Faultline is a symbolic fault-diagnosis service.

It reasons over propositional Horn rules two ways:
  forward chaining    derive every reachable fact and flag fault hypotheses
  backward chaining   prove whether a specific fault follows from the evidence

Run the HTTP service with:
  faultline serve

Or diagnose straight from the terminal:
  faultline diagnose forward --fact battery_low
  faultline diagnose backward --goal fault_battery --fact battery_low`

const faultlineShortDesc string = "Faultline - Symbolic Fault Diagnosis"

func NewFaultlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faultline",
		Short: faultlineShortDesc,
		Long:  faultlineLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .faultline/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(diagnosecmder.NewDiagnoseCmd())
	cmd.AddCommand(rulescmder.NewRulesCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
