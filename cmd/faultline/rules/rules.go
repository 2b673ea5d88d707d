// Package rulescmder provides the rules command for inspecting and
// validating rule sets.
package rulescmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faultlinehq/faultline/pkg/cliui"
	"github.com/faultlinehq/faultline/pkg/config"
	"github.com/faultlinehq/faultline/pkg/kb"
)

const rulesLongDesc string = `Inspect and validate faultline rule sets.

  faultline rules list                 Show the loaded rule sets
  faultline rules check <file.yaml>    Validate a YAML rule file`

const rulesShortDesc string = "Inspect and validate rule sets"

func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: rulesShortDesc,
		Long:  rulesLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

type listCommander struct {
	forwardPath  string
	backwardPath string
}

func newListCmd() *cobra.Command {
	cmder := &listCommander{}
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the loaded rule sets",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, fs, config.FlagForwardRules, &cmder.forwardPath)
	config.AddStringFlag(cmd, fs, config.FlagBackwardRules, &cmder.backwardPath)

	return cmd
}

func (c *listCommander) run() error {
	forward, backward, err := kb.Resolve(c.forwardPath, c.backwardPath)
	if err != nil {
		return err
	}

	printRuleSet(forward)
	printRuleSet(backward)
	return nil
}

func printRuleSet(set *kb.RuleSet) {
	fmt.Printf("\n%s %s\n", cliui.KeyStyle.Render(set.Name()), cliui.DimStyle.Render(fmt.Sprintf("(%d rules)", set.Len())))

	for _, r := range set.Rules() {
		ants := make([]string, len(r.Antecedents))
		for i, a := range r.Antecedents {
			ants[i] = cliui.Atom(a)
		}
		fmt.Printf("  %s %s %s\n",
			strings.Join(ants, cliui.DimStyle.Render(" + ")),
			cliui.DimStyle.Render("→"),
			cliui.Atom(r.Consequent),
		)
		if r.Description != "" {
			fmt.Printf("    %s\n", cliui.DimStyle.Render(r.Description))
		}
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.yaml>",
		Short: "Validate a YAML rule file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}

	return cmd
}

func runCheck(path string) error {
	set, err := kb.LoadRuleSet(path)
	if err != nil {
		return fmt.Errorf("%s %w", cliui.FailMark, err)
	}

	fmt.Printf("%s %s: %d rules OK\n", cliui.SuccessMark, path, set.Len())
	return nil
}
