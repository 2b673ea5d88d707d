// Package diagnosecmder provides the diagnose command for running one-shot
// diagnoses from the terminal, in-process or against a running API server.
package diagnosecmder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faultlinehq/faultline/api"
	"github.com/faultlinehq/faultline/pkg/cliui"
	"github.com/faultlinehq/faultline/pkg/config"
	"github.com/faultlinehq/faultline/pkg/diagnose"
	"github.com/faultlinehq/faultline/pkg/kb"
)

const diagnoseLongDesc string = `Run a one-shot diagnosis from the terminal.

Facts are supplied with repeated --fact flags. Use subcommands to pick the
direction of inference:
  faultline diagnose forward   --fact battery_low
  faultline diagnose backward  --goal fault_battery --fact battery_low

Rule sets default to the builtin knowledge base; point --forward-rules or
--backward-rules at YAML files to diagnose against a custom one.

By default inference runs in-process. Pass --remote to send the request to a
running faultline API server instead; the server is picked from --api-target,
falling back to the client.api_target config value.`

const diagnoseShortDesc string = "Run a one-shot diagnosis"

type diagnoseCommander struct {
	facts        []string
	goal         string
	forwardPath  string
	backwardPath string

	remote    bool
	apiTarget string
}

func NewDiagnoseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: diagnoseShortDesc,
		Long:  diagnoseLongDesc,
	}

	cmd.AddCommand(newForwardCmd())
	cmd.AddCommand(newBackwardCmd())

	return cmd
}

func newForwardCmd() *cobra.Command {
	cmder := &diagnoseCommander{}
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Derive all reachable facts and flag fault hypotheses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmder.resolveTarget(cmd); err != nil {
				return err
			}
			return cmder.runForward()
		},
	}

	cmd.Flags().StringArrayVarP(&cmder.facts, "fact", "f", nil, "Known fact atom (repeatable)")
	cmd.Flags().BoolVar(&cmder.remote, "remote", false, "Diagnose via a running faultline API server")
	config.AddStringFlag(cmd, fs, config.FlagAPITarget, &cmder.apiTarget)
	config.AddStringFlag(cmd, fs, config.FlagForwardRules, &cmder.forwardPath)
	config.AddStringFlag(cmd, fs, config.FlagBackwardRules, &cmder.backwardPath)

	return cmd
}

func newBackwardCmd() *cobra.Command {
	cmder := &diagnoseCommander{}
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "backward",
		Short: "Prove whether a goal fact follows from the given facts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(cmder.goal) == "" {
				return fmt.Errorf("--goal is required")
			}
			if err := cmder.resolveTarget(cmd); err != nil {
				return err
			}
			return cmder.runBackward()
		},
	}

	cmd.Flags().StringArrayVarP(&cmder.facts, "fact", "f", nil, "Known fact atom (repeatable)")
	cmd.Flags().StringVarP(&cmder.goal, "goal", "g", "", "Goal atom to prove")
	cmd.Flags().BoolVar(&cmder.remote, "remote", false, "Diagnose via a running faultline API server")
	config.AddStringFlag(cmd, fs, config.FlagAPITarget, &cmder.apiTarget)
	config.AddStringFlag(cmd, fs, config.FlagForwardRules, &cmder.forwardPath)
	config.AddStringFlag(cmd, fs, config.FlagBackwardRules, &cmder.backwardPath)

	return cmd
}

// resolveTarget fills in the API target from config when --api-target was not
// given explicitly, so `config set client.api_target` applies to --remote runs.
func (c *diagnoseCommander) resolveTarget(cmd *cobra.Command) error {
	if !c.remote || cmd.Flags().Changed(config.FlagAPITarget) {
		return nil
	}

	configDir, _ := cmd.Flags().GetString("config-dir")
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c.apiTarget = cfg.Client.APITarget
	return nil
}

func (c *diagnoseCommander) service() (*diagnose.Service, error) {
	forward, backward, err := kb.Resolve(c.forwardPath, c.backwardPath)
	if err != nil {
		return nil, err
	}
	return diagnose.NewService(forward, backward), nil
}

func (c *diagnoseCommander) runForward() error {
	var report diagnose.ForwardReport

	if c.remote {
		if err := postDiagnose(c.apiTarget, "/diagnose/forward", api.FactsRequest{Facts: c.facts}, &report); err != nil {
			return err
		}
	} else {
		svc, err := c.service()
		if err != nil {
			return err
		}
		report = svc.Forward(c.facts)
	}

	fmt.Printf("\nInput facts:   %s\n", renderAtoms(report.InputFacts))
	fmt.Printf("Derived facts: %s\n", renderAtoms(report.DerivedFacts))
	fmt.Printf("\nTrace:\n%s", cliui.RenderTrace(report.Trace))

	if len(report.Faults) == 0 {
		fmt.Printf("\n%s no fault hypotheses derived\n\n", cliui.SuccessMark)
		return nil
	}

	fmt.Printf("\n%s fault hypotheses: %s\n\n", cliui.FailMark, renderAtoms(report.Faults))
	return nil
}

func (c *diagnoseCommander) runBackward() error {
	var report diagnose.BackwardReport

	if c.remote {
		if err := postDiagnose(c.apiTarget, "/diagnose/backward", api.BackwardRequest{Facts: c.facts, Goal: c.goal}, &report); err != nil {
			return err
		}
	} else {
		svc, err := c.service()
		if err != nil {
			return err
		}
		report = svc.Backward(c.facts, c.goal)
	}

	fmt.Printf("\nGoal:  %s\n", cliui.Atom(report.Goal))
	fmt.Printf("Facts: %s\n", renderAtoms(report.Facts))
	fmt.Printf("\nProof:\n%s", cliui.RenderProof(report.Proof))

	if report.Provable {
		fmt.Printf("\n%s %s is provable\n\n", cliui.SuccessMark, cliui.Atom(report.Goal))
	} else {
		fmt.Printf("\n%s %s is not provable\n\n", cliui.FailMark, cliui.Atom(report.Goal))
	}
	return nil
}

// postDiagnose sends a diagnosis request to a running API server and decodes
// the report into out.
func postDiagnose(apiTarget, path string, in, out any) error {
	target, err := url.Parse(apiTarget)
	if err != nil {
		return fmt.Errorf("invalid API target URL: %w", err)
	}
	target.Path = path

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to faultline API at %s: %w", apiTarget, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("diagnose request failed (HTTP %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func renderAtoms(atoms []string) string {
	if len(atoms) == 0 {
		return cliui.DimStyle.Render("(none)")
	}

	rendered := make([]string, len(atoms))
	for i, a := range atoms {
		rendered[i] = cliui.Atom(a)
	}
	return strings.Join(rendered, ", ")
}
