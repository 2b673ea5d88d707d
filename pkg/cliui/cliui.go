// Package cliui provides reusable terminal UI helpers (styles, marks,
// trace and proof-tree rendering) for faultline CLI commands.
package cliui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/faultlinehq/faultline/pkg/inference"
	"github.com/faultlinehq/faultline/pkg/kb"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	atomStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Atom renders an atom name, highlighting fault hypotheses.
func Atom(name string) string {
	if strings.HasPrefix(name, kb.FaultPrefix) {
		return faultStyle.Render(name)
	}
	return atomStyle.Render(name)
}

// RenderTrace renders a forward-chaining trace, one firing per line in
// firing order.
func RenderTrace(trace []inference.TraceEntry) string {
	if len(trace) == 0 {
		return DimStyle.Render("  (no rules fired)") + "\n"
	}

	var b strings.Builder
	for i, entry := range trace {
		ants := make([]string, len(entry.Antecedents))
		for j, a := range entry.Antecedents {
			ants[j] = Atom(a)
		}
		fmt.Fprintf(&b, "  %d. %s %s %s\n",
			i+1,
			strings.Join(ants, DimStyle.Render(" + ")),
			DimStyle.Render("→"),
			Atom(entry.Consequent),
		)
		if entry.Description != "" {
			fmt.Fprintf(&b, "     %s\n", DimStyle.Render(entry.Description))
		}
	}
	return b.String()
}

// RenderProof renders a proof tree with two-space indentation per level.
func RenderProof(proof []inference.ProofStep) string {
	var b strings.Builder
	renderSteps(&b, proof, 1)
	return b.String()
}

func renderSteps(b *strings.Builder, steps []inference.ProofStep, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, step := range steps {
		switch step.Kind {
		case inference.StepGiven:
			fmt.Fprintf(b, "%s%s %s %s\n", indent, SuccessMark, Atom(step.Goal), DimStyle.Render("(given)"))

		case inference.StepInferred:
			fmt.Fprintf(b, "%s%s %s %s\n", indent, SuccessMark, Atom(step.Goal), DimStyle.Render("(inferred)"))
			if step.Using != nil && step.Using.Description != "" {
				fmt.Fprintf(b, "%s  %s\n", indent, DimStyle.Render(step.Using.Description))
			}
			renderSteps(b, step.Subproof, depth+1)

		case inference.StepCycle:
			fmt.Fprintf(b, "%s%s %s %s\n", indent, FailMark, Atom(step.Goal), DimStyle.Render("(cycle)"))

		case inference.StepNotProvable:
			fmt.Fprintf(b, "%s%s %s %s\n", indent, FailMark, Atom(step.Goal), DimStyle.Render("(not provable)"))
		}
	}
}
