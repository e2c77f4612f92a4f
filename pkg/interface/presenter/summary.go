package presenter

import (
	"fmt"
	"strings"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// RenderSummary renders the end-of-run statistics using lipgloss
func RenderSummary(run *entity.RunReport, output string, width int) string {
	s := run.Summary()

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true).
		Padding(1, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Bold(true)

	dividerWidth := width - 10
	if dividerWidth < 20 {
		dividerWidth = 20
	}
	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(strings.Repeat("─", dividerWidth))

	row := func(key string, value any) string {
		return fmt.Sprintf("  %s %-22s %s\n", keyStyle.Render("✓"), key, valueStyle.Render(fmt.Sprint(value)))
	}

	ratio := 0.0
	if s.Total > 0 {
		ratio = float64(s.PresetHits) / float64(s.Total)
	}
	bar := progress.New(progress.WithSolidFill("#FF6B6B"), progress.WithWidth(dividerWidth/2))

	if output == "" {
		output = "stdout"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Reputation Check Complete") + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(row("Domains Checked", s.Total))
	b.WriteString(row("Preset List Hits", s.PresetHits))
	b.WriteString(row("Looked Up", s.LookedUp))
	b.WriteString(row("Provider Errors", s.ProviderErrors))
	b.WriteString(fmt.Sprintf("  %s %-22s %s\n", keyStyle.Render("✓"), "Unsafe Ratio", bar.ViewAs(ratio)))
	b.WriteString(row("Report", output))
	b.WriteString(divider + "\n")
	return b.String()
}
