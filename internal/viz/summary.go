package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/perturb/internal/storage"
)

// Summary renders the metadata of a stored run as a lipgloss panel.
func Summary(meta *storage.RunMetadata) string {
	var b strings.Builder

	b.WriteString(Title.Render("perturb " + meta.Preset))
	b.WriteString("\n")
	if meta.ID != "" {
		b.WriteString(Subtle.Render(meta.ID))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(Row("variant", string(meta.Variant)) + "\n")
	b.WriteString(Row("samples", fmt.Sprintf("%d", meta.Sweep.Samples)) + "\n")
	b.WriteString(Row("r1 range", fmt.Sprintf("%.4g .. %.4g m", meta.Sweep.Lower, meta.Sweep.Upper)) + "\n")
	b.WriteString(Row("prefactor", fmt.Sprintf("%.6e", meta.Prefactor)) + "\n")
	if meta.HasAnalytical {
		b.WriteString(Row("analytical", FormatValue(meta.Analytical, meta.Unit)) + "\n")
	}

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := meta.Metrics[name]
		switch name {
		case "peak":
			b.WriteString(Row(name, FormatValue(v, meta.Unit)) + "\n")
		case "peak_x":
			b.WriteString(Row(name, fmt.Sprintf("%.4g nm", v*1e9)) + "\n")
		case "invalid":
			// shown with the failures line below
		default:
			b.WriteString(Row(name, fmt.Sprintf("%.6g", v)) + "\n")
		}
	}

	status := StatusRunning.Render(fmt.Sprintf("%d/%d samples valid", meta.Sweep.Samples-meta.Invalid, meta.Sweep.Samples))
	if meta.Invalid > 0 {
		status = StatusFailed.Render(fmt.Sprintf("%d of %d samples failed", meta.Invalid, meta.Sweep.Samples))
	}
	b.WriteString("\n" + status)
	if meta.ElapsedMS > 0 {
		b.WriteString(Subtle.Render(fmt.Sprintf("  in %s", time.Duration(meta.ElapsedMS*float64(time.Millisecond)).Round(time.Millisecond))))
	}

	return Panel.Render(b.String())
}

// FormatValue prints v in scientific notation with its unit.
func FormatValue(v float64, unit string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if unit == "" {
		return fmt.Sprintf("%.6e", v)
	}
	return fmt.Sprintf("%.6e %s", v, unit)
}

// Table lays rows out as aligned columns with a highlighted header.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	var b strings.Builder
	b.WriteString(line(header, Title))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(line(row, lipgloss.NewStyle()))
	}
	return b.String()
}
