package display

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/KaramelBytes/csvexplore-cli/internal/plot"
	"github.com/KaramelBytes/csvexplore-cli/internal/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Padding(0, 1)
	indexStyle  = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1).Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
)

// Format renders out as terminal text. Images are referenced, not drawn.
func Format(out Output, maxRows int) string {
	var parts []string
	if out.Err != nil {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("✗ Error: %v", out.Err)))
	}
	if out.Message != "" {
		parts = append(parts, out.Message)
	}
	if out.Table != nil {
		parts = append(parts, FormatTable(out.Table, maxRows))
	}
	if out.Image != nil {
		parts = append(parts, titleStyle.Render(out.Image.Title))
	}
	return strings.Join(parts, "\n\n")
}

// FormatTable draws t as a bordered table, truncated to maxRows data rows.
func FormatTable(t *analysis.Table, maxRows int) string {
	t = t.Truncate(maxRows)
	headers := append([]string{t.IndexName}, t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		ix := ""
		if i < len(t.Index) {
			ix = t.Index[i]
		}
		rows[i] = append([]string{ix}, r...)
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return indexStyle
			default:
				return cellStyle
			}
		})
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.String())
	return b.String()
}

// SaveImage writes img as <dir>/<name>.png, replacing any earlier plot of the same name.
func SaveImage(dir string, img *plot.Image) (string, error) {
	path := filepath.Join(utils.ExpandHome(dir), img.Name+".png")
	if err := utils.SafeWriteFile(path, img.PNG); err != nil {
		return "", fmt.Errorf("save plot: %w", err)
	}
	return path, nil
}

// Saved formats the confirmation line for a written plot.
func Saved(path string) string {
	return okStyle.Render("✓ Plot saved to " + path)
}
