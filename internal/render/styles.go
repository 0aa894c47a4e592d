package render

import "github.com/charmbracelet/lipgloss"

const (
	accentColor  = "#2563EB" // Blue
	successColor = "#10B981" // Green
	warningColor = "#F59E0B" // Amber
	errorColor   = "#EF4444" // Red
	dimColor     = "#6B7280" // Gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentColor)).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor)).
			Italic(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	barFullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentColor))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))
)

var classStyles = map[Class]lipgloss.Style{
	ClassEmphasis:    lipgloss.NewStyle().Bold(true),
	ClassTotal:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColor)),
	ClassNegative:    lipgloss.NewStyle().Foreground(lipgloss.Color(errorColor)),
	ClassAggregate:   lipgloss.NewStyle().Bold(true).Underline(true),
	ClassIssue:       lipgloss.NewStyle().Foreground(lipgloss.Color(errorColor)),
	ClassPlaceholder: lipgloss.NewStyle().Foreground(lipgloss.Color(dimColor)),
	ClassRate:        lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)),
	ClassRefund:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(successColor)),
	ClassPayable:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(errorColor)),
	ClassPresent:     lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)),
	ClassFavorable:   lipgloss.NewStyle().Foreground(lipgloss.Color(successColor)),
	ClassInfo:        lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)),
	ClassCaution:     lipgloss.NewStyle().Foreground(lipgloss.Color(warningColor)),
	ClassDanger:      lipgloss.NewStyle().Foreground(lipgloss.Color(errorColor)),
	ClassRiskLow:     lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color(successColor)).Foreground(lipgloss.Color("#FFFFFF")),
	ClassRiskMedium:  lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color(warningColor)).Foreground(lipgloss.Color("#111827")),
	ClassRiskHigh:    lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color(errorColor)).Foreground(lipgloss.Color("#FFFFFF")),
}

// styled renders text with the style of class; ClassNone passes through.
func styled(class Class, text string) string {
	s, ok := classStyles[class]
	if !ok {
		return text
	}
	return s.Render(text)
}
