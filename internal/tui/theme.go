package tui

import "github.com/charmbracelet/lipgloss"

// Theme 定义 TUI 主题色彩和样式
// Theme defines TUI colors and styles
type Theme struct {
	// 基础色 / Base colors
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	TextDim lipgloss.Color
	Border  lipgloss.Color

	// 训练类型色 / Workout type colors
	Run       lipgloss.Color
	Badminton lipgloss.Color
	Strength  lipgloss.Color
	Cross     lipgloss.Color
	Rest      lipgloss.Color

	// 预构建样式 / Pre-built styles
	TitleStyle     lipgloss.Style
	SelectedStyle  lipgloss.Style
	DoneStyle      lipgloss.Style
	TodayStyle     lipgloss.Style
	StatusBarStyle lipgloss.Style
	OverlayStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	MutedStyle     lipgloss.Style
}

// DarkTheme 暗色主题（默认）
// DarkTheme is the default dark theme
func DarkTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Accent:  lipgloss.Color("#F59E0B"),
		Danger:  lipgloss.Color("#EF4444"),
		Success: lipgloss.Color("#10B981"),
		Muted:   lipgloss.Color("#6B7280"),
		Text:    lipgloss.Color("#E5E7EB"),
		TextDim: lipgloss.Color("#9CA3AF"),
		Border:  lipgloss.Color("#374151"),

		Run:       lipgloss.Color("#06B6D4"),
		Badminton: lipgloss.Color("#F59E0B"),
		Strength:  lipgloss.Color("#EF4444"),
		Cross:     lipgloss.Color("#10B981"),
		Rest:      lipgloss.Color("#6B7280"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.SelectedStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(lipgloss.Color("#1F2937")).
		Bold(true)

	t.DoneStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Strikethrough(true)

	t.TodayStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.StatusBarStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(lipgloss.Color("#111827"))

	t.OverlayStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	return t
}

// WorkoutTypeStyle 返回训练类型对应的徽标样式
// WorkoutTypeStyle returns the badge style for a workout type
func (t Theme) WorkoutTypeStyle(workoutType string) lipgloss.Style {
	var c lipgloss.Color
	switch workoutType {
	case "run":
		c = t.Run
	case "badminton":
		c = t.Badminton
	case "strength":
		c = t.Strength
	case "cross-training":
		c = t.Cross
	case "rest":
		c = t.Rest
	default:
		c = t.Muted
	}
	return lipgloss.NewStyle().Foreground(c)
}
