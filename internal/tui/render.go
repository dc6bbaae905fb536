package tui

import (
	"fmt"
	"strings"

	"forathlete/internal/plan"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// workoutTypeIcon 训练类型图标
// workoutTypeIcon maps a workout type to its icon
func workoutTypeIcon(workoutType string) string {
	switch workoutType {
	case "run":
		return "🏃"
	case "badminton":
		return "🏸"
	case "strength":
		return "🏋"
	case "cross-training":
		return "🚴"
	case "rest":
		return "😴"
	default:
		return "·"
	}
}

// renderDayRow 渲染一行训练安排
// renderDayRow renders one day of the weekly board
func renderDayRow(weekday string, w plan.DayWorkout, completed, selected, today bool, theme Theme) string {
	check := "[ ]"
	if completed {
		check = "[✓]"
	}

	// 先补齐再上色，避免 ANSI 序列破坏对齐
	// Pad before styling so ANSI sequences do not break alignment
	label := fmt.Sprintf("%-10s", weekday)
	if today {
		label = theme.TodayStyle.Render(label)
	}

	badge := theme.WorkoutTypeStyle(w.Type).Render(fmt.Sprintf("%-14s", w.Type))

	detail := w.Workout
	if w.DurationMinutes > 0 {
		detail = fmt.Sprintf("%s · %dmin", w.Workout, w.DurationMinutes)
	}
	if completed {
		detail = theme.DoneStyle.Render(detail)
	}

	row := fmt.Sprintf(" %s %s %s %s %s", check, workoutTypeIcon(w.Type), label, badge, detail)
	if selected {
		return theme.SelectedStyle.Render(row)
	}
	return row
}
