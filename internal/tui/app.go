package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"forathlete/internal/api"
	"forathlete/internal/coach"
	"forathlete/internal/i18n"
	"forathlete/internal/plan"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Tea Messages ---

// PlanMsg 计划加载或重新生成完成
// PlanMsg indicates the plan finished loading or regenerating
type PlanMsg struct {
	Env plan.Envelope
	Err error
}

// ToggleDoneMsg 完成状态同步结束
// ToggleDoneMsg indicates a completion toggle round-trip finished
type ToggleDoneMsg struct {
	Date string
	Err  error
}

// RecommendMsg 建议文本到达
// RecommendMsg carries recommendation text
type RecommendMsg struct{ Text string }

// AdjustMsg 今日调整结果
// AdjustMsg carries the result of applying an adjustment
type AdjustMsg struct {
	Workout plan.DayWorkout
	Err     error
}

// Board Bubble Tea 主 Model：周训练板
// Board is the main Bubble Tea model, the weekly training board
type Board struct {
	// 布局 / Layout
	width  int
	height int

	// 数据 / Data
	sync    *plan.Synchronizer
	flow    *coach.Flow
	checkin *coach.Checkin
	today   string

	// 状态 / State
	selected  int
	busy      bool
	overlay   string
	statusMsg string
	lastError string

	// 配置 / Config
	spin   spinner.Model
	theme  Theme
	keys   KeyMap
	locale *i18n.I18n
}

// NewBoard 创建训练板；checkin 为 nil 时今日调整不可用
// NewBoard creates the training board; a nil checkin disables today adjustment
func NewBoard(sync *plan.Synchronizer, flow *coach.Flow, checkin *coach.Checkin) Board {
	theme := DarkTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return Board{
		sync:    sync,
		flow:    flow,
		checkin: checkin,
		today:   time.Now().Format("2006-01-02"),
		spin:    sp,
		theme:   theme,
		keys:    DefaultKeyMap(),
		locale:  i18n.Global(),
	}
}

func (b Board) Init() tea.Cmd {
	return b.spin.Tick
}

func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case PlanMsg:
		b.busy = false
		if msg.Err != nil {
			b.lastError = b.describeErr(msg.Err, "plan.generate_failed")
			return b, nil
		}
		b.lastError = ""
		b.statusMsg = ""
		return b, nil

	case ToggleDoneMsg:
		if msg.Err != nil {
			// 同步器已回滚，界面只需提示 / The synchronizer already rolled back, just surface it
			b.statusMsg = b.describeErr(msg.Err, "plan.toggle_failed")
		} else {
			b.statusMsg = ""
		}
		return b, nil

	case RecommendMsg:
		b.busy = false
		b.overlay = msg.Text
		return b, nil

	case AdjustMsg:
		b.busy = false
		if msg.Err != nil {
			b.statusMsg = b.describeErr(msg.Err, "coach.adjust_failed")
			return b, nil
		}
		b.overlay = ""
		b.statusMsg = b.locale.T("coach.adjust_applied")
		return b, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit

	case key.Matches(msg, b.keys.Dismiss):
		if b.overlay != "" {
			b.overlay = ""
			b.flow.Dismiss()
		}
		return b, nil

	case key.Matches(msg, b.keys.PrevDay):
		if b.selected > 0 {
			b.selected--
		}
		return b, nil

	case key.Matches(msg, b.keys.NextDay):
		if b.selected < 6 {
			b.selected++
		}
		return b, nil

	case key.Matches(msg, b.keys.Toggle):
		if b.busy {
			return b, nil
		}
		env, _, ok := b.sync.Snapshot()
		if !ok {
			return b, nil
		}
		day := env.Plan.Days()[b.selected]
		return b, b.toggleCmd(day.Date, day.Type)

	case key.Matches(msg, b.keys.Regenerate):
		if b.busy {
			return b, nil
		}
		b.busy = true
		b.statusMsg = b.locale.T("plan.generating")
		return b, tea.Batch(b.spin.Tick, b.regenerateCmd())

	case key.Matches(msg, b.keys.Recommend):
		if b.busy {
			return b, nil
		}
		b.busy = true
		return b, tea.Batch(b.spin.Tick, b.recommendCmd())

	case key.Matches(msg, b.keys.Apply):
		if b.busy || b.overlay == "" || b.flow.Pending() == "" || b.checkin == nil {
			return b, nil
		}
		env, _, ok := b.sync.Snapshot()
		if !ok {
			return b, nil
		}
		var current plan.DayWorkout
		found := false
		for _, day := range env.Plan.Days() {
			if day.Date == b.today {
				current = day
				found = true
				break
			}
		}
		if !found {
			return b, nil
		}
		b.busy = true
		return b, tea.Batch(b.spin.Tick, b.applyCmd(current))
	}

	return b, nil
}

// describeErr 将错误映射到用户可读文案；401 意味着凭证已被网关钩子清除
// describeErr maps an error to a user-facing message; a 401 means the
// credential was already purged by the gateway hook
func (b Board) describeErr(err error, fallbackKey string) string {
	if api.IsUnauthorized(err) {
		return b.locale.T("auth.session_expired")
	}
	return b.locale.T(fallbackKey)
}

// --- Commands ---

func (b Board) toggleCmd(date, workoutType string) tea.Cmd {
	return func() tea.Msg {
		err := b.sync.ToggleCompletion(context.Background(), date, workoutType)
		return ToggleDoneMsg{Date: date, Err: err}
	}
}

func (b Board) regenerateCmd() tea.Cmd {
	return func() tea.Msg {
		env, err := b.sync.Regenerate(context.Background())
		return PlanMsg{Env: env, Err: err}
	}
}

func (b Board) recommendCmd() tea.Cmd {
	return func() tea.Msg {
		return RecommendMsg{Text: b.flow.Request(context.Background())}
	}
}

func (b Board) applyCmd(current plan.DayWorkout) tea.Cmd {
	return func() tea.Msg {
		w, err := b.flow.Apply(context.Background(), current, *b.checkin)
		return AdjustMsg{Workout: w, Err: err}
	}
}

// --- View ---

func (b Board) View() string {
	if b.width == 0 || b.height == 0 {
		return "Initializing..."
	}

	env, completions, ok := b.sync.Snapshot()
	if !ok {
		if b.lastError != "" {
			return b.theme.ErrorStyle.Render(" " + b.locale.T("plan.load_failed") + ": " + b.lastError)
		}
		return b.theme.MutedStyle.Render(" " + b.locale.T("plan.none"))
	}

	var parts []string
	parts = append(parts, b.renderTitle(env))
	parts = append(parts, "")

	if b.overlay != "" {
		parts = append(parts, b.renderOverlay())
	} else {
		parts = append(parts, b.renderWeek(env, completions)...)
	}

	parts = append(parts, "")
	parts = append(parts, b.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b Board) renderTitle(env plan.Envelope) string {
	title := fmt.Sprintf(" %s · %s", b.locale.T("plan.title"), env.Plan.WeekAnchor())
	if b.busy {
		title += "  " + b.spin.View()
	}
	return b.theme.TitleStyle.Render(title)
}

func (b Board) renderWeek(env plan.Envelope, completions map[string]bool) []string {
	rows := make([]string, 0, 7)
	for i, day := range env.Plan.Days() {
		rows = append(rows, renderDayRow(
			plan.WeekdayNames[i],
			day,
			completions[day.Date],
			i == b.selected,
			day.Date == b.today,
			b.theme,
		))
	}
	return rows
}

func (b Board) renderOverlay() string {
	width := b.width - 8
	if width > 72 {
		width = 72
	}

	body := RenderMarkdown(b.overlay, width)
	title := b.theme.TitleStyle.Render(b.locale.T("coach.recommend_title"))

	hint := b.locale.T("keys.dismiss")
	if b.flow.Pending() != "" && b.checkin != nil {
		hint = b.locale.T("keys.apply") + " · " + hint
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", b.theme.MutedStyle.Render(hint))
	return b.theme.OverlayStyle.Width(width).Render(content)
}

func (b Board) renderStatusBar() string {
	left := " " + fmt.Sprintf(b.locale.T("plan.completed_count"), b.sync.CompletedCount())
	if b.statusMsg != "" {
		left += " · " + b.statusMsg
	}
	if b.lastError != "" {
		left += " · " + b.theme.ErrorStyle.Render(b.lastError)
	}

	help := strings.Join([]string{
		b.locale.T("keys.toggle"),
		b.locale.T("keys.regenerate"),
		b.locale.T("keys.recommend"),
		b.locale.T("keys.quit"),
	}, "  ")
	right := b.theme.MutedStyle.Render(help) + " "

	gap := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return b.theme.StatusBarStyle.Width(b.width).Render(bar)
}

// Run 启动 Bubble Tea 训练板
// Run starts the Bubble Tea training board
func Run(sync *plan.Synchronizer, flow *coach.Flow, checkin *coach.Checkin) error {
	board := NewBoard(sync, flow, checkin)
	p := tea.NewProgram(board, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
