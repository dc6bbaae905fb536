package coach

import (
	"context"
	"sync"

	"forathlete/internal/i18n"
	"forathlete/internal/plan"
)

type recommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

type adjustRequest struct {
	CurrentWorkout plan.DayWorkout `json:"current_workout"`
	Checkin        Checkin         `json:"checkin"`
	Recommendation string          `json:"recommendation"`
}

// Flow 今日建议与调整流程。建议是短暂状态，只存在于
// “已请求”和“已应用/已关闭”之间，不持久化。
//
// Flow is the daily recommendation / adjustment flow. A recommendation is
// ephemeral state, alive only between "requested" and "applied/dismissed";
// it is never persisted.
type Flow struct {
	svc  *Service
	sync *plan.Synchronizer

	mu      sync.Mutex
	pending string
}

func NewFlow(svc *Service, sync *plan.Synchronizer) *Flow {
	return &Flow{svc: svc, sync: sync}
}

// Request 拉取今日建议。任何失败（包括未打卡的 404）都翻译成固定提示文案而不是错误。
// Request fetches today's advice. Any failure (including the no-check-in 404)
// translates into the fixed advisory message instead of an error.
func (f *Flow) Request(ctx context.Context) string {
	var resp recommendationResponse
	if err := f.svc.gateway.GetJSON(ctx, "/api/coach/daily-recommendation", &resp); err != nil || resp.Recommendation == "" {
		return i18n.T("coach.recommend_fallback")
	}

	f.mu.Lock()
	f.pending = resp.Recommendation
	f.mu.Unlock()
	return resp.Recommendation
}

// Pending 返回待处理的建议文本 / Pending returns the pending recommendation text
func (f *Flow) Pending() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Dismiss 丢弃待处理建议 / Dismiss drops the pending recommendation
func (f *Flow) Dismiss() {
	f.mu.Lock()
	f.pending = ""
	f.mu.Unlock()
}

// Apply 提交当前训练、打卡指标与建议文本，服务端返回替换后的 DayWorkout。
// 这是单次原子替换：服务端确认之前本地不动任何状态；确认成功后才替换
// 今日条目并清除待处理建议，失败则计划与建议原样保留。
//
// Apply submits the current workout, the day's check-in metrics and the
// recommendation text; the server returns the replacement DayWorkout. This is
// a single atomic replace: nothing changes locally before the server
// confirms; only then is today's entry swapped and the pending recommendation
// cleared. On failure both the plan and the recommendation are left as-is.
func (f *Flow) Apply(ctx context.Context, current plan.DayWorkout, checkin Checkin) (plan.DayWorkout, error) {
	f.mu.Lock()
	recommendation := f.pending
	f.mu.Unlock()

	req := adjustRequest{CurrentWorkout: current, Checkin: checkin, Recommendation: recommendation}
	var replacement plan.DayWorkout
	if err := f.svc.gateway.PostJSON(ctx, "/api/coach/training-plan/adjust-today", req, &replacement); err != nil {
		return plan.DayWorkout{}, err
	}

	f.sync.ReplaceToday(replacement)
	f.mu.Lock()
	f.pending = ""
	f.mu.Unlock()
	return replacement, nil
}
