package plan

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"forathlete/internal/api"
)

// Synchronizer 协调本地计划/完成状态与服务端真值之间的同步。
// 完成勾选是乐观更新：本地先翻转，服务端失败再回滚；同一日期的并发
// 翻转用单调序号仲裁，过期请求的失败不会撤销更新的本地值。
//
// Synchronizer reconciles the local plan/completion projection against the
// server source of truth. Completion toggling is optimistic: the local value
// flips first and rolls back on server failure; concurrent toggles on the
// same date are arbitrated by a monotonic sequence so a stale request's
// failure never undoes a newer local value.
type Synchronizer struct {
	gateway *api.Client

	mu          sync.Mutex
	env         *Envelope
	completions map[string]bool
	seq         map[string]uint64
}

func NewSynchronizer(gateway *api.Client) *Synchronizer {
	return &Synchronizer{
		gateway:     gateway,
		completions: make(map[string]bool),
		seq:         make(map[string]uint64),
	}
}

// Current 请求当前激活的计划；404 映射为 Absent 而非错误
// Current fetches the active plan; a 404 maps to Absent, not an error
func (s *Synchronizer) Current(ctx context.Context) (Lookup, error) {
	var env Envelope
	if err := s.gateway.GetJSON(ctx, "/api/coach/training-plan/current", &env); err != nil {
		if api.IsNotFound(err) {
			return Lookup{}, nil
		}
		return Lookup{}, err
	}
	return Lookup{Envelope: env, Found: true}, nil
}

// Generate 触发服务端生成新计划（可能较慢的一次远程计算）
// Generate asks the server to compute a new plan (a possibly slow single remote computation)
func (s *Synchronizer) Generate(ctx context.Context) (Envelope, error) {
	var env Envelope
	if err := s.gateway.PostJSON(ctx, "/api/coach/training-plan", nil, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Load 一次加载周期：fetch-current，Absent 则恰好生成一次，随后水合完成记录。
// 任何一步失败都向调用方暴露错误；这里不做自动重试。
//
// Load runs one load cycle: fetch-current, generate exactly once on Absent,
// then hydrate completion records. Any failing step surfaces to the caller;
// nothing retries automatically.
func (s *Synchronizer) Load(ctx context.Context) (Envelope, error) {
	lookup, err := s.Current(ctx)
	if err != nil {
		return Envelope{}, err
	}

	env := lookup.Envelope
	if !lookup.Found {
		env, err = s.Generate(ctx)
		if err != nil {
			return Envelope{}, err
		}
	}

	s.install(env)
	if err := s.hydrate(ctx, env.Plan.WeekAnchor()); err != nil {
		return env, err
	}
	return env, nil
}

// Regenerate 无条件重新生成，替换整个计划并为新锚定周重新水合完成状态
// Regenerate unconditionally regenerates, replacing the plan and re-hydrating
// completion state for the new week anchor
func (s *Synchronizer) Regenerate(ctx context.Context) (Envelope, error) {
	env, err := s.Generate(ctx)
	if err != nil {
		return Envelope{}, err
	}
	s.install(env)
	if err := s.hydrate(ctx, env.Plan.WeekAnchor()); err != nil {
		return env, err
	}
	return env, nil
}

func (s *Synchronizer) install(env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = &env
	// 旧周的完成投影随计划失效 / The old week's completion projection dies with the plan
	s.completions = make(map[string]bool)
	s.seq = make(map[string]uint64)
}

// hydrate 拉取锚定周的完成记录；某天缺少记录解释为未完成
// hydrate fetches the anchor week's completion records; a missing record reads as not completed
func (s *Synchronizer) hydrate(ctx context.Context, weekStart string) error {
	if weekStart == "" {
		return fmt.Errorf("plan has no week anchor date")
	}
	var records []CompletionRecord
	path := "/api/workouts/week?week_start=" + url.QueryEscape(weekStart)
	if err := s.gateway.GetJSON(ctx, path, &records); err != nil {
		return fmt.Errorf("hydrate completions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.completions[rec.Date] = rec.Completed
	}
	return nil
}

// ToggleCompletion 乐观翻转 date 的完成状态：本地立即生效，随后发服务端
// 变更。请求携带发出时刻的目标值，不回读可变状态；失败仅当该请求仍是此
// date 最新发出的一笔时才回滚。
//
// ToggleCompletion optimistically flips the completion state for date: the
// local value changes immediately, then the server mutation is issued. The
// request carries the value it was issued with and never re-reads mutable
// state; on failure it only rolls back if it is still the latest request
// issued for that date.
func (s *Synchronizer) ToggleCompletion(ctx context.Context, date, workoutType string) error {
	s.mu.Lock()
	desired := !s.completions[date]
	s.completions[date] = desired
	s.seq[date]++
	issued := s.seq[date]
	s.mu.Unlock()

	req := completionCreate{Date: date, WorkoutType: workoutType, Completed: desired}
	if err := s.gateway.PostJSON(ctx, "/api/workouts/complete", req, nil); err != nil {
		s.mu.Lock()
		if s.seq[date] == issued {
			s.completions[date] = !desired
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Completed 返回 date 的本地完成投影 / Completed returns the local completion projection for date
func (s *Synchronizer) Completed(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completions[date]
}

// CompletedCount 本地投影中已完成的天数 / CompletedCount counts completed days in the local projection
func (s *Synchronizer) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, done := range s.completions {
		if done {
			n++
		}
	}
	return n
}

// Snapshot 返回计划与完成投影的拷贝 / Snapshot returns copies of the plan and completion projection
func (s *Synchronizer) Snapshot() (Envelope, map[string]bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.env == nil {
		return Envelope{}, nil, false
	}
	completions := make(map[string]bool, len(s.completions))
	for k, v := range s.completions {
		completions[k] = v
	}
	return *s.env, completions, true
}

// ReplaceToday 原子替换当天条目（同一 date 键，新内容），供 adjust-today 使用
// ReplaceToday atomically swaps today's entry (same date key, new content); used by adjust-today
func (s *Synchronizer) ReplaceToday(w DayWorkout) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.env == nil {
		return false
	}
	return s.env.Plan.ReplaceByDate(w)
}
