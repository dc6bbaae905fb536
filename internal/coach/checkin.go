package coach

import (
	"context"
	"fmt"

	"forathlete/internal/api"
)

// Checkin 每日恢复打卡 / Checkin is a daily recovery check-in
type Checkin struct {
	Date          string   `json:"date"`
	HRV           *int     `json:"hrv,omitempty"`
	RHR           *int     `json:"rhr,omitempty"`
	SleepHours    *float64 `json:"sleep_hours,omitempty"`
	SleepQuality  *int     `json:"sleep_quality,omitempty"`
	SorenessLevel *int     `json:"soreness_level,omitempty"`
	SorenessAreas []string `json:"soreness_areas,omitempty"`
	EnergyLevel   *int     `json:"energy_level,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// Service 封装打卡与档案相关的后端调用
// Service wraps the check-in and profile backend calls
type Service struct {
	gateway *api.Client
}

func NewService(gateway *api.Client) *Service {
	return &Service{gateway: gateway}
}

// CreateCheckin 创建或更新当天打卡 / CreateCheckin creates or updates today's check-in
func (s *Service) CreateCheckin(ctx context.Context, c Checkin) (Checkin, error) {
	var saved Checkin
	if err := s.gateway.PostJSON(ctx, "/api/checkins", c, &saved); err != nil {
		return Checkin{}, err
	}
	return saved, nil
}

// TodayCheckin 返回今日打卡；尚未打卡返回 nil 而非错误
// TodayCheckin returns today's check-in; nil (not an error) when none exists yet
func (s *Service) TodayCheckin(ctx context.Context) (*Checkin, error) {
	var c Checkin
	if err := s.gateway.GetJSON(ctx, "/api/checkins/today", &c); err != nil {
		if api.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// History 返回最近 limit 条打卡 / History returns the last limit check-ins
func (s *Service) History(ctx context.Context, limit int) ([]Checkin, error) {
	if limit <= 0 {
		limit = 30
	}
	var out []Checkin
	path := fmt.Sprintf("/api/checkins/history?limit=%d", limit)
	if err := s.gateway.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
