package coach

import (
	"context"

	"forathlete/internal/api"
)

// BadmintonSession 每周固定的羽毛球安排 / BadmintonSession is a fixed weekly badminton slot
type BadmintonSession struct {
	Day             string `json:"day"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	Type            string `json:"type"`
	Notes           string `json:"notes,omitempty"`
}

// InjuryItem 当前伤病 / InjuryItem is a current injury
type InjuryItem struct {
	Area     string `json:"area"`
	Severity string `json:"severity"`
	Notes    string `json:"notes,omitempty"`
}

// Profile 运动员档案，计划生成的输入
// Profile is the athlete profile; input to plan generation
type Profile struct {
	BadmintonSessions     []BadmintonSession `json:"badminton_sessions,omitempty"`
	PrimarySport          string             `json:"primary_sport,omitempty"`
	RunningGoal           string             `json:"running_goal,omitempty"`
	TargetRace            string             `json:"target_race,omitempty"`
	WeeklyRunVolumeTarget *int               `json:"weekly_run_volume_target,omitempty"`
	PreferredRunDays      []string           `json:"preferred_run_days,omitempty"`
	AvoidRunDays          []string           `json:"avoid_run_days,omitempty"`
	MorningPerson         *bool              `json:"morning_person,omitempty"`
	CurrentInjuries       []InjuryItem       `json:"current_injuries,omitempty"`
	SleepAverage          *float64           `json:"sleep_average,omitempty"`
	OtherCommitments      string             `json:"other_commitments,omitempty"`
}

// Profile 获取档案；不存在时返回 nil
// Profile fetches the profile; nil when none exists
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := s.gateway.GetJSON(ctx, "/api/profile", &p); err != nil {
		if api.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreateProfile 创建档案 / CreateProfile creates the profile
func (s *Service) CreateProfile(ctx context.Context, p Profile) error {
	return s.gateway.PostJSON(ctx, "/api/profile", p, nil)
}

// UpdateProfile 更新档案 / UpdateProfile updates the profile
func (s *Service) UpdateProfile(ctx context.Context, p Profile) error {
	return s.gateway.PutJSON(ctx, "/api/profile", p, nil)
}
