package plan

// DayWorkout 一天的训练安排；date 是完成状态的身份键
// DayWorkout is one day's workout; date is the identity key for completion tracking
type DayWorkout struct {
	Type            string `json:"type"`
	Workout         string `json:"workout"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes,omitempty"`
	Date            string `json:"date"`
}

// WeeklyPlan 固定七个 weekday 键，每键恰好一个 DayWorkout
// WeeklyPlan has the seven fixed weekday keys, exactly one DayWorkout each
type WeeklyPlan struct {
	Monday    DayWorkout `json:"monday"`
	Tuesday   DayWorkout `json:"tuesday"`
	Wednesday DayWorkout `json:"wednesday"`
	Thursday  DayWorkout `json:"thursday"`
	Friday    DayWorkout `json:"friday"`
	Saturday  DayWorkout `json:"saturday"`
	Sunday    DayWorkout `json:"sunday"`
}

// WeekdayNames 周一起始的显示顺序 / WeekdayNames in monday-first display order
var WeekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Days 按周一到周日返回七天 / Days returns the seven days monday through sunday
func (p *WeeklyPlan) Days() []DayWorkout {
	return []DayWorkout{p.Monday, p.Tuesday, p.Wednesday, p.Thursday, p.Friday, p.Saturday, p.Sunday}
}

func (p *WeeklyPlan) days() []*DayWorkout {
	return []*DayWorkout{&p.Monday, &p.Tuesday, &p.Wednesday, &p.Thursday, &p.Friday, &p.Saturday, &p.Sunday}
}

// WeekAnchor 计划锚定周的周一日期，用于圈定完成记录查询
// WeekAnchor is the monday date the plan is anchored to; completion queries are scoped by it
func (p *WeeklyPlan) WeekAnchor() string {
	return p.Monday.Date
}

// ReplaceByDate 原地替换 date 相同的那天；没有匹配则不动
// ReplaceByDate replaces the day with the same date in place; no match leaves the plan untouched
func (p *WeeklyPlan) ReplaceByDate(w DayWorkout) bool {
	for _, day := range p.days() {
		if day.Date == w.Date {
			*day = w
			return true
		}
	}
	return false
}

// Envelope 后端返回的计划包装 / Envelope is the plan payload as returned by the backend
type Envelope struct {
	Plan        WeeklyPlan `json:"plan"`
	GeneratedAt string     `json:"generated_at"`
}

// Lookup fetch-current 的显式三态结果：Found/Absent 在数据上分支，Failed 走 error
// Lookup is the explicit result of fetch-current: Found/Absent branch on data, Failed on error
type Lookup struct {
	Envelope Envelope
	Found    bool
}

// CompletionRecord 服务端完成记录行 / CompletionRecord is a server-side completion row
type CompletionRecord struct {
	Date        string `json:"date"`
	WorkoutType string `json:"workout_type"`
	Completed   bool   `json:"completed"`
	Notes       string `json:"notes,omitempty"`
}

type completionCreate struct {
	Date        string `json:"date"`
	WorkoutType string `json:"workout_type"`
	Completed   bool   `json:"completed"`
}
