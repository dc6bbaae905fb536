package plan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"forathlete/internal/api"
)

func testEnvelope() Envelope {
	return Envelope{
		GeneratedAt: "2024-06-02T18:00:00Z",
		Plan: WeeklyPlan{
			Monday:    DayWorkout{Type: "run", Workout: "Easy run", DurationMinutes: 45, Date: "2024-06-03"},
			Tuesday:   DayWorkout{Type: "badminton", Workout: "Club session", DurationMinutes: 90, Date: "2024-06-04"},
			Wednesday: DayWorkout{Type: "rest", Workout: "Rest day", DurationMinutes: 0, Date: "2024-06-05"},
			Thursday:  DayWorkout{Type: "strength", Workout: "Gym", DurationMinutes: 60, Date: "2024-06-06"},
			Friday:    DayWorkout{Type: "run", Workout: "Intervals", DurationMinutes: 50, Date: "2024-06-07"},
			Saturday:  DayWorkout{Type: "cross-training", Workout: "Bike", DurationMinutes: 40, Date: "2024-06-08"},
			Sunday:    DayWorkout{Type: "rest", Workout: "Rest day", DurationMinutes: 0, Date: "2024-06-09"},
		},
	}
}

// fakeCoach 可配置的后端桩 / fakeCoach is a configurable backend stub
type fakeCoach struct {
	t *testing.T

	currentStatus int        // 0 = serve plan
	env           Envelope
	completions   []CompletionRecord
	generateCalls int64
	completeCalls int64
	failComplete  bool
}

func (f *fakeCoach) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/coach/training-plan/current", func(w http.ResponseWriter, r *http.Request) {
		if f.currentStatus != 0 {
			http.Error(w, `{"detail": "No active training plan found"}`, f.currentStatus)
			return
		}
		json.NewEncoder(w).Encode(f.env)
	})
	mux.HandleFunc("POST /api/coach/training-plan", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.generateCalls, 1)
		json.NewEncoder(w).Encode(f.env)
	})
	mux.HandleFunc("GET /api/workouts/week", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("week_start"); got != f.env.Plan.WeekAnchor() {
			f.t.Errorf("week_start=%q, want %q", got, f.env.Plan.WeekAnchor())
		}
		json.NewEncoder(w).Encode(f.completions)
	})
	mux.HandleFunc("POST /api/workouts/complete", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.completeCalls, 1)
		if f.failComplete {
			http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
			return
		}
		var req completionCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Error(err)
		}
		json.NewEncoder(w).Encode(CompletionRecord{Date: req.Date, WorkoutType: req.WorkoutType, Completed: req.Completed})
	})
	return mux
}

func newTestSync(t *testing.T, f *fakeCoach) (*Synchronizer, *httptest.Server) {
	f.t = t
	ts := httptest.NewServer(f.handler())
	t.Cleanup(ts.Close)
	return NewSynchronizer(api.New(ts.URL, 2*time.Second, api.Options{})), ts
}

func TestLoadExistingPlanHydratesCompletions(t *testing.T) {
	f := &fakeCoach{
		env: testEnvelope(),
		completions: []CompletionRecord{
			{Date: "2024-06-03", WorkoutType: "run", Completed: true},
			{Date: "2024-06-04", WorkoutType: "badminton", Completed: false},
		},
	}
	s, _ := newTestSync(t, f)

	env, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if env.Plan.Monday.Workout != "Easy run" {
		t.Fatalf("monday=%+v", env.Plan.Monday)
	}
	if atomic.LoadInt64(&f.generateCalls) != 0 {
		t.Fatal("generation must not run when a plan exists")
	}
	if !s.Completed("2024-06-03") {
		t.Fatal("monday should be completed")
	}
	// 缺少记录的日期解释为未完成 / Dates without a record read as not completed
	if s.Completed("2024-06-05") {
		t.Fatal("wednesday has no record and must read not completed")
	}
}

func TestLoadAbsentPlanGeneratesOnce(t *testing.T) {
	f := &fakeCoach{currentStatus: http.StatusNotFound, env: testEnvelope()}
	s, _ := newTestSync(t, f)

	env, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if calls := atomic.LoadInt64(&f.generateCalls); calls != 1 {
		t.Fatalf("generate called %d times, want 1", calls)
	}
	if env.Plan.WeekAnchor() != "2024-06-03" {
		t.Fatalf("anchor=%q", env.Plan.WeekAnchor())
	}
}

func TestLoadServerErrorDoesNotGenerate(t *testing.T) {
	f := &fakeCoach{currentStatus: http.StatusInternalServerError, env: testEnvelope()}
	s, _ := newTestSync(t, f)

	if _, err := s.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt64(&f.generateCalls) != 0 {
		t.Fatal("a true error must not fall through to generation")
	}
}

func TestCurrentLookupStates(t *testing.T) {
	f := &fakeCoach{currentStatus: http.StatusNotFound, env: testEnvelope()}
	s, _ := newTestSync(t, f)

	lookup, err := s.Current(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if lookup.Found {
		t.Fatal("404 should map to Absent, not Found")
	}

	f.currentStatus = 0
	lookup, err = s.Current(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !lookup.Found {
		t.Fatal("existing plan should map to Found")
	}
}

func TestTogglePairCancels(t *testing.T) {
	f := &fakeCoach{env: testEnvelope()}
	s, _ := newTestSync(t, f)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	const monday = "2024-06-03"
	if err := s.ToggleCompletion(context.Background(), monday, "run"); err != nil {
		t.Fatal(err)
	}
	if !s.Completed(monday) {
		t.Fatal("first toggle should complete monday")
	}
	if err := s.ToggleCompletion(context.Background(), monday, "run"); err != nil {
		t.Fatal(err)
	}
	if s.Completed(monday) {
		t.Fatal("second toggle should return monday to not completed")
	}
	if calls := atomic.LoadInt64(&f.completeCalls); calls != 2 {
		t.Fatalf("server mutations=%d, want 2", calls)
	}
}

func TestToggleFailureRevertsLocalValue(t *testing.T) {
	f := &fakeCoach{env: testEnvelope(), failComplete: true}
	s, _ := newTestSync(t, f)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	const friday = "2024-06-07"
	if err := s.ToggleCompletion(context.Background(), friday, "run"); err == nil {
		t.Fatal("expected toggle failure")
	}
	if s.Completed(friday) {
		t.Fatal("failed toggle must revert to the pre-toggle value")
	}
}

func TestStaleFailureDoesNotRevertNewerValue(t *testing.T) {
	env := testEnvelope()
	started := make(chan struct{})
	release := make(chan struct{})
	var completeSeen int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/coach/training-plan/current", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(env)
	})
	mux.HandleFunc("GET /api/workouts/week", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]CompletionRecord{})
	})
	mux.HandleFunc("POST /api/workouts/complete", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&completeSeen, 1)
		if n == 1 {
			// 第一笔挂起，晚于后续请求才失败返回
			// The first request hangs and fails only after later ones finished
			close(started)
			<-release
			http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	s := NewSynchronizer(api.New(ts.URL, 5*time.Second, api.Options{}))
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	const monday = "2024-06-03"
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ToggleCompletion(context.Background(), monday, "run") // seq 1, desired true
	}()
	<-started

	if err := s.ToggleCompletion(context.Background(), monday, "run"); err != nil { // seq 2, desired false
		t.Fatal(err)
	}
	if err := s.ToggleCompletion(context.Background(), monday, "run"); err != nil { // seq 3, desired true
		t.Fatal(err)
	}

	close(release)
	if err := <-errCh; err == nil {
		t.Fatal("stale request should have failed")
	}

	// 过期失败不得撤销最新意图 / The stale failure must not undo the latest intent
	if !s.Completed(monday) {
		t.Fatal("latest user intent (completed) was reverted by a stale response")
	}
}

func TestConcurrentTogglesOnDifferentDatesAreIndependent(t *testing.T) {
	f := &fakeCoach{env: testEnvelope()}
	s, _ := newTestSync(t, f)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	dates := []string{"2024-06-03", "2024-06-04", "2024-06-06"}
	done := make(chan error, len(dates))
	for _, d := range dates {
		go func(date string) {
			done <- s.ToggleCompletion(context.Background(), date, "run")
		}(d)
	}
	for range dates {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range dates {
		if !s.Completed(d) {
			t.Fatalf("date %s should be completed", d)
		}
	}
	if s.CompletedCount() != len(dates) {
		t.Fatalf("completed count=%d", s.CompletedCount())
	}
}

func TestRegenerateInvalidatesCompletions(t *testing.T) {
	f := &fakeCoach{
		env: testEnvelope(),
		completions: []CompletionRecord{
			{Date: "2024-06-03", WorkoutType: "run", Completed: true},
		},
	}
	s, _ := newTestSync(t, f)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !s.Completed("2024-06-03") {
		t.Fatal("precondition: monday completed")
	}

	// 新的一周 / A new week
	next := testEnvelope()
	for _, d := range []struct {
		day  *DayWorkout
		date string
	}{
		{&next.Plan.Monday, "2024-06-10"}, {&next.Plan.Tuesday, "2024-06-11"},
		{&next.Plan.Wednesday, "2024-06-12"}, {&next.Plan.Thursday, "2024-06-13"},
		{&next.Plan.Friday, "2024-06-14"}, {&next.Plan.Saturday, "2024-06-15"},
		{&next.Plan.Sunday, "2024-06-16"},
	} {
		d.day.Date = d.date
	}
	f.env = next
	f.completions = nil

	env, err := s.Regenerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if env.Plan.WeekAnchor() != "2024-06-10" {
		t.Fatalf("anchor=%q", env.Plan.WeekAnchor())
	}
	if atomic.LoadInt64(&f.generateCalls) != 1 {
		t.Fatalf("generate calls=%d, want 1", f.generateCalls)
	}
	if s.Completed("2024-06-03") {
		t.Fatal("old week's completion projection must be invalidated")
	}
}

func TestEndToEndMondayScenario(t *testing.T) {
	f := &fakeCoach{env: testEnvelope()}
	s, _ := newTestSync(t, f)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	const monday = "2024-06-03"
	if err := s.ToggleCompletion(context.Background(), monday, "run"); err != nil {
		t.Fatal(err)
	}
	_, completions, ok := s.Snapshot()
	if !ok || !completions[monday] {
		t.Fatalf("completions=%v", completions)
	}

	if err := s.ToggleCompletion(context.Background(), monday, "run"); err != nil {
		t.Fatal(err)
	}
	_, completions, _ = s.Snapshot()
	if completions[monday] {
		t.Fatalf("completions=%v", completions)
	}
}

func TestReplaceToday(t *testing.T) {
	f := &fakeCoach{env: testEnvelope()}
	s, _ := newTestSync(t, f)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	replacement := DayWorkout{Type: "rest", Workout: "Full recovery", DurationMinutes: 0, Date: "2024-06-07"}
	if !s.ReplaceToday(replacement) {
		t.Fatal("replacement should match friday's date")
	}
	env, _, _ := s.Snapshot()
	if env.Plan.Friday.Workout != "Full recovery" {
		t.Fatalf("friday=%+v", env.Plan.Friday)
	}
	// 其余六天不受影响 / The other six days are untouched
	if env.Plan.Monday.Workout != "Easy run" {
		t.Fatalf("monday=%+v", env.Plan.Monday)
	}

	if s.ReplaceToday(DayWorkout{Date: "2030-01-01"}) {
		t.Fatal("a date outside the plan must not replace anything")
	}
}
