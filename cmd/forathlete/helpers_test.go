package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forathlete/internal/api"
	"forathlete/internal/auth"
	"forathlete/internal/coach"
	"forathlete/internal/storage"
)

// scriptedInput 按脚本回放输入行 / scriptedInput replays scripted input lines
type scriptedInput struct {
	lines []string
	pos   int
}

func (s *scriptedInput) ReadLine(prompt string) (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

func (s *scriptedInput) ReadSecret(prompt string) (string, error) {
	return s.ReadLine(prompt)
}

func (s *scriptedInput) Close() error { return nil }

func TestParseOptionalInt(t *testing.T) {
	if _, ok, err := parseOptionalInt("  "); ok || err != nil {
		t.Fatal("blank should skip without error")
	}
	v, ok, err := parseOptionalInt("62")
	if err != nil || !ok || v != 62 {
		t.Fatalf("v=%d ok=%v err=%v", v, ok, err)
	}
	if _, _, err := parseOptionalInt("abc"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseOptionalFloat(t *testing.T) {
	v, ok, err := parseOptionalFloat("7.5")
	if err != nil || !ok || v != 7.5 {
		t.Fatalf("v=%v ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := parseOptionalFloat(""); ok {
		t.Fatal("blank should skip")
	}
}

func TestIsYes(t *testing.T) {
	for _, yes := range []string{"y", "Y", "yes", " YES "} {
		if !isYes(yes) {
			t.Fatalf("%q should be yes", yes)
		}
	}
	for _, no := range []string{"", "n", "no", "maybe"} {
		if isYes(no) {
			t.Fatalf("%q should not be yes", no)
		}
	}
}

func TestPromptCheckinSkipsBlanks(t *testing.T) {
	input := &scriptedInput{lines: []string{
		"7.5", // sleep hours
		"4",   // sleep quality
		"",    // hrv skipped
		"55",  // rhr
		"3",   // energy
		"",    // soreness skipped
		"legs a bit heavy",
	}}

	c, err := promptCheckin(input, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if c.SleepHours == nil || *c.SleepHours != 7.5 {
		t.Fatalf("sleep=%v", c.SleepHours)
	}
	if c.HRV != nil {
		t.Fatal("hrv should be skipped")
	}
	if c.RHR == nil || *c.RHR != 55 {
		t.Fatalf("rhr=%v", c.RHR)
	}
	if c.SorenessLevel != nil {
		t.Fatal("soreness should be skipped")
	}
	if c.Notes != "legs a bit heavy" {
		t.Fatalf("notes=%q", c.Notes)
	}
	if c.Date == "" {
		t.Fatal("date must be set")
	}
}

func TestPromptScaleRejectsOutOfRange(t *testing.T) {
	input := &scriptedInput{lines: []string{"9", "0", "5"}}
	var out bytes.Buffer

	v, err := promptScale(input, "quality: ", &out)
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || *v != 5 {
		t.Fatalf("v=%v", v)
	}
	if out.Len() == 0 {
		t.Fatal("out-of-range input should be rejected with a hint")
	}
}

func TestRunLoginPersistsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if r.PostForm.Get("username") != "ann@example.com" || r.PostForm.Get("password") != "pw" {
			http.Error(w, `{"detail": "Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	mgr := auth.NewManager(store)
	gateway := api.New(ts.URL, time.Second, api.Options{Credential: mgr.Credential, OnAuthFailure: mgr.Invalidate})
	mgr.SetGateway(gateway)

	input := &scriptedInput{lines: []string{
		"wrong@example.com", "bad", "n", // failed attempt, no register
		"ann@example.com", "pw",
	}}
	var out bytes.Buffer
	if err := runLogin(context.Background(), mgr, input, &out); err != nil {
		t.Fatal(err)
	}

	tok, err := store.Token()
	if err != nil {
		t.Fatal(err)
	}
	if tok != "tok-1" {
		t.Fatalf("token=%q", tok)
	}
}

func TestRunCheckinKeepsExisting(t *testing.T) {
	existing := coach.Checkin{Date: "2024-06-07", Notes: "already done"}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/checkins/today", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(existing)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	svc := coach.NewService(api.New(ts.URL, time.Second, api.Options{}))
	input := &scriptedInput{lines: []string{"n"}}

	got, err := runCheckin(context.Background(), svc, input, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Notes != "already done" {
		t.Fatalf("got=%+v", got)
	}
}
