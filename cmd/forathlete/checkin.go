package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"forathlete/internal/coach"
	"forathlete/internal/i18n"
)

// promptCheckin 逐项询问晨间打卡，空输入跳过该项
// promptCheckin prompts the morning check-in field by field; a blank input skips the field
func promptCheckin(input lineInput, out io.Writer) (coach.Checkin, error) {
	c := coach.Checkin{Date: time.Now().Format("2006-01-02")}

	sleep, err := promptFloat(input, i18n.T("checkin.prompt_sleep"), out)
	if err != nil {
		return c, err
	}
	c.SleepHours = sleep

	quality, err := promptScale(input, i18n.T("checkin.prompt_quality"), out)
	if err != nil {
		return c, err
	}
	c.SleepQuality = quality

	hrv, err := promptInt(input, i18n.T("checkin.prompt_hrv"), out)
	if err != nil {
		return c, err
	}
	c.HRV = hrv

	rhr, err := promptInt(input, i18n.T("checkin.prompt_rhr"), out)
	if err != nil {
		return c, err
	}
	c.RHR = rhr

	energy, err := promptScale(input, i18n.T("checkin.prompt_energy"), out)
	if err != nil {
		return c, err
	}
	c.EnergyLevel = energy

	soreness, err := promptScale(input, i18n.T("checkin.prompt_soreness"), out)
	if err != nil {
		return c, err
	}
	c.SorenessLevel = soreness

	notes, err := input.ReadLine(i18n.T("checkin.prompt_notes"))
	if err != nil {
		return c, err
	}
	c.Notes = strings.TrimSpace(notes)

	return c, nil
}

// runCheckin 查询今日打卡并在需要时交互补录
// runCheckin looks up today's check-in and collects one interactively when needed
func runCheckin(ctx context.Context, svc *coach.Service, input lineInput, out io.Writer) (*coach.Checkin, error) {
	existing, err := svc.TodayCheckin(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		answer, err := input.ReadLine(i18n.T("checkin.already_today"))
		if err != nil {
			return nil, err
		}
		if !isYes(answer) {
			return existing, nil
		}
	}

	c, err := promptCheckin(input, out)
	if err != nil {
		return nil, err
	}
	saved, err := svc.CreateCheckin(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("checkin.save_failed"), err)
	}
	fmt.Fprintln(out, i18n.T("checkin.saved"))
	return &saved, nil
}

func promptInt(input lineInput, prompt string, out io.Writer) (*int, error) {
	for {
		line, err := input.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		v, ok, err := parseOptionalInt(line)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		if !ok {
			return nil, nil
		}
		return &v, nil
	}
}

// promptScale 限定 1-5 的整数项 / promptScale reads an integer constrained to 1-5
func promptScale(input lineInput, prompt string, out io.Writer) (*int, error) {
	for {
		line, err := input.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		v, ok, err := parseOptionalInt(line)
		if err != nil || (ok && (v < 1 || v > 5)) {
			fmt.Fprintln(out, "1-5")
			continue
		}
		if !ok {
			return nil, nil
		}
		return &v, nil
	}
}

func promptFloat(input lineInput, prompt string, out io.Writer) (*float64, error) {
	for {
		line, err := input.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		v, ok, err := parseOptionalFloat(line)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		if !ok {
			return nil, nil
		}
		return &v, nil
	}
}

func parseOptionalInt(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", s)
	}
	return v, true, nil
}

func parseOptionalFloat(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", s)
	}
	return v, true, nil
}
