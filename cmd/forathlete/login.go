package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"forathlete/internal/auth"
	"forathlete/internal/i18n"
)

const maxLoginAttempts = 3

// runLogin 交互式登录；失败后可选择注册新账号
// runLogin drives the interactive login; after a failure the user may register instead
func runLogin(ctx context.Context, mgr *auth.Manager, input lineInput, out io.Writer) error {
	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		email, err := input.ReadLine(i18n.T("auth.login_prompt_user"))
		if err != nil {
			return err
		}
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		password, err := input.ReadSecret(i18n.T("auth.login_prompt_pass"))
		if err != nil {
			return err
		}

		loginErr := mgr.Login(ctx, email, password)
		if loginErr == nil {
			return nil
		}
		fmt.Fprintln(out, loginErr.Error())

		answer, err := input.ReadLine(i18n.T("auth.register_prompt"))
		if err != nil {
			return err
		}
		if !isYes(answer) {
			continue
		}

		name, err := input.ReadLine(i18n.T("auth.register_name"))
		if err != nil {
			return err
		}
		if err := mgr.Register(ctx, email, strings.TrimSpace(name), password); err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		fmt.Fprintln(out, i18n.T("auth.register_done"))
		loginErr = mgr.Login(ctx, email, password)
		if loginErr == nil {
			return nil
		}
		fmt.Fprintln(out, loginErr.Error())
	}
	return fmt.Errorf("login failed after %d attempts", maxLoginAttempts)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
