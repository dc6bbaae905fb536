package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"forathlete/internal/api"
	"forathlete/internal/auth"
	"forathlete/internal/coach"
	"forathlete/internal/config"
	"forathlete/internal/i18n"
	"forathlete/internal/plan"
	"forathlete/internal/storage"
	"forathlete/internal/tui"
)

func main() {
	var (
		configPath string
		serverURL  string
	)
	flag.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	flag.StringVar(&serverURL, "server", "", "Server base URL override")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if s := strings.TrimSpace(serverURL); s != "" {
		cfg.Server.BaseURL = strings.TrimRight(s, "/")
	}

	locale := cfg.UI.Locale
	if locale == "" {
		locale = i18n.DetectLocale()
	}
	i18n.Init(locale)

	store, err := storage.Open(cfg.Storage.BaseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init storage failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// 凭证回调与 401 钩子把网关和会话管理器接成一环
	// The credential callback and the 401 hook tie the gateway and the session manager together
	mgr := auth.NewManager(store)
	gateway := api.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutMS)*time.Millisecond, api.Options{
		Credential:    mgr.Credential,
		OnAuthFailure: mgr.Invalidate,
	})
	mgr.SetGateway(gateway)

	inputReader, inputErr := newLineInput(filepath.Join(cfg.Storage.BaseDir, "input.history"))
	if inputErr != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", inputErr)
	}
	defer inputReader.Close()

	ctx := context.Background()

	state := mgr.Bootstrap(ctx)
	if !state.Authenticated {
		if err := runLogin(ctx, mgr, inputReader, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	svc := coach.NewService(gateway)
	checkin, err := runCheckin(ctx, svc, inputReader, os.Stdout)
	if err != nil {
		// 打卡失败不阻断训练板 / A failed check-in does not block the board
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	sync := plan.NewSynchronizer(gateway)
	fmt.Println(i18n.T("plan.generating"))
	if _, err := sync.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", i18n.T("plan.load_failed"), err)
		os.Exit(1)
	}

	flow := coach.NewFlow(svc, sync)
	inputReader.Close()
	if err := tui.Run(sync, flow, checkin); err != nil {
		fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
		os.Exit(1)
	}
}
