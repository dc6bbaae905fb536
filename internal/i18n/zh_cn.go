package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// 认证
	"auth.login_prompt_user": "邮箱: ",
	"auth.login_prompt_pass": "密码: ",
	"auth.login_failed":      "登录失败，请检查邮箱和密码。",
	"auth.session_expired":   "会话已过期，请重新登录。",
	"auth.logged_out":        "已退出登录。",
	"auth.register_prompt":   "没有账号？现在注册？ [y/N] ",
	"auth.register_name":     "姓名: ",
	"auth.register_done":     "账号已创建，现在可以登录。",

	// 计划看板
	"plan.title":           "本周",
	"plan.completed_count": "已完成 %d/7",
	"plan.generating":      "正在生成训练计划...",
	"plan.none":            "暂无训练计划",
	"plan.load_failed":     "加载训练计划失败",
	"plan.generate_failed": "生成训练计划失败",
	"plan.toggle_failed":   "更新完成状态失败",
	"plan.today":           "今天",
	"plan.tomorrow":        "明天",

	// 教练
	"coach.recommend_fallback": "请先完成今日打卡，再获取 AI 建议。",
	"coach.recommend_title":    "今日建议",
	"coach.adjust_failed":      "调整今日训练失败",
	"coach.adjust_applied":     "今日训练已更新。",

	// 打卡
	"checkin.prompt_sleep":    "睡眠小时数（留空跳过）: ",
	"checkin.prompt_quality":  "睡眠质量 1-5（留空跳过）: ",
	"checkin.prompt_hrv":      "HRV 毫秒（留空跳过）: ",
	"checkin.prompt_rhr":      "静息心率 bpm（留空跳过）: ",
	"checkin.prompt_energy":   "精力水平 1-5（留空跳过）: ",
	"checkin.prompt_soreness": "酸痛程度 1-5（留空跳过）: ",
	"checkin.prompt_notes":    "备注（留空跳过）: ",
	"checkin.saved":           "打卡已保存。",
	"checkin.save_failed":     "保存打卡失败",
	"checkin.already_today":   "今天已打卡，要更新吗？ [y/N] ",

	// 状态 / 快捷键
	"status.ready":    "就绪",
	"status.syncing":  "同步中...",
	"keys.toggle":     "enter/space 勾选",
	"keys.regenerate": "g 重新生成",
	"keys.recommend":  "r 查看建议",
	"keys.apply":      "a 应用",
	"keys.dismiss":    "esc 关闭",
	"keys.quit":       "q 退出",

	// 错误
	"error.network": "网络错误，请重试。",
	"error.server":  "服务器错误，请稍后再试。",
}
