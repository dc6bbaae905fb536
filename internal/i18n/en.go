package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// Auth
	"auth.login_prompt_user": "Email: ",
	"auth.login_prompt_pass": "Password: ",
	"auth.login_failed":      "Login failed. Please check your email and password.",
	"auth.session_expired":   "Session expired. Please log in again.",
	"auth.logged_out":        "Logged out.",
	"auth.register_prompt":   "No account? Register now? [y/N] ",
	"auth.register_name":     "Name: ",
	"auth.register_done":     "Account created. You can log in now.",

	// Plan board
	"plan.title":            "This Week",
	"plan.completed_count":  "%d/7 completed",
	"plan.generating":       "Generating your plan...",
	"plan.none":             "No training plan available",
	"plan.load_failed":      "Failed to load training plan",
	"plan.generate_failed":  "Failed to generate training plan",
	"plan.toggle_failed":    "Failed to update completion",
	"plan.today":            "Today",
	"plan.tomorrow":         "Tomorrow",

	// Coach
	"coach.recommend_fallback": "Complete your check-in first to get AI recommendations.",
	"coach.recommend_title":    "Today's Recommendation",
	"coach.adjust_failed":      "Failed to adjust today's workout",
	"coach.adjust_applied":     "Today's workout updated.",

	// Check-in
	"checkin.prompt_sleep":    "Sleep hours (blank to skip): ",
	"checkin.prompt_quality":  "Sleep quality 1-5 (blank to skip): ",
	"checkin.prompt_hrv":      "HRV ms (blank to skip): ",
	"checkin.prompt_rhr":      "Resting HR bpm (blank to skip): ",
	"checkin.prompt_energy":   "Energy level 1-5 (blank to skip): ",
	"checkin.prompt_soreness": "Soreness level 1-5 (blank to skip): ",
	"checkin.prompt_notes":    "Notes (blank to skip): ",
	"checkin.saved":           "Check-in saved.",
	"checkin.save_failed":     "Failed to save check-in",
	"checkin.already_today":   "You already checked in today. Update it? [y/N] ",

	// Status / keys
	"status.ready":     "Ready",
	"status.syncing":   "Syncing...",
	"keys.toggle":      "enter/space toggle",
	"keys.regenerate":  "g regenerate",
	"keys.recommend":   "r recommendation",
	"keys.apply":       "a apply",
	"keys.dismiss":     "esc dismiss",
	"keys.quit":        "q quit",

	// Errors
	"error.network": "Network error. Please try again.",
	"error.server":  "Server error. Please try again later.",
}
