package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome     = "/"
	RouteSave     = "/save"
	RouteHistory  = "/history"
	RouteDownload = "/download/:id"
	RouteHealthz  = "/healthz"
)

// History window constants
const (
	DefaultHistoryMinutes = 60
	// HistoryOlderMinutes selects essays older than the default window.
	HistoryOlderMinutes = -1
)

// Response message constants
const (
	MessageSaved          = "Essay saved successfully"
	ErrorNoText           = "No text provided"
	ErrorCorrectionFailed = "Could not correct essay."
	ErrorSaveFailed       = "Could not save essay to the database."
	ErrorInvalidEssayID   = "Invalid essay id."
	ErrorEssayNotFound    = "Essay not found."
	ErrorTooManyRequests  = "Too many requests. Please slow down."
)

const pageTitle = "Essay Checker"

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
