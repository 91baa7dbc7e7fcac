package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldAccountID   = "account_id"
	FieldWindowFrom  = "window_from"
	FieldWindowTo    = "window_to"
	FieldFlow        = "flow"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentStore   = "store"
)

// Operations defines standard operation names
const (
	OpBreakdown = "breakdown"
	OpStats     = "stats"
	OpAppend    = "append"
	OpQuery     = "query"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
