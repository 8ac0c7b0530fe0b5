package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldClientIP   = "client_ip"
	FieldItem       = "item"
	FieldAmount     = "amount"
	FieldBalance    = "balance"
	FieldTxType     = "tx_type"
	FieldCategory   = "category"
	FieldRecipient  = "recipient"
	FieldJob        = "job"
	FieldBackend    = "backend"
	FieldFilename   = "filename"
)

// Components defines standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentBot       = "bot"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentScheduler = "scheduler"
	ComponentBackup    = "backup"
	ComponentLine      = "line"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names.
const (
	OpParse    = "parse"
	OpAppend   = "append"
	OpRead     = "read"
	OpReply    = "reply"
	OpPush     = "push"
	OpSummary  = "summary"
	OpBackup   = "backup"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
