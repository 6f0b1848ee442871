package logging

// Field names for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldKey    = "key"
	FieldDSN    = "dsn"
	FieldNoteID = "note_id"
	FieldCount  = "count"
	FieldTheme  = "theme"
	FieldFormat = "format"

	FieldMethod   = "method"
	FieldURL      = "url"
	FieldStatus   = "status"
	FieldDuration = "duration"
	FieldAddr     = "addr"
)
