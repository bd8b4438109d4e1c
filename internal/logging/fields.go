package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Editing fields.
	FieldFormat    = "format"
	FieldOperation = "operation"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldCollapsed = "collapsed"
	FieldText      = "text"

	// Format registry fields.
	FieldName   = "name"
	FieldScript = "script"
	FieldCount  = "count"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
