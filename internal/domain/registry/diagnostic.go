package registry

const (
	// SeverityInfo marks a directory that is simply not an app.
	SeverityInfo Severity = "info"
	// SeverityWarning marks an app candidate that failed to load.
	SeverityWarning Severity = "warning"
)

// Diagnostic codes reported by discovery.
const (
	CodeProjectNotFound    = "project_not_found"
	CodeAppsDirUnreadable  = "apps_dir_unreadable"
	CodeMissingInitializer = "missing_initializer"
	CodeMissingDescriptor  = "missing_descriptor"
	CodeLoadFailed         = "descriptor_load_failed"
)

type (
	// Severity is the diagnostic level.
	Severity string

	// Diagnostic explains why discovery skipped something. Diagnostics are
	// returned to the caller instead of failing the scan.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier, e.g. "missing_descriptor".
		Code    string
		Message string
		Path    string
		Cause   error
	}
)
