package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://hx.vango.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside render",
		Detail:   "Hooks must be called while a component is rendering, from the goroutine the host renders on.",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "A component called a different number or kind of hooks than on its first render.",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Hook slot type mismatch",
		Detail:   "The value stored in a hook slot does not match the hook reading it. Hooks were probably called conditionally.",
		DocURL:   docBase + "E003",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Too many re-renders",
		Detail:   "Components kept scheduling updates during flush. An effect or render probably sets state unconditionally.",
		DocURL:   docBase + "E004",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Root unmounted",
		Detail:   "The root was unmounted and cannot render again.",
		DocURL:   docBase + "E005",
	},

	// ============================================
	// Validation Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryValidation,
		Message:  "Invalid props shape",
		Detail:   "Props must be nil, host props (vdom.Props) or a semantic props map.",
		DocURL:   docBase + "E020",
	},

	// ============================================
	// Config Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file could not be read or decoded.",
		DocURL:   docBase + "E040",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range.",
		DocURL:   docBase + "E041",
	},
	"E042": {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Config files must end in .yaml, .yml or .toml.",
		DocURL:   docBase + "E042",
	},

	// ============================================
	// CLI Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryCLI,
		Message:  "Render failed",
		Detail:   "The demo tree failed to render.",
		DocURL:   docBase + "E060",
	},
	"E061": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The demo server stopped with an error.",
		DocURL:   docBase + "E061",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
