package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Structural Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryStructural,
		Message:  "Invalid tree operation",
		Detail:   "The requested mutation would break the parent/child invariants of the tree.",
		DocURL:   "https://domtree.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryStructural,
		Message:  "Void element cannot have children",
		Detail:   "Void elements such as br, img and input never accept children.",
		DocURL:   "https://domtree.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryStructural,
		Message:  "Node has no parent",
		Detail:   "The operation works on the parent's child list but the node is detached.",
		DocURL:   "https://domtree.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryStructural,
		Message:  "Wrapping in a non empty element is forbidden",
		Detail:   "Wrap would silently relocate the existing children of the wrapper.",
		DocURL:   "https://domtree.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryStructural,
		Message:  "Node cannot be inserted into its own subtree",
		Detail:   "Inserting an ancestor below one of its descendants would turn the tree into a cycle.",
		DocURL:   "https://domtree.dev/docs/errors/E104",
	},
	"E105": {
		Category: CategoryStructural,
		Message:  "Node is not a container",
		Detail:   "Placeholders resolve their content at render time and cannot hold children.",
		DocURL:   "https://domtree.dev/docs/errors/E105",
	},
	"E106": {
		Category: CategoryStructural,
		Message:  "Node is not an element",
		Detail:   "Attributes only exist on elements; placeholders and views have none.",
		DocURL:   "https://domtree.dev/docs/errors/E106",
	},

	// ============================================
	// Lookup Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryLookup,
		Message:  "Child index out of range",
		Detail:   "No child exists at the requested position.",
		DocURL:   "https://domtree.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryLookup,
		Message:  "Named child not found",
		Detail:   "No child was inserted under the requested name.",
		DocURL:   "https://domtree.dev/docs/errors/E121",
	},

	// ============================================
	// Content Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryContent,
		Message:  "Invalid attribute value",
		Detail:   "Attribute values must be strings, numbers, booleans or string mappings for style.",
		DocURL:   "https://domtree.dev/docs/errors/E130",
	},
	"E131": {
		Category: CategoryContent,
		Message:  "Invalid placeholder",
		Detail:   "A placeholder needs at least a lookup key or a fixed value.",
		DocURL:   "https://domtree.dev/docs/errors/E131",
	},
	"E132": {
		Category: CategoryContent,
		Message:  "Invalid content",
		Detail:   "The provided value cannot be used as tree content.",
		DocURL:   "https://domtree.dev/docs/errors/E132",
	},
	"E133": {
		Category: CategoryContent,
		Message:  "Invalid stylesheet",
		Detail:   "Stylesheet rules must map selectors to property strings or nested rules.",
		DocURL:   "https://domtree.dev/docs/errors/E133",
	},

	// ============================================
	// View Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryView,
		Message:  "Incomplete view",
		Detail:   "A view definition must populate the view with at least one child when it is built.",
		DocURL:   "https://domtree.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryView,
		Message:  "View build failed",
		Detail:   "The view definition returned an error while populating itself.",
		DocURL:   "https://domtree.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryView,
		Message:  "Invalid view definition",
		Detail:   "A view definition needs a build function and a sample value of the type it renders.",
		DocURL:   "https://domtree.dev/docs/errors/E142",
	},

	// ============================================
	// Render Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "Writing the rendered markup failed.",
		DocURL:   "https://domtree.dev/docs/errors/E150",
	},
	"E151": {
		Category: CategoryRender,
		Message:  "Parse failed",
		Detail:   "The markup could not be parsed into a tree.",
		DocURL:   "https://domtree.dev/docs/errors/E151",
	},
	"E152": {
		Category: CategoryRender,
		Message:  "Code generation failed",
		Detail:   "The generated source could not be formatted.",
		DocURL:   "https://domtree.dev/docs/errors/E152",
	},

	// ============================================
	// Config Errors (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The domtree.yaml file contains invalid configuration.",
		DocURL:   "https://domtree.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No domtree.yaml was found in the directory or any parent.",
		DocURL:   "https://domtree.dev/docs/errors/E161",
	},

	// ============================================
	// CLI Errors (E170-E179)
	// ============================================

	"E170": {
		Category: CategoryCLI,
		Message:  "Input not readable",
		Detail:   "The input file or stdin could not be read.",
		DocURL:   "https://domtree.dev/docs/errors/E170",
	},
	"E171": {
		Category: CategoryCLI,
		Message:  "Invalid data file",
		Detail:   "The content data file must be a YAML mapping of keys to values.",
		DocURL:   "https://domtree.dev/docs/errors/E171",
	},
	"E172": {
		Category: CategoryCLI,
		Message:  "Template not found",
		Detail:   "The requested project template does not exist.",
		DocURL:   "https://domtree.dev/docs/errors/E172",
	},
	"E173": {
		Category: CategoryCLI,
		Message:  "File already exists",
		Detail:   "Scaffolding never overwrites existing files.",
		DocURL:   "https://domtree.dev/docs/errors/E173",
	},
	"E174": {
		Category: CategoryCLI,
		Message:  "Unknown error format",
		Detail:   "Errors are reported as pretty, compact or json.",
		DocURL:   "https://domtree.dev/docs/errors/E174",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
