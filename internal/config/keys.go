package config

// Fixed keys for locally persisted state. Absence of a key means
// "no persisted value", never an error.
const (
	KeyAuthStorage     = "auth-storage"
	KeyUIStorage       = "ui-storage"
	KeyPostEditorDraft = "post-editor-draft"
)

const (
	DefaultPageSize = 10
	DefaultSort     = "createdAt,desc"
)
