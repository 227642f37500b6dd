// Package notice holds the toast-style messages every page view carries back
// to the browser. They are the only user-facing error channel.
package notice

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
	VariantWarning     Variant = "warning"
)

type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

func Success(title, description string) *Notice {
	return &Notice{Title: title, Description: description, Variant: VariantDefault}
}

func Error(title, description string) *Notice {
	return &Notice{Title: title, Description: description, Variant: VariantDestructive}
}

func Warning(title, description string) *Notice {
	return &Notice{Title: title, Description: description, Variant: VariantWarning}
}
