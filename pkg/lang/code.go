package lang

import "strings"

// Code is a supported conversation language.
type Code string

const (
	English  Code = "en"
	Amharic  Code = "am"
	Oromifa  Code = "om"
	Tigrigna Code = "ti"
)

// Default is used whenever detection fails or a text cannot be classified.
const Default = English

var supported = map[Code]string{
	English:  "English",
	Amharic:  "Amharic",
	Oromifa:  "Oromifa",
	Tigrigna: "Tigrigna",
}

// Supported reports whether c is a member of the supported set.
func Supported(c Code) bool {
	_, ok := supported[c]
	return ok
}

// Name returns the display name for a supported code.
func Name(c Code) string {
	return supported[c]
}

// Codes returns the supported set in a stable order.
func Codes() []Code {
	return []Code{English, Amharic, Oromifa, Tigrigna}
}

// Parse normalizes a raw classifier result into a supported code.
// Anything outside the supported set collapses to Default.
func Parse(raw string) Code {
	c := Code(strings.ToLower(strings.TrimSpace(raw)))
	if Supported(c) {
		return c
	}
	return Default
}

func (c Code) String() string { return string(c) }
