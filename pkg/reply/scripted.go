package reply

import "github.com/alemhq/alem/pkg/lang"

// Handover returns the scripted human-handover message for code, falling
// back to the default language when no localized copy is authored.
func Handover(code lang.Code) string {
	if msg, ok := handoverMessages[code]; ok {
		return msg
	}
	return handoverMessages[lang.Default]
}

// ImmediateDanger returns the scripted immediate-danger block: the local
// contact list followed by the emotional affirmation.
func ImmediateDanger(code lang.Code) string {
	res := resourcesFor(code)
	return res.immediate + "\n\n" + res.emotional
}

// SuicidalIdeation returns the scripted crisis-intervention message with the
// same affirmation suffix.
func SuicidalIdeation(code lang.Code) string {
	base, ok := suicidalResponses[code]
	if !ok {
		base = suicidalResponses[lang.Default]
	}
	return base + "\n\n" + resourcesFor(code).emotional
}

// PracticalResources returns the localized practical-support block appended
// when a message reads as help-seeking.
func PracticalResources(code lang.Code) string {
	return resourcesFor(code).practical
}

// Fallbacks exposes the canned fallback replies for code so tests can assert
// "one of the known strings" without duplicating the data.
func Fallbacks(code lang.Code) []string {
	if replies, ok := fallbackReplies[code]; ok {
		return replies
	}
	return fallbackReplies[lang.Default]
}

func resourcesFor(code lang.Code) resourceSet {
	if res, ok := resourceBlocks[code]; ok {
		return res
	}
	return resourceBlocks[lang.Default]
}
