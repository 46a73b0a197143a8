package i18n

// Translator retrieves user-facing messages for Issue codes.
// data provides the pieces to embed in the message (for example,
// "option" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

func (dictTranslator) Message(code string, data map[string]string) string {
	get := func(key string) string {
		if data == nil {
			return ""
		}
		return data[key]
	}
	switch code {
	case "unknown_option":
		return "unknown option '" + get("option") + "'"
	case "unexpected_value":
		return "unexpected value for option '" + get("option") + "': " + get("value")
	case "missing_value":
		// "option" arrives pre-quoted with all names joined: '-l'/'--log'
		return "missing value for option " + get("option")
	case "invalid_value":
		return "cannot parse argument '" + get("arg") + "': " + get("cause")
	case "missing_argument":
		return "missing argument '" + get("arg") + "'"
	case "missing_choice":
		// "alternatives" arrives pre-quoted and joined: '-a' or '<c>'
		return "missing argument " + get("alternatives")
	case "too_many_arguments":
		return "invalid argument '" + get("arg") + "'"
	case "unknown_command":
		return "invalid command '" + get("arg") + "'"
	case "conflicting_arguments":
		return "conflicting arguments '" + get("first") + "' and '" + get("second") + "'"
	case "invalid_schema":
		if arg := get("arg"); arg != "" {
			return "invalid schema: " + arg + ": " + get("detail")
		}
		return "invalid schema: " + get("detail")
	}
	return code
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
