package trellis

// Strings is a localization table resolving Text keys to display strings.
// It is threaded through the Gui explicitly; there is no process-wide
// table. A nil Strings resolves every key to itself.
type Strings map[string]string

// Lookup resolves key, falling back to the key itself when no entry
// exists. Missing keys are reported in debug mode.
func (s Strings) Lookup(key string) string {
	if value, ok := s[key]; ok {
		return value
	}
	debugLogf("missing translation for %q", key)
	return key
}
