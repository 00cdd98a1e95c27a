package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"plus":      '+',
	"minus":     '-',
	"equal":     '=',
}

// ParseKeyConfig builds a sparse override table from config sections
// keys maps special key names to action names, runes maps single characters or aliases to action names
// Returns error on unknown action names or invalid key names
func ParseKeyConfig(keys, runes map[string]string) (*KeyTable, error) {
	kt := &KeyTable{}

	if len(keys) > 0 {
		kt.SpecialKeys = make(map[tcell.Key]Binding, len(keys))
		for name, action := range keys {
			k, ok := KeyByName(name)
			if !ok {
				return nil, fmt.Errorf("[keys] unknown key name: %q", name)
			}
			b, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[keys] key %q: %w", name, err)
			}
			kt.SpecialKeys[k] = b
		}
	}

	if len(runes) > 0 {
		kt.Runes = make(map[rune]Binding, len(runes))
		for name, action := range runes {
			r, err := resolveRune(name)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", name, err)
			}
			b, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[runes] key %q: %w", name, err)
			}
			kt.Runes[r] = b
		}
	}

	return kt, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to a Binding
func resolveAction(name string) (Binding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	b, ok := ActionBinding(name)
	if !ok {
		return Binding{}, fmt.Errorf("unknown action: %q", name)
	}
	return b, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.SpecialKeys {
		if v.Intent == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}
	for r, v := range override.Runes {
		if v.Intent == IntentNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = v
		}
	}

	return result
}
