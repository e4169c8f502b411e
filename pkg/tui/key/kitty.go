// ABOUTME: Decoders for parameterized CSI key sequences: kitty CSI u, xterm tilde codes, and letter finals.
// ABOUTME: Parses the numeric parameter list and applies xterm/kitty modifier bitmasks.

package key

import "unicode"

// maxParam bounds a single numeric CSI parameter. Larger values are
// treated as a malformed sequence.
const maxParam = 65535

// kittyRelease is the event-type sub-parameter for key release.
const kittyRelease = 3

// parseParams splits a CSI parameter string into ';'-separated groups of
// ':'-separated integers. Empty fields decode as 0.
func parseParams(body []byte) ([][]int, bool) {
	if len(body) == 0 {
		return nil, true
	}
	params := [][]int{{0}}
	for _, b := range body {
		group := &params[len(params)-1]
		switch {
		case b >= '0' && b <= '9':
			last := len(*group) - 1
			v := (*group)[last]*10 + int(b-'0')
			if v > maxParam {
				return nil, false
			}
			(*group)[last] = v
		case b == ':':
			*group = append(*group, 0)
		case b == ';':
			params = append(params, []int{0})
		default:
			return nil, false
		}
	}
	return params, true
}

// decodeCSI maps a complete CSI sequence (without the ESC [ prefix) to a
// Key. prefix is the optional private marker ('<', '?', '>' or '=').
func decodeCSI(prefix byte, params [][]int, final byte) (Key, bool) {
	switch {
	case prefix == '<' && (final == 'M' || final == 'm'):
		return decodeSGRMouse(params, final)
	case prefix != 0:
		return Key{}, false
	case final == 'R':
		// row;col is a cursor report; anything else is F3 (CSI R, CSI 1 R).
		if k, ok := decodeCursorPosition(params); ok {
			return k, true
		}
	case final == '~':
		return decodeTilde(params)
	case final == 'u':
		return decodeCSIu(params)
	}
	return decodeLetter(params, final)
}

// decodeCursorPosition handles CSI row ; col R.
func decodeCursorPosition(params [][]int) (Key, bool) {
	if len(params) != 2 || len(params[0]) != 1 || len(params[1]) != 1 {
		return Key{}, false
	}
	return Key{Type: KeyCursorPosition, Row: params[0][0], Col: params[1][0]}, true
}

// decodeLetter handles CSI [1 ; <mod>] <letter> for arrow/nav keys.
func decodeLetter(params [][]int, final byte) (Key, bool) {
	kt, ok := letterKeyTypes[final]
	if !ok {
		return Key{}, false
	}
	k := Key{Type: kt}
	switch len(params) {
	case 0:
		return k, true
	case 1:
		return k, params[0][0] <= 1
	case 2:
		if params[0][0] > 1 {
			return Key{}, false
		}
		mods, ok := decodeModifierParam(params[1][0])
		if !ok {
			return Key{}, false
		}
		applyModifiers(&k, mods)
		return k, true
	}
	return Key{}, false
}

// decodeTilde handles CSI <number> [; <modifiers>] ~ for functional keys and
// the xterm modifyOtherKeys form CSI 27 ; <modifiers> ; <codepoint> ~.
func decodeTilde(params [][]int) (Key, bool) {
	if len(params) == 0 || len(params) > 3 {
		return Key{}, false
	}
	num := params[0][0]

	if len(params) == 3 {
		if num != 27 {
			return Key{}, false
		}
		mods, ok := decodeModifierParam(params[1][0])
		if !ok {
			return Key{}, false
		}
		return buildKey(rune(params[2][0]), mods), true
	}

	if num == 201 && len(params) == 1 {
		// Paste end marker without a matching start.
		return Key{Type: KeyUnknown}, true
	}

	kt, ok := tildeKeyTypes[num]
	if !ok {
		return Key{}, false
	}
	k := Key{Type: kt}
	if len(params) == 2 {
		mods, ok := decodeModifierParam(params[1][0])
		if !ok {
			return Key{}, false
		}
		applyModifiers(&k, mods)
	}
	return k, true
}

// decodeCSIu handles the kitty CSI <codepoint>[:<shifted>] [; <modifiers>[:<event>]] u format.
func decodeCSIu(params [][]int) (Key, bool) {
	if len(params) == 0 || len(params) > 3 {
		return Key{}, false
	}
	codepoint := rune(params[0][0])

	mods := 0
	if len(params) >= 2 {
		var ok bool
		mods, ok = decodeModifierParam(params[1][0])
		if !ok {
			return Key{}, false
		}
		if len(params[1]) > 1 && params[1][1] == kittyRelease {
			return Key{Type: KeyUnknown}, true
		}
	}
	return buildKey(codepoint, mods), true
}

// buildKey constructs a Key from a unicode codepoint and modifier bitmask.
func buildKey(codepoint rune, mods int) Key {
	k := mapCodepointToKey(codepoint)
	if k.Type == KeyTab && mods&modShift != 0 {
		return Key{Type: KeyBackTab}
	}
	applyModifiers(&k, mods)
	if k.Type == KeyRune && k.Ctrl {
		k.Rune = unicode.ToLower(k.Rune)
	}
	return k
}

// mapCodepointToKey converts a unicode codepoint to a base Key without modifiers.
func mapCodepointToKey(cp rune) Key {
	switch cp {
	case 13:
		return Key{Type: KeyEnter}
	case 9:
		return Key{Type: KeyTab}
	case 127, 8:
		return Key{Type: KeyBackspace}
	case 27:
		return Key{Type: KeyEscape}
	default:
		return Key{Type: KeyRune, Rune: cp}
	}
}
