// ABOUTME: Mouse report types and decoders for SGR (CSI < b;x;y M/m) and X10 (CSI M bxy) formats.
// ABOUTME: Splits the xterm button byte into action, button, and modifier flags.

package key

import "fmt"

// MouseAction is the kind of mouse event.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
	MouseMove
	MouseScroll
)

var mouseActionNames = [...]string{
	MousePress:   "press",
	MouseRelease: "release",
	MouseDrag:    "drag",
	MouseMove:    "move",
	MouseScroll:  "scroll",
}

func (a MouseAction) String() string {
	if int(a) < len(mouseActionNames) {
		return mouseActionNames[a]
	}
	return "unknown"
}

// MouseButton identifies the button involved in a mouse event.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
)

var mouseButtonNames = [...]string{
	ButtonNone:       "none",
	ButtonLeft:       "left",
	ButtonMiddle:     "middle",
	ButtonRight:      "right",
	ButtonWheelUp:    "wheel-up",
	ButtonWheelDown:  "wheel-down",
	ButtonWheelLeft:  "wheel-left",
	ButtonWheelRight: "wheel-right",
}

func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return "unknown"
}

// Mouse describes a decoded mouse report. Row and Col are 1-based cells.
type Mouse struct {
	Action MouseAction
	Button MouseButton
	Row    int
	Col    int
	Shift  bool
	Alt    bool
	Ctrl   bool
}

// String returns a compact description such as "Mouse(press left 3,10)".
func (m Mouse) String() string {
	return fmt.Sprintf("Mouse(%s %s %d,%d)", m.Action, m.Button, m.Row, m.Col)
}

// xterm button byte layout.
const (
	mouseButtonMask = 0x03
	mouseShift      = 0x04
	mouseAlt        = 0x08
	mouseCtrl       = 0x10
	mouseMotion     = 0x20
	mouseWheel      = 0x40
)

// decodeMouse builds a Mouse from an xterm button code. release is true
// for the SGR lowercase 'm' terminator.
func decodeMouse(cb, col, row int, release bool) Mouse {
	m := Mouse{
		Row:   row,
		Col:   col,
		Shift: cb&mouseShift != 0,
		Alt:   cb&mouseAlt != 0,
		Ctrl:  cb&mouseCtrl != 0,
	}
	btn := cb & mouseButtonMask

	switch {
	case cb&mouseWheel != 0:
		m.Action = MouseScroll
		m.Button = ButtonWheelUp + MouseButton(btn)
	case cb&mouseMotion != 0:
		if btn == 3 {
			m.Action = MouseMove
		} else {
			m.Action = MouseDrag
			m.Button = ButtonLeft + MouseButton(btn)
		}
	case release:
		m.Action = MouseRelease
		if btn != 3 {
			m.Button = ButtonLeft + MouseButton(btn)
		}
	case btn == 3:
		// X10 reports every release as button 3.
		m.Action = MouseRelease
	default:
		m.Action = MousePress
		m.Button = ButtonLeft + MouseButton(btn)
	}
	return m
}

// decodeSGRMouse decodes the parameters of CSI < b ; x ; y (M|m).
func decodeSGRMouse(params [][]int, final byte) (Key, bool) {
	if len(params) != 3 {
		return Key{}, false
	}
	for _, p := range params {
		if len(p) != 1 {
			return Key{}, false
		}
	}
	m := decodeMouse(params[0][0], params[1][0], params[2][0], final == 'm')
	return Key{Type: KeyMouse, Mouse: m}, true
}

// decodeX10Mouse decodes the three raw bytes that follow CSI M.
// Each byte carries its value offset by 32.
func decodeX10Mouse(b []byte) Key {
	cb := int(b[0]) - 32
	col := int(b[1]) - 32
	row := int(b[2]) - 32
	return Key{Type: KeyMouse, Mouse: decodeMouse(cb, col, row, false)}
}
