// ABOUTME: Resumable parser state, exported so a host can persist a half-read sequence
// ABOUTME: Marshalled with easyjson codegen (zero-reflection encoding)

//go:generate easyjson state.go

package key

// State is the complete resumable state of a Parser.
//
//easyjson:json
type State struct {
	Mode    Mode   `json:"mode"`
	Pending []byte `json:"pending,omitempty"`
	Paste   []byte `json:"paste,omitempty"`
}
