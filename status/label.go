package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen bounds label values so HUD columns stay aligned
const MaxLabelLen = 32

// Label is an atomically replaced short string
// Zero value is ready to use and reads as ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to at most MaxLabelLen bytes on a rune
// boundary
func (l *Label) Store(val string) {
	if len(val) > MaxLabelLen {
		n := MaxLabelLen
		for n > 0 && !utf8.RuneStart(val[n]) {
			n--
		}
		val = val[:n]
	}
	l.ptr.Store(&val)
}

// Load returns the current label
func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
