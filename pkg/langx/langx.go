// Package langx provides best-effort language detection for post bodies.
// Detection never fails the caller: when the detector is not confident the
// result is simply the empty tag and the post is stored without one.
package langx

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// minBodyLen guards against classifying tiny fragments; the detector is
// noise on inputs this short.
const minBodyLen = 8

// Detect returns the ISO 639-3 code of the most likely language of text,
// or "" when detection is unreliable.
func Detect(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < minBodyLen {
		return ""
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}

	return whatlanggo.LangToString(info.Lang)
}
