package segment

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-katas/internal/macro"
)

var invocationPattern = regexp.MustCompile(`@\[([A-Za-z][A-Za-z0-9-]*)\]\(`)

// Scan tokenizes one document into segments. A macro invocation is
// @[type]({json}) whose closing parenthesis ends its line (trailing spaces
// allowed); everything else is Markdown prose. Prose spans that are
// whitespace only are dropped. Text that merely resembles an invocation but
// does not complete the pattern stays prose, while a completed pattern with
// an unknown type or a rejected payload aborts the scan.
func Scan(path, content string) ([]Segment, error) {
	var (
		segments     []Segment
		pending      strings.Builder
		pendingStart = -1
	)

	appendText := func(chunk string, offset int) {
		if chunk == "" {
			return
		}
		if pending.Len() == 0 {
			pendingStart = offset
		}
		pending.WriteString(chunk)
	}

	flush := func() {
		if pending.Len() == 0 {
			return
		}
		text := pending.String()
		start := pendingStart
		pending.Reset()
		pendingStart = -1
		if strings.TrimSpace(text) == "" {
			return
		}
		segments = append(segments, Markdown(text, lineAt(content, start)))
	}

	pos := 0
	for pos < len(content) {
		loc := invocationPattern.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			appendText(content[pos:], pos)
			break
		}

		start := pos + loc[0]
		name := content[pos+loc[2] : pos+loc[3]]

		raw, next, ok := payloadAt(content, pos+loc[1])
		if !ok {
			// Incomplete pattern: keep the text and resume after the @.
			appendText(content[pos:start+1], pos)
			pos = start + 1
			continue
		}

		decoded, err := macro.Parse(name, []byte(raw))
		if err != nil {
			return nil, malformedMacro(err, path, lineAt(content, start), name, raw)
		}

		appendText(content[pos:start], pos)
		flush()
		segments = append(segments, Invocation(decoded, lineAt(content, start)))
		pos = next
	}
	flush()

	return segments, nil
}

// payloadAt extracts the {json} payload starting at the byte right after the
// invocation's opening parenthesis. The closing `})` must terminate the line
// (trailing spaces and a carriage return allowed) or the text, otherwise the
// candidate is not an invocation at all.
func payloadAt(content string, start int) (raw string, next int, ok bool) {
	if start >= len(content) || content[start] != '{' {
		return "", 0, false
	}

	end := len(content)
	next = len(content)
	if nl := strings.IndexByte(content[start:], '\n'); nl >= 0 {
		end = start + nl
		next = end + 1
	}

	tail := strings.TrimSuffix(content[start:end], "\r")
	tail = strings.TrimRight(tail, " \t")
	if !strings.HasSuffix(tail, ")") {
		return "", 0, false
	}
	raw = strings.TrimSuffix(tail, ")")
	if !strings.HasSuffix(raw, "}") {
		return "", 0, false
	}
	return raw, next, true
}

func lineAt(content string, offset int) int {
	return 1 + strings.Count(content[:offset], "\n")
}
