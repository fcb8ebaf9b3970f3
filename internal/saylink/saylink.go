// Package saylink rewrites the clickable links embedded in chat text when two
// protocol versions disagree on the width of the link body.
//
// A link is the text between a pair of Delimiter bytes: a fixed-width body of
// hex fields followed by the visible link text. Splitting on Delimiter puts
// plain text at even indices and links at odd ones.
package saylink

import (
	"strings"

	"go.uber.org/zap"
)

// Delimiter opens and closes a link.
const Delimiter = '\x12'

// Reformat rewrites every link body in text from srcWidth to dstWidth bytes.
// Equal widths return text unchanged.
func Reformat(text string, srcWidth, dstWidth int) string {
	return reformat(text, srcWidth, dstWidth, nil)
}

// Reformatter converts links between one server and one client width and
// logs links that cannot be converted.
type Reformatter struct {
	serverWidth int
	clientWidth int
	log         *zap.Logger
}

func NewReformatter(serverWidth, clientWidth int, log *zap.Logger) *Reformatter {
	return &Reformatter{serverWidth: serverWidth, clientWidth: clientWidth, log: log}
}

// ToClient converts server text for the client.
func (r *Reformatter) ToClient(text string) string {
	return reformat(text, r.serverWidth, r.clientWidth, r.overlong("to_client"))
}

// ToServer converts client text for the server.
func (r *Reformatter) ToServer(text string) string {
	return reformat(text, r.clientWidth, r.serverWidth, r.overlong("to_server"))
}

func (r *Reformatter) overlong(dir string) func(string, int) {
	return func(link string, width int) {
		r.log.Warn("text link body does not fit, passing through",
			zap.String("dir", dir),
			zap.Int("width", width),
			zap.Int("len", len(link)),
		)
	}
}

func reformat(text string, srcWidth, dstWidth int, overlong func(link string, width int)) string {
	if srcWidth == dstWidth || strings.IndexByte(text, Delimiter) < 0 {
		return text
	}

	segments := strings.Split(text, string(Delimiter))
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i, seg := range segments {
		if i%2 == 0 {
			b.WriteString(seg)
			continue
		}
		b.WriteByte(Delimiter)
		if i == len(segments)-1 {
			// Unterminated link: keep what we have.
			b.WriteString(seg)
			break
		}
		b.WriteString(convertBody(seg, srcWidth, dstWidth, overlong))
		b.WriteByte(Delimiter)
	}
	return b.String()
}

// convertBody widens or narrows the fixed body at the front of link. Bodies
// are hex fields, so widening pads with '0' and narrowing only drops '0'
// padding; anything else is passed through untouched.
func convertBody(link string, srcWidth, dstWidth int, overlong func(string, int)) string {
	if len(link) < srcWidth {
		return link
	}
	body, rest := link[:srcWidth], link[srcWidth:]
	if dstWidth > srcWidth {
		return body + strings.Repeat("0", dstWidth-srcWidth) + rest
	}
	if strings.Trim(body[dstWidth:], "0") != "" {
		if overlong != nil {
			overlong(link, dstWidth)
		}
		return link
	}
	return body[:dstWidth] + rest
}
