package ballot

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/valyala/bytebufferpool"
)

const whatsAppBaseURL = "https://wa.me/"

// ShareMessage composes the plain-text summary sent over WhatsApp.
func ShareMessage(b Ballot, matches []match.Match) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Quiniela de ")
	_, _ = buf.WriteString(b.SubmitterName)
	_, _ = buf.WriteString("\n\n")

	for _, m := range matches {
		_, _ = buf.WriteString("Partido ")
		_, _ = buf.WriteString(m.ID)
		if m.HomeTeam != "" || m.AwayTeam != "" {
			_, _ = buf.WriteString(" (")
			_, _ = buf.WriteString(m.Label())
			_ = buf.WriteByte(')')
		}
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(b.Pick(m.ID))
		_ = buf.WriteByte('\n')
	}

	return buf.String()
}

// WhatsAppURL builds a wa.me deep link carrying message for phone.
func WhatsAppURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	return whatsAppBaseURL + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
