// Package accesskey decides whether a request may reach the admin area.
//
// The default scheme is a shared code plus the current minute, base64 encoded:
// base64("YYYYMMDDHHmm-<code>"). A key is only accepted during the wall-clock
// minute it names, with no grace period on either side. This is a soft
// deterrent, not an authentication system. Callers whose address is on the
// allowlist skip the key check entirely.
package accesskey

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultPrefix = "/admin"
	DefaultCode   = "1112"

	// TimestampLayout is YYYYMMDDHHmm in Go reference-time notation.
	TimestampLayout = "200601021504"
)

type Reason string

const (
	ReasonNotAdmin     Reason = "not_admin_path"
	ReasonAllowlisted  Reason = "ip_allowlisted"
	ReasonValidKey     Reason = "valid_key"
	ReasonMissingKey   Reason = "missing_key"
	ReasonMalformedKey Reason = "malformed_key"
	ReasonWrongCode    Reason = "wrong_code"
	ReasonExpiredKey   Reason = "expired_key"
)

// Decision is the outcome of a gate check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Verifier checks a key at a given instant and returns ReasonValidKey or the
// reason it was rejected.
type Verifier interface {
	Verify(key string, now time.Time) Reason
}

// Gate guards every path under Prefix.
type Gate struct {
	Prefix    string
	Allowlist map[string]struct{}
	Keys      Verifier
	Now       func() time.Time
}

func NewGate(prefix string, allowlist []string, keys Verifier) *Gate {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	set := make(map[string]struct{}, len(allowlist))
	for _, ip := range allowlist {
		set[ip] = struct{}{}
	}
	return &Gate{
		Prefix:    prefix,
		Allowlist: set,
		Keys:      keys,
		Now:       time.Now,
	}
}

// Decide never fails: every malformed input collapses into a denial.
func (g *Gate) Decide(path, ip, key string) Decision {
	if !strings.HasPrefix(path, g.Prefix) {
		return Decision{Allowed: true, Reason: ReasonNotAdmin}
	}
	if _, ok := g.Allowlist[ip]; ok {
		return Decision{Allowed: true, Reason: ReasonAllowlisted}
	}
	if g.Keys == nil {
		return Decision{Reason: ReasonMissingKey}
	}
	reason := g.Keys.Verify(key, g.Now())
	return Decision{Allowed: reason == ReasonValidKey, Reason: reason}
}

// MinuteKeys accepts base64("YYYYMMDDHHmm-<Code>") for the current minute.
type MinuteKeys struct {
	Code string
	// Location used to format the current minute. Nil means the server's local zone.
	Location *time.Location
}

func (m MinuteKeys) Verify(key string, now time.Time) Reason {
	if key == "" {
		return ReasonMissingKey
	}
	decoded, ok := decodeKey(key)
	if !ok {
		return ReasonMalformedKey
	}
	stamp, code, found := strings.Cut(decoded, "-")
	if !found {
		return ReasonMalformedKey
	}
	if code != m.code() {
		return ReasonWrongCode
	}
	if stamp != m.stamp(now) {
		return ReasonExpiredKey
	}
	return ReasonValidKey
}

// Mint returns the key that is valid during the minute containing now.
func (m MinuteKeys) Mint(now time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(m.stamp(now) + "-" + m.code()))
}

// MintKey is MinuteKeys{Code: code}.Mint(now) in the server's local zone.
func MintKey(now time.Time, code string) string {
	return MinuteKeys{Code: code}.Mint(now)
}

func (m MinuteKeys) code() string {
	if m.Code == "" {
		return DefaultCode
	}
	return m.Code
}

func (m MinuteKeys) stamp(now time.Time) string {
	loc := m.Location
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(TimestampLayout)
}

// decodeKey accepts padded and unpadded, standard and URL-safe base64. Query
// decoding turns '+' into ' ', so spaces are mapped back first.
func decodeKey(key string) (string, bool) {
	key = strings.ReplaceAll(strings.TrimSpace(key), " ", "+")
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	for _, enc := range encodings {
		if b, err := enc.DecodeString(key); err == nil {
			return string(b), true
		}
	}
	return "", false
}

// ClientIP returns the first X-Forwarded-For entry, else X-Real-IP, else "".
func ClientIP(h http.Header) string {
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(h.Get("X-Real-IP"))
}
