package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are consulted in order when the service runs behind a
// trusted proxy.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

type Config struct {
	// TrustProxy enables header based resolution. Leave it off when the
	// service is reachable directly, since clients can forge the headers.
	TrustProxy bool     `env:"TRUST_PROXY" envDefault:"false"`
	Headers    []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

// Resolver extracts the originating client address from requests.
type Resolver struct {
	headers []string
}

func New(cfg Config) *Resolver {
	if !cfg.TrustProxy {
		return &Resolver{}
	}
	headers := cfg.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return &Resolver{headers: headers}
}

// IP returns the normalised client address, or "" when none is valid.
// X-Forwarded-For contributes its first valid entry.
func (res *Resolver) IP(r *http.Request) string {
	for _, name := range res.headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
