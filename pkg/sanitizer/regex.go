package sanitizer

import "regexp"

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	scriptRegex     = regexp.MustCompile(`(?is)<(script|style|iframe|object|embed)\b[^>]*>.*?</(script|style|iframe|object|embed)\s*>`)
	eventAttrRegex  = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsProtocolRegex = regexp.MustCompile(`(?i)(href|src|action)\s*=\s*(["']?)\s*javascript\s*:`)
)
