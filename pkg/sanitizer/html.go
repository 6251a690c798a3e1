package sanitizer

import "html"

// StripHTML removes tags and unescapes entities, leaving readable text.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// StripScriptTags removes script-like elements together with their content.
func StripScriptTags(s string) string {
	return scriptRegex.ReplaceAllString(s, "")
}

// RemoveJavaScriptEvents drops on* handler attributes and neutralises
// javascript: URLs in href, src and action attributes.
func RemoveJavaScriptEvents(s string) string {
	s = eventAttrRegex.ReplaceAllString(s, "")
	return jsProtocolRegex.ReplaceAllString(s, `$1=$2#`)
}

// TrustedHTML cleans author supplied markup before it is rendered verbatim.
// It is not a full sanitizer; use it only on content from trusted editors.
var TrustedHTML = Compose(StripScriptTags, RemoveJavaScriptEvents)
