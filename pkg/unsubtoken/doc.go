// Package unsubtoken issues and verifies the signed, time-limited tokens that
// are embedded in newsletter unsubscribe links.
//
// A token is a compact JWS in the familiar three-segment form:
//
//	base64url(header).base64url(claims).base64url(HMAC-SHA256(header "." claims))
//
// The claims carry the subscriber identifier (sub), the subscriber email at
// issuance time (email), a purpose tag (purpose) and an expiry (exp). Tokens
// are never stored; whoever holds the signing secret can verify them.
//
// # Usage
//
//	import "github.com/jpmhone/folio/pkg/unsubtoken"
//
//	signer, err := unsubtoken.New(os.Getenv("UNSUBSCRIBE_SIGNING_SECRET"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tok, err := signer.Issue("sub_123", "a@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	claims, err := signer.Verify(tok)
//	if errors.Is(err, unsubtoken.ErrInvalidToken) {
//	    // malformed, tampered, expired or minted for another purpose
//	}
//
// # Expiry
//
// A token is valid strictly before its exp claim. Verification at exactly exp
// fails. Timestamps have one second precision.
//
// # Purpose
//
// Every Signer is bound to one purpose (PurposeUnsubscribe by default). A
// token minted by a Signer configured WithPurpose("confirm") never verifies
// on an unsubscribe Signer, even when both share a secret.
//
// # Error Handling
//
// Verify returns one of ErrMalformed, ErrSignatureMismatch, ErrExpired or
// ErrWrongPurpose. All of them wrap ErrInvalidToken so that callers which must
// not reveal the exact reason can collapse them with a single errors.Is check.
package unsubtoken
