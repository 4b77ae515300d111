package auth

import (
	"fmt"
	"strings"
)

// identityDomain is the synthetic mail domain backing phone-only
// sign-in on top of login/password identity storage.
const identityDomain = "lunorise.app"

// PseudoEmail synthesizes the login identity for a phone number.
// Registration and sign-in both derive it the same way, so the phone
// number is the only credential the user ever sees.
func PseudoEmail(phone string) string {
	return fmt.Sprintf("%s@%s", strings.TrimSpace(phone), identityDomain)
}
