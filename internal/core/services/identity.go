package services

import (
	"fmt"
	"os/user"
	"strings"

	"github.com/google/uuid"
)

// NewChannelIdentity builds the endpoint name for one broker lifetime from
// the current user and a random token, so concurrent brokers never collide.
func NewChannelIdentity() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating channel token: %w", err)
	}

	name := "user"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}

	hex := strings.ReplaceAll(token.String(), "-", "")
	return sanitizeChannelPart(name) + "-" + hex[:16], nil
}

// sanitizeChannelPart keeps a name usable inside a socket file name.
// Windows user names look like DOMAIN\user.
func sanitizeChannelPart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
