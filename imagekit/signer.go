// Package imagekit mints ImageKit upload credentials and talks to its upload
// and file management APIs.
package imagekit

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"catalog-admin/media"
)

// CredentialTTL is how long a minted signature stays valid.
const CredentialTTL = 3600 * time.Second

var ErrMissingCredentials = errors.New("ImageKit credentials not configured")

// Signer mints {token, expire, signature} triples. It holds no other state.
type Signer struct {
	publicKey  string
	privateKey string
	now        func() time.Time
}

func NewSigner(publicKey, privateKey string) *Signer {
	return &Signer{publicKey: publicKey, privateKey: privateKey, now: time.Now}
}

// Configured reports whether both keys are present.
func (s *Signer) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// Mint signs an expiry one hour from now.
func (s *Signer) Mint() (media.Credentials, error) {
	if !s.Configured() {
		return media.Credentials{}, ErrMissingCredentials
	}
	expire := s.now().Add(CredentialTTL).Unix()
	return media.Credentials{
		Token:     s.publicKey,
		Expire:    expire,
		Signature: Sign(s.privateKey, expire),
	}, nil
}

// Credentials lets the signer act as the uploader's credential source.
func (s *Signer) Credentials(ctx context.Context) (media.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return media.Credentials{}, err
	}
	return s.Mint()
}

// Sign returns base64(HMAC-SHA1(privateKey, decimal expire)).
func Sign(privateKey string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(strconv.FormatInt(expire, 10)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a triple against the private key and the current time.
func (s *Signer) Verify(c media.Credentials) bool {
	if !s.Configured() || c.Token != s.publicKey {
		return false
	}
	if c.Expire < s.now().Unix() {
		return false
	}
	want := Sign(s.privateKey, c.Expire)
	return hmac.Equal([]byte(want), []byte(c.Signature))
}
