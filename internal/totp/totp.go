// Package totp wraps one-time-code generation and verification for kiosk
// submissions and authenticator enrollment.
package totp

import (
	"encoding/base64"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// Period is the TOTP time-step length in seconds.
const Period = 30

// Verify checks a 6-digit code against a base32 secret at the current time.
// windowSteps is the number of adjacent time steps tolerated on either side
// of now, absorbing client/server clock drift. Malformed codes (wrong length,
// non-digits) return false, never an error.
func Verify(secret, code string, windowSteps uint) bool {
	return VerifyAt(secret, code, windowSteps, time.Now())
}

// VerifyAt is Verify with an explicit clock, used by the attendance service
// and by tests.
func VerifyAt(secret, code string, windowSteps uint, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    Period,
		Skew:      windowSteps,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return ok
}

// GenerateSecret creates a fresh shared secret for an account. It returns the
// base32 secret and the otpauth:// enrollment URL authenticator apps scan.
func GenerateSecret(issuer, accountName string) (secret, otpauthURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// GenerateCode produces the code for a secret at a given time. Test helper.
func GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCode(secret, at)
}

// QRDataURL renders the otpauth URL as a PNG data URL so frontends can show
// the enrollment QR without a separate image endpoint.
func QRDataURL(otpauthURL string) (string, error) {
	png, err := qrcode.Encode(otpauthURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
