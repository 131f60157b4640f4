package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// OTPLength is the fixed width of generated one-time codes.
const OTPLength = 6

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOTP produces a 6-digit numeric one-time code. The current
// timestamp and a random draw are mixed through SHA-256 and the first six
// digits of the hex digest are taken; if the digest yields too few digits
// it falls back to a plain random draw.
func GenerateOTP() (string, error) {
	draw, err := randomInRange(100000, 999999)
	if err != nil {
		return "", fmt.Errorf("failed to draw random component: %w", err)
	}

	raw := fmt.Sprintf("%s%d", time.Now().Format("20060102150405"), draw)
	sum := sha256.Sum256([]byte(raw))
	digest := hex.EncodeToString(sum[:])

	digits := make([]byte, 0, OTPLength)
	for i := 0; i < len(digest) && len(digits) < OTPLength; i++ {
		if digest[i] >= '0' && digest[i] <= '9' {
			digits = append(digits, digest[i])
		}
	}
	if len(digits) < OTPLength {
		fallback, err := randomInRange(100000, 999999)
		if err != nil {
			return "", fmt.Errorf("failed to draw fallback code: %w", err)
		}
		return fmt.Sprintf("%06d", fallback), nil
	}
	return string(digits), nil
}

// GenerateRandomPassword builds a random alphanumeric password of the given
// length. Used for system-generated sub-account passwords.
func GenerateRandomPassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	out := make([]byte, length)
	for i := range out {
		idx, err := cryptoRandInt(int64(len(passwordAlphabet)))
		if err != nil {
			return "", fmt.Errorf("failed to draw password character: %w", err)
		}
		out[i] = passwordAlphabet[idx]
	}
	return string(out), nil
}

func randomInRange(min, max int64) (int64, error) {
	n, err := cryptoRandInt(max - min + 1)
	if err != nil {
		return 0, err
	}
	return min + n, nil
}

func cryptoRandInt(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
