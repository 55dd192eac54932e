// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAuthorKey = errors.New("invalid author key")

// GenerateAuthorKey creates an HMAC-based key proving authorship of a
// question. Deterministic and verifiable, so it never needs to be stored:
// possession of the key is what makes a requester the Curioso.
func GenerateAuthorKey(questionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(questionID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAuthorKey checks the provided key against the question.
func ValidateAuthorKey(questionID, authorKey, salt string) error {
	expected := GenerateAuthorKey(questionID, salt)
	if !hmac.Equal([]byte(authorKey), []byte(expected)) {
		return ErrInvalidAuthorKey
	}
	return nil
}

// GenerateVoterToken creates a random secure token for a Wayfinder.
// The token is the voter's identity on a question: it authenticates vote
// casts, reason edits, and discussion posts.
func GenerateVoterToken() (string, error) {
	b := make([]byte, 24) // 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateShareSlug creates a short, deterministic URL slug for a question.
// Uses HMAC for determinism and base62 encoding for URL-friendliness.
func GenerateShareSlug(questionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(questionID))
	sum := h.Sum(nil)

	// First 8 bytes keep the slug short
	return base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way salted hash of an IP address for privacy.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// 64 bits is enough for deduplication
	return hex.EncodeToString(sum[:8])
}
