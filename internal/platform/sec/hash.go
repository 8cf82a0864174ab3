// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec provides cryptographic primitives for the copy pipeline.

Today it holds one responsibility: bcrypt-hashing the synthetic
passphrases that back the HashedPassword anonymizer, so a column that
stores a password hash still holds a structurally valid (but useless)
hash in the anonymized target.
*/
package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// # Password Security (Bcrypt)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {

	// Default cost (10) provides a good balance between security and performance
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)

	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}
