// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manifest builds and signs the post-hoc audit record of a copy run.

A RunManifest never influences copy semantics — it is produced after every
table has already been copied, purely so a downstream system (or a human)
can verify what ran, when, and how many rows moved per table without
re-deriving it from logs.

Core Components:

  - RunManifest: the plain record — run ID, timestamps, per-table counts,
    schema names.
  - Signer: RS256-signs a RunManifest into a compact JWT "copy receipt",
    mirroring the teacher's identity-token signing so a manifest's
    authenticity can be checked the same way an access token's can.

Signing is optional: a [Signer] is only constructed when a private key
path is configured, and an unsigned RunManifest is still a complete,
useful record on its own.
*/
package manifest

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Run Record

// RunManifest is the read-only record of one completed copy run.
type RunManifest struct {
	RunID        uuid.UUID        `json:"run_id"`
	SourceSchema string           `json:"source_schema"`
	TargetSchema string           `json:"target_schema"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
	RowCounts    map[string]int64 `json:"row_counts"`
}

// New builds a RunManifest from the per-table row counts a run produced.
func New(sourceSchema, targetSchema string, startedAt, finishedAt time.Time, rowCounts map[string]int64) RunManifest {
	return RunManifest{
		RunID:        uuid.New(),
		SourceSchema: sourceSchema,
		TargetSchema: targetSchema,
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		RowCounts:    rowCounts,
	}
}

// manifestClaims embeds a RunManifest's fields as the payload of the
// signed receipt, alongside the standard registered claims.
type manifestClaims struct {
	jwt.RegisteredClaims
	Manifest RunManifest `json:"manifest"`
}

// SignedManifest is a RunManifest together with its signed JWT receipt.
type SignedManifest struct {
	RunManifest
	Token string `json:"token"`
}

// # Signer

// Signer signs RunManifests into RS256 JWTs, matching the teacher's
// TokenService for identity tokens.
type Signer struct {
	privateKey *rsa.PrivateKey
}

// NewSigner loads the RSA private key at privateKeyPath.
func NewSigner(privateKeyPath string) (*Signer, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to read signing key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to parse signing key: %w", err)
	}

	return &Signer{privateKey: privateKey}, nil
}

// Sign produces a [SignedManifest] carrying a compact RS256 JWT receipt
// for m.
func (s *Signer) Sign(m RunManifest) (*SignedManifest, error) {
	claims := manifestClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   m.RunID.String(),
			IssuedAt:  jwt.NewNumericDate(m.FinishedAt),
			ExpiresAt: jwt.NewNumericDate(m.FinishedAt.Add(24 * time.Hour)),
		},
		Manifest: m,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to sign receipt: %w", err)
	}

	return &SignedManifest{RunManifest: m, Token: signed}, nil
}
