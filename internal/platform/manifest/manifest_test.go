// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manifest

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PopulatesFieldsAndGeneratesRunID(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	end := time.Now()
	counts := map[string]int64{"customers": 10, "orders": 42}

	m := New("public", "public", start, end, counts)

	assert.NotEqual(t, [16]byte{}, m.RunID)
	assert.Equal(t, "public", m.SourceSchema)
	assert.Equal(t, "public", m.TargetSchema)
	assert.Equal(t, start, m.StartedAt)
	assert.Equal(t, end, m.FinishedAt)
	assert.Equal(t, counts, m.RowCounts)
}

func TestSigner_Sign_ProducesVerifiableToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signer := &Signer{privateKey: key}
	m := New("public", "public", time.Now().Add(-time.Second), time.Now(), map[string]int64{"orders": 7})

	signed, err := signer.Sign(m)
	require.NoError(t, err)
	require.NotEmpty(t, signed.Token)
	assert.Equal(t, m.RunID, signed.RunManifest.RunID)

	claims := &manifestClaims{}
	_, err = jwt.ParseWithClaims(signed.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	})
	require.NoError(t, err)
	assert.Equal(t, m.RunID, claims.Manifest.RunID)
	assert.Equal(t, int64(7), claims.Manifest.RowCounts["orders"])
}
