// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"
	"sync"

	"github.com/taibuivan/anonydb/internal/platform/manifest"
	"github.com/taibuivan/anonydb/internal/platform/respond"
)

// LastRun holds the most recently completed run's manifest, safe for
// concurrent reads from the status handler and writes from the
// orchestrator's caller once a run finishes.
type LastRun struct {
	mu       sync.RWMutex
	manifest *manifest.SignedManifest
}

// Set records m as the most recently completed run.
func (r *LastRun) Set(m *manifest.SignedManifest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifest = m
}

// Get returns the most recently completed run's manifest, or nil if no
// run has completed yet.
func (r *LastRun) Get() *manifest.SignedManifest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manifest
}

// statusHandler serves GET /status: the last completed run's manifest,
// ops visibility only. It never sits on the copy's hot path.
func statusHandler(lastRun *LastRun) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		m := lastRun.Get()
		if m == nil {
			respond.OK(writer, map[string]string{"status": "no run yet"})
			return
		}
		respond.OK(writer, m)
	}
}
