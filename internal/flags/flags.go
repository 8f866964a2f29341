// Package flags evaluates feature flags per client and caches the results.
package flags

import (
	"hash/fnv"
	"regexp"
	"slices"

	"boardapi/internal/model"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{1,63}$`)

// ValidKey reports whether key is an acceptable flag key.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Bucket places a client in 0..99 for a given flag. Stable across processes.
func Bucket(key, clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key + ":" + clientID))
	return int(h.Sum32() % 100)
}

// Evaluate decides whether f is on for clientID.
func Evaluate(f model.FeatureFlag, clientID string) bool {
	if !f.Enabled {
		return false
	}
	if slices.Contains(f.ClientIDs, clientID) {
		return true
	}
	return Bucket(f.Key, clientID) < f.RolloutPercent
}

// EvaluateAll returns key → enabled for every flag.
func EvaluateAll(all []model.FeatureFlag, clientID string) map[string]bool {
	out := make(map[string]bool, len(all))
	for _, f := range all {
		out[f.Key] = Evaluate(f, clientID)
	}
	return out
}
