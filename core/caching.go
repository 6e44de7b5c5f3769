package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gitgrade/gitgrade/core/agg"
	"github.com/gitgrade/gitgrade/internal/contract"
	"github.com/gitgrade/gitgrade/schema"
)

// Cache entry versioning and staleness.
const (
	cacheSchemaVersion = 1
	cacheMaxAge        = 7 * 24 * time.Hour
)

// generateCacheKey builds a deterministic key from every input that can
// change the aggregation output, including the repository HEAD so new
// commits invalidate old entries.
func generateCacheKey(cfg *contract.Config, headHash string) string {
	policies := make([]string, len(cfg.ExcludePolicies))
	for i, p := range cfg.ExcludePolicies {
		policies[i] = string(p)
	}
	raw := strings.Join([]string{
		cfg.RepoPath,
		cfg.OlderRef,
		cfg.NewerRef,
		fmt.Sprintf("%d", cfg.MaxCommits),
		strings.Join(cfg.ExcludeFiles, ","),
		strings.Join(policies, ","),
		strings.Join(cfg.FilterAuthors, ","),
		headHash,
	}, "|")

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// checkCacheHit returns the decoded entry when it is current and fresh.
func checkCacheHit(store contract.CacheStore, key string) *schema.HistoryOutput {
	data, version, timestamp, err := store.Get(key)
	if err != nil || data == nil {
		return nil
	}
	if version != cacheSchemaVersion {
		return nil
	}
	if time.Since(time.Unix(timestamp, 0)) > cacheMaxAge {
		return nil
	}

	var out schema.HistoryOutput
	if err := json.Unmarshal(data, &out); err != nil {
		contract.LogWarn("discarding undecodable cache entry", err)
		return nil
	}
	return &out
}

// cachedAggregateHistory wraps the list-and-aggregate step with the
// activity cache. Cache failures degrade to a direct pass, never abort.
func cachedAggregateHistory(ctx context.Context, cfg *contract.Config, source contract.CommitSource, mgr contract.CacheManager, sink contract.ProgressSink) (*schema.HistoryOutput, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetActivityStore()
	}
	if store == nil {
		return aggregateFromSource(ctx, cfg, source, sink)
	}

	headHash, err := source.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		contract.LogWarn("cache disabled, cannot resolve HEAD", err)
		return aggregateFromSource(ctx, cfg, source, sink)
	}

	key := generateCacheKey(cfg, headHash)
	if hit := checkCacheHit(store, key); hit != nil {
		return hit, nil
	}

	out, err := aggregateFromSource(ctx, cfg, source, sink)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err == nil {
		err = store.Set(key, data, cacheSchemaVersion, time.Now().Unix())
	}
	if err != nil {
		contract.LogWarn("failed to persist cache entry", err)
	}
	return out, nil
}

// aggregateFromSource lists commits and runs the single aggregation pass.
func aggregateFromSource(ctx context.Context, cfg *contract.Config, source contract.CommitSource, sink contract.ProgressSink) (*schema.HistoryOutput, error) {
	opts := contract.RangeOptions{
		OlderRef:   cfg.OlderRef,
		NewerRef:   cfg.NewerRef,
		MaxCommits: cfg.MaxCommits,
	}
	records, err := source.ListCommits(ctx, cfg.RepoPath, opts)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	return agg.AggregateHistory(records, agg.Options{
		ExcludeFiles:    cfg.ExcludeFiles,
		ExcludePolicies: cfg.ExcludePolicies,
		FilterAuthors:   cfg.FilterAuthors,
	}, sink), nil
}
