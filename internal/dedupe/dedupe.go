package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical reads. Polling clients tend to ask for the same
// leaderboard or round log at the same moment; only one query runs per key
// while the other callers wait for its result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by "top:<limit>".
var LeaderboardGroup singleflight.Group

// RoundsGroup deduplicates round-log reads keyed by "rounds:<match code>".
var RoundsGroup singleflight.Group
