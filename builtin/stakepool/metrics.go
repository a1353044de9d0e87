// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"math"

	"github.com/vechain/stakepool/metrics"
)

var (
	metricOperationCount    = metrics.LazyLoadCounterVec("operations_count", []string{"op", "result"})
	metricOperationDuration = metrics.LazyLoadHistogramVec("operation_duration_ms", []string{"op"}, metrics.BucketOperationMs)
	metricTotalBase         = metrics.LazyLoadGaugeVec("total_base", []string{"pool"})
	metricTotalShares       = metrics.LazyLoadGaugeVec("total_shares", []string{"pool"})
	metricFeesCollected     = metrics.LazyLoadCounter("fees_collected")
)

// meterValue converts an amount for the int64 meters, saturating at math.MaxInt64.
func meterValue(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
