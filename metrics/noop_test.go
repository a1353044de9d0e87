// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()
	assert.Nil(t, m.GetOrCreateHandler())

	// labels need not match the declared ones
	labels := map[string]string{"pool": "0x00"}
	m.GetOrCreateCountMeter("operations").Add(1)
	m.GetOrCreateCountVecMeter("operations_count", []string{"op", "result"}).AddWithLabel(1, labels)
	m.GetOrCreateGaugeMeter("fees").Set(-1)
	m.GetOrCreateGaugeVecMeter("total_base", []string{"pool"}).SetWithLabel(1e15, labels)
	m.GetOrCreateHistogramMeter("duration", nil).Observe(3)
	m.GetOrCreateHistogramVecMeter("operation_duration_ms", []string{"op"}, BucketOperationMs).ObserveWithLabels(3, labels)
}

func TestLazyLoadOnce(t *testing.T) {
	calls := 0
	get := LazyLoad(func() int {
		calls++
		return calls
	})
	assert.Zero(t, calls, "nothing loaded before first use")
	assert.Equal(t, 1, get())
	assert.Equal(t, 1, get())
	assert.Equal(t, 1, calls)
}
