// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"
)

// RandUint64Range returns a uniform value in [min, max].
func RandUint64Range(min, max uint64) uint64 {
	if max <= min {
		return min
	}
	span := max - min
	if span == ^uint64(0) {
		return mathrand.Uint64() //#nosec G404
	}
	return min + mathrand.N(span+1) //#nosec G404
}
