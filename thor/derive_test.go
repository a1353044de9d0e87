// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDerivedAddress(t *testing.T) {
	program := BytesToAddress([]byte("program"))
	seeds := [][]byte{[]byte("stake_pool"), BytesToAddress([]byte("authority")).Bytes()}

	addr, bump, err := FindDerivedAddress(program, seeds...)
	require.NoError(t, err)

	again, err := CreateDerivedAddress(program, bump, seeds...)
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	// deterministic
	addr2, bump2, err := FindDerivedAddress(program, seeds...)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)
	assert.Equal(t, bump, bump2)
}

func TestDerivedAddressDependsOnInputs(t *testing.T) {
	program := BytesToAddress([]byte("program"))
	other := BytesToAddress([]byte("other"))

	a, _, err := FindDerivedAddress(program, []byte("mint"))
	require.NoError(t, err)
	b, _, err := FindDerivedAddress(other, []byte("mint"))
	require.NoError(t, err)
	c, _, err := FindDerivedAddress(program, []byte("mint2"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCreateDerivedAddressLimits(t *testing.T) {
	program := BytesToAddress([]byte("program"))

	_, err := CreateDerivedAddress(program, 255, bytes.Repeat([]byte{1}, MaxSeedLength+1))
	assert.ErrorIs(t, err, ErrMaxSeedLenExceeded)

	seeds := make([][]byte, MaxSeeds)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}
	_, err = CreateDerivedAddress(program, 255, seeds...)
	assert.ErrorIs(t, err, ErrMaxSeedsExceeded)
}

func TestBumpSkipsOnCurveHashes(t *testing.T) {
	program := BytesToAddress([]byte("program"))
	seed := []byte("withdraw_authority")

	_, bump, err := FindDerivedAddress(program, seed)
	require.NoError(t, err)

	// every bump above the found one must have been rejected as on-curve
	for b := 255; b > int(bump); b-- {
		_, err := CreateDerivedAddress(program, byte(b), seed)
		assert.ErrorIs(t, err, ErrOnCurve)
	}
}
