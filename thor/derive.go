// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// MaxSeeds is the maximum number of seeds of a derived address.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length in bytes of a single seed.
	MaxSeedLength = 32
)

var (
	derivedAddressMarker = []byte("DerivedAddress")

	ErrMaxSeedsExceeded   = errors.New("max seeds exceeded")
	ErrMaxSeedLenExceeded = errors.New("max seed length exceeded")
	ErrOnCurve            = errors.New("derived address lies on the secp256k1 curve")
	ErrNoViableBumpSeed   = errors.New("unable to find a viable bump seed")
)

// CreateDerivedAddress computes the address controlled by program for the given seeds and bump.
// A derived address has no private key: the hash must not be a valid secp256k1 x coordinate,
// otherwise ErrOnCurve is returned and the caller should try another bump.
func CreateDerivedAddress(program Address, bump byte, seeds ...[]byte) (Address, error) {
	if len(seeds) >= MaxSeeds {
		return Address{}, ErrMaxSeedsExceeded
	}
	parts := make([][]byte, 0, len(seeds)+3)
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Address{}, ErrMaxSeedLenExceeded
		}
		parts = append(parts, seed)
	}
	parts = append(parts, []byte{bump}, program.Bytes(), derivedAddressMarker)

	h := Blake2b(parts...)
	if isOnCurve(h) {
		return Address{}, ErrOnCurve
	}
	return BytesToAddress(h[12:]), nil
}

// FindDerivedAddress searches bumps from 255 down to 0 and returns the first viable derived address.
func FindDerivedAddress(program Address, seeds ...[]byte) (Address, byte, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateDerivedAddress(program, byte(bump), seeds...)
		if err == nil {
			return addr, byte(bump), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, ErrNoViableBumpSeed
}

func isOnCurve(h Bytes32) bool {
	compressed := make([]byte, 33)
	compressed[0] = 0x02
	copy(compressed[1:], h[:])
	_, err := crypto.DecompressPubkey(compressed)
	return err == nil
}
