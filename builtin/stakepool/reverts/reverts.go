// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Code classifies a stake pool revert.
type Code uint8

const (
	CodeUnauthorized Code = iota + 1
	CodeInvalidAccountOwner
	CodeZeroAmount
	CodeArithmeticOverflow
	CodeInsufficientShares
	CodeBelowMinimumStake
	CodeAboveMaximumStake
	CodeInvalidState
	CodeCooldownNotElapsed
	CodeNoRewardsAvailable
	CodeExternalCallFailed
	CodePoolPaused
	CodeInvalidFee
	CodeInvalidPoolName
	CodeUninitialized
	CodeAlreadyInitialized
)

var codeNames = map[Code]string{
	CodeUnauthorized:        "unauthorized",
	CodeInvalidAccountOwner: "invalid account owner",
	CodeZeroAmount:          "zero amount",
	CodeArithmeticOverflow:  "arithmetic overflow",
	CodeInsufficientShares:  "insufficient shares",
	CodeBelowMinimumStake:   "below minimum stake",
	CodeAboveMaximumStake:   "above maximum stake",
	CodeInvalidState:        "invalid state",
	CodeCooldownNotElapsed:  "cooldown not elapsed",
	CodeNoRewardsAvailable:  "no rewards available",
	CodeExternalCallFailed:  "external call failed",
	CodePoolPaused:          "pool paused",
	CodeInvalidFee:          "invalid fee",
	CodeInvalidPoolName:     "invalid pool name",
	CodeUninitialized:       "pool uninitialized",
	CodeAlreadyInitialized:  "pool already initialized",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", uint8(c))
}

var (
	ErrUnauthorized        = New(CodeUnauthorized)
	ErrInvalidAccountOwner = New(CodeInvalidAccountOwner)
	ErrZeroAmount          = New(CodeZeroAmount)
	ErrArithmeticOverflow  = New(CodeArithmeticOverflow)
	ErrInsufficientShares  = New(CodeInsufficientShares)
	ErrBelowMinimumStake   = New(CodeBelowMinimumStake)
	ErrAboveMaximumStake   = New(CodeAboveMaximumStake)
	ErrInvalidState        = New(CodeInvalidState)
	ErrCooldownNotElapsed  = New(CodeCooldownNotElapsed)
	ErrNoRewardsAvailable  = New(CodeNoRewardsAvailable)
	ErrExternalCallFailed  = New(CodeExternalCallFailed)
	ErrPoolPaused          = New(CodePoolPaused)
	ErrInvalidFee          = New(CodeInvalidFee)
	ErrInvalidPoolName     = New(CodeInvalidPoolName)
	ErrUninitialized       = New(CodeUninitialized)
	ErrAlreadyInitialized  = New(CodeAlreadyInitialized)
)

// ErrRevert aborts a stake pool operation. All of its effects are reverted.
type ErrRevert struct {
	code    Code
	message string
	cause   error
}

func New(code Code) *ErrRevert {
	return &ErrRevert{code: code}
}

// WithMessage returns a revert of the same code carrying extra context.
func WithMessage(base *ErrRevert, format string, args ...any) *ErrRevert {
	return &ErrRevert{
		code:    base.code,
		message: fmt.Sprintf(format, args...),
		cause:   base.cause,
	}
}

// External wraps the failure of a collaborating program.
func External(op string, cause error) *ErrRevert {
	return &ErrRevert{
		code:    CodeExternalCallFailed,
		message: op,
		cause:   cause,
	}
}

func (e *ErrRevert) Code() Code {
	return e.code
}

func (e *ErrRevert) Error() string {
	msg := e.code.String()
	if e.message != "" {
		msg += ": " + e.message
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Is reports whether target is a revert of the same code.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.code == e.code
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// IsBenign reports whether err leaves the pool in a state worth retrying later.
func IsBenign(err error) bool {
	return errors.Is(err, ErrNoRewardsAvailable)
}

// CodeOf returns the code of the revert in err, or zero.
func CodeOf(err error) Code {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.code
	}
	return 0
}
