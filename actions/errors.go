package actions

import "errors"

var (
	ErrAmountConstraintViolated = errors.New("amount must be greater than 0")
	ErrMarketClosed             = errors.New("market has been closed")
	ErrMarketNotClosed          = errors.New("market is not closed")
	ErrMarketDoesNotExist       = errors.New("market doesn't exist")
	ErrNotEnoughShares          = errors.New("not enough shares")
	ErrNotOracle                = errors.New("caller is not oracle")
	ErrNoSharesToSell           = errors.New("no shares to sell")
	ErrMarketAlreadyExists      = errors.New("market already exists")
	ErrAlreadyVoted             = errors.New("already voted in this market")
	ErrNoWinningShares          = errors.New("no winning shares to claim")

	ErrDescriptionEmpty   = errors.New("market description cannot be empty")
	ErrDescriptionTooLong = errors.New("market description is too long")
	ErrUnexpectedTypeID   = errors.New("unexpected type id")
)
