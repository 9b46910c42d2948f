package service

import "errors"

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchFull          = errors.New("match is full")
	ErrMatchNotInProgress = errors.New("match is not in progress")
	ErrSelectionsLocked   = errors.New("selections are locked; resolving current round")
	ErrPlayerNotInMatch   = errors.New("player not in match")
	ErrAlreadySubmitted   = errors.New("selection already submitted for this round")
	ErrAlreadyInMatch     = errors.New("player is already in a match")
	ErrAlreadyQueued      = errors.New("player is already queued")
	ErrNotQueued          = errors.New("player is not queued")
	ErrUnknownCharacter   = errors.New("unknown character")
)
