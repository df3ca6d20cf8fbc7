package domain

import (
	"fmt"
	"strings"
)

// Error codes
const (
	// Voting creation
	ErrCodeInvalidWindow      = "INVALID_WINDOW"
	ErrCodeTooShort           = "TOO_SHORT"
	ErrCodeTooLong            = "TOO_LONG"
	ErrCodeNoCandidates       = "NO_CANDIDATES"
	ErrCodeTooFewCandidates   = "TOO_FEW_CANDIDATES"
	ErrCodeStartedByCandidate = "STARTED_BY_CANDIDATE"
	ErrCodeVotersNotFound     = "VOTERS_NOT_FOUND"
	ErrCodeInvalidVotingType  = "INVALID_VOTING_TYPE"

	// Vote casting
	ErrCodeSelfVote           = "SELF_VOTE"
	ErrCodeVotingNotFound     = "VOTING_NOT_FOUND"
	ErrCodeVotingEnded        = "VOTING_ENDED"
	ErrCodeDuplicateVote      = "DUPLICATE_VOTE"
	ErrCodeVoterNotRegistered = "VOTER_NOT_REGISTERED"
	ErrCodeInvalidChoice      = "INVALID_CHOICE"

	// Voter registration and tally
	ErrCodeNoVoters     = "NO_VOTERS"
	ErrCodeInvalidTally = "INVALID_TALLY"
)

// ValidationError is a deterministic rejection with a human-readable reason
type ValidationError struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Details  string   `json:"details,omitempty"`
	VoterIDs []string `json:"voter_ids,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if len(e.VoterIDs) > 0 {
		msg += " (" + strings.Join(e.VoterIDs, ", ") + ")"
	}
	return msg
}

// Is matches validation errors by code so sentinels work with errors.Is
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// WithDetails returns a copy of the error carrying details
func (e *ValidationError) WithDetails(format string, args ...interface{}) *ValidationError {
	c := *e
	c.Details = fmt.Sprintf(format, args...)
	return &c
}

// WithVoterIDs returns a copy of the error naming the offending voters
func (e *ValidationError) WithVoterIDs(ids []string) *ValidationError {
	c := *e
	c.VoterIDs = append([]string(nil), ids...)
	return &c
}

var (
	ErrInvalidWindow      = NewValidationError(ErrCodeInvalidWindow, "voting must not end before it starts")
	ErrTooShort           = NewValidationError(ErrCodeTooShort, "voting duration is shorter than the minimum allowed")
	ErrTooLong            = NewValidationError(ErrCodeTooLong, "voting duration is longer than the maximum allowed")
	ErrNoCandidates       = NewValidationError(ErrCodeNoCandidates, "voting requires candidates")
	ErrTooFewCandidates   = NewValidationError(ErrCodeTooFewCandidates, "election has fewer candidates than required")
	ErrStartedByCandidate = NewValidationError(ErrCodeStartedByCandidate, "a candidate cannot start the voting")
	ErrVotersNotFound     = NewValidationError(ErrCodeVotersNotFound, "voters not found or inactive")
	ErrInvalidVotingType  = NewValidationError(ErrCodeInvalidVotingType, "voting type is invalid or missing its details")

	ErrSelfVote           = NewValidationError(ErrCodeSelfVote, "voter cannot vote for himself")
	ErrVotingNotFound     = NewValidationError(ErrCodeVotingNotFound, "voting not found")
	ErrVotingEnded        = NewValidationError(ErrCodeVotingEnded, "voting has already ended")
	ErrDuplicateVote      = NewValidationError(ErrCodeDuplicateVote, "voter has already voted in this voting")
	ErrVoterNotRegistered = NewValidationError(ErrCodeVoterNotRegistered, "user is not registered as a voter")
	ErrInvalidChoice      = NewValidationError(ErrCodeInvalidChoice, "choice does not match the voting type")

	ErrNoVoters     = NewValidationError(ErrCodeNoVoters, "no voters to register")
	ErrInvalidTally = NewValidationError(ErrCodeInvalidTally, "votes do not match the voting type")
)
