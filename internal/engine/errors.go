package engine

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// anything unwrapped surfaces as a generic internal failure.
var (
	// ErrGenerationFailure: premise or graph generation returned empty or
	// malformed output. Fatal to session creation; no partial session exists.
	ErrGenerationFailure = errors.New("narrative generation failed")

	// ErrInvalidGraph: structural validation of a generated graph failed.
	ErrInvalidGraph = errors.New("invalid quest graph")

	// ErrUnknownSession: the session id is not in the registry.
	ErrUnknownSession = errors.New("unknown session")

	// ErrSessionResolved: the session already received its terminal guess.
	ErrSessionResolved = errors.New("session already resolved")

	// ErrInvalidReference: villager, item, or location not recognized for
	// this session.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrOracleFailure: the oracle call failed mid-turn. The turn was
	// aborted with prior state untouched; the caller may retry the same
	// utterance.
	ErrOracleFailure = errors.New("oracle interaction failed")
)
