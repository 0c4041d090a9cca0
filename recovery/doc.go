// Package recovery regenerates a lost participant's share, or refreshes
// all shares, without ever reconstructing the secret.
//
// # Repairing a lost share
//
// Participant L has lost its share of a threshold-t sharing among n
// participants. Several contributors each run [Recover] with the same
// parameters, producing n shares of an independent random polynomial
// that is zero at L. Summed with [Sum], these form a mask that is zero
// at L and uniformly random everywhere else.
//
// Each helper adds its mask entry to its own share and sends the result
// to L. Any t masked shares interpolate, with [Repair], to L's original
// share because the mask contributes nothing at L. A masked share
// reveals nothing about the helper's real share.
//
// [Session] wraps these steps for use over an untrusted transport,
// validating every input and returning errors instead of panicking.
//
// # Refreshing
//
// [Refresh] adds a random polynomial with zero constant term to every
// share. The secret is unchanged while old and new shares can no longer
// be combined.
//
// # Transport agnostic
//
// Like the rest of the module, this package does no networking. Callers
// move contributions and masked shares between participants over their
// own authenticated, confidential channels.
package recovery
