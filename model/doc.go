// Package model groups the declarative, I/O free types of the simulator.
//
// Process definitions are decoded from plain text sources into the
// structures defined in the `program` sub-package, run outcomes are captured
// by `report`, and `message` holds the localized templates used to render the
// event log.  Nothing under model mutates scheduler state.
package model
