package executor

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/onvault/quorum"
	"github.com/onvault/quorum/orm"
)

// ActionCodeV1 is the current way to prefix the bytes an action
// identifier digests
var ActionCodeV1 = []byte{0, 0xAC, 0x1D, 0}

/*
ComputeActionID derives the deterministic identifier of a batch under a
given global action counter value, using the following format:

version | counter           | for each step: target | value             | len(payload) | payload
4bytes  | int64 (bigendian) |                20 b   | int64 (bigendian) | uint32 (BE)  | raw

The whole preimage is hashed with sha256. Embedding the counter ensures
two identical step lists submitted at different times receive different
identifiers, so an already executed batch can never be replayed after the
counter advanced. Length-prefixing the payload keeps step boundaries
unambiguous.

Callers can predict the identifier of their next submission by passing
the current counter value.
*/
func ComputeActionID(steps []quorum.Step, counter int64) quorum.ActionID {
	output := append([]byte(nil), ActionCodeV1...)
	output = append(output, orm.EncodeSequence(counter)...)
	for _, s := range steps {
		output = append(output, s.Target...)
		output = append(output, orm.EncodeSequence(s.Value)...)
		size := make([]byte, 4)
		binary.BigEndian.PutUint32(size, uint32(len(s.Payload)))
		output = append(output, size...)
		output = append(output, s.Payload...)
	}
	hashed := sha256.Sum256(output)
	return hashed[:]
}
