package dating

import (
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// PairSeparator joins the two user ids of a pair id.
const PairSeparator = "_"

// pairEscaper percent-encodes the separator and the escape character inside a
// user id, so a separator in the joined id always splits the two members.
var pairEscaper = strings.NewReplacer("%", "%25", PairSeparator, "%5F")

// PairID returns the id of the unordered pair {a, b} together with its
// lexicographically ordered members. PairID(a, b) == PairID(b, a), and
// distinct pairs never share an id even when user ids contain the separator.
func PairID(a, b string) (id, low, high string) {
	low, high = a, b
	if high < low {
		low, high = high, low
	}
	return pairEscaper.Replace(low) + PairSeparator + pairEscaper.Replace(high), low, high
}

// NewCreationEvent encodes doc as the fields of a creation event.
func NewCreationEvent(collection, documentID string, doc any) (CreationEvent, error) {
	fields, err := msgpack.Marshal(doc)
	if err != nil {
		return CreationEvent{}, fmt.Errorf("failed to encode %s/%s: %w", collection, documentID, err)
	}
	return CreationEvent{
		Collection: collection,
		DocumentID: documentID,
		Fields:     fields,
	}, nil
}

// Decode unpacks the event fields into v.
func (e CreationEvent) Decode(v any) error {
	return msgpack.Unmarshal(e.Fields, v)
}
