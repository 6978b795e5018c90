package diagfmt

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"workbook/internal/marker"
)

// markerPayloadSchema is bumped when MarkerPayload changes shape.
const markerPayloadSchema uint16 = 1

// MarkerPayload is the binary replace-all message sent to an editor: the
// namespace whose markers must be cleared and the new set to apply.
type MarkerPayload struct {
	Schema    uint16       `msgpack:"schema"`
	Namespace string       `msgpack:"namespace"`
	Markers   []MarkerJSON `msgpack:"markers"`
}

// Msgpack writes the marker payload for namespace.
func Msgpack(w io.Writer, namespace string, markers []marker.Marker) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&MarkerPayload{
		Schema:    markerPayloadSchema,
		Namespace: namespace,
		Markers:   markersJSON(markers),
	})
}

// DecodeMsgpack reads a payload written by Msgpack.
func DecodeMsgpack(r io.Reader) (MarkerPayload, error) {
	var p MarkerPayload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return MarkerPayload{}, err
	}
	if p.Schema != markerPayloadSchema {
		return MarkerPayload{}, fmt.Errorf("unsupported marker payload schema %d", p.Schema)
	}
	return p, nil
}
