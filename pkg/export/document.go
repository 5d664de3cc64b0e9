package export

import (
	"encoding/json"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// SchemaVersion is the version literal stamped into every exported json
// document. It is the durable interoperability contract: documents with
// this version round-trip bit-compatibly through Import.
const SchemaVersion = "1.0"

// Document is the versioned json export schema. Node data and edge
// labels pass through verbatim; node-type styling is intentionally not
// embedded and is re-resolved from the registry on import.
type Document struct {
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
	Nodes     []canvas.Node  `json:"nodes"`
	Edges     []canvas.Edge  `json:"edges"`
}

// NewDocument captures the graph into a document stamped with
// SchemaVersion and the current time. The node and edge slices are deep
// copies, so the document stays stable while the live canvas keeps
// changing.
func NewDocument(nodes []canvas.Node, edges []canvas.Edge, metadata map[string]any) Document {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Document{
		Version:   SchemaVersion,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
		Nodes:     canvas.CloneNodes(nodes),
		Edges:     canvas.CloneEdges(edges),
	}
}

// MarshalDocument serializes a document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a document. Only the
// shape is validated; an unknown version is passed through for the
// caller to decide about.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "unmarshal document")
	}
	return d, nil
}

// Import reconstructs node and edge slices from a serialized document.
// This is the inverse of json export: the returned graph deep-equals the
// one the document was created from.
func Import(data []byte) (canvas.Graph, error) {
	d, err := UnmarshalDocument(data)
	if err != nil {
		return canvas.Graph{}, err
	}
	return canvas.Graph{Nodes: d.Nodes, Edges: d.Edges}, nil
}
