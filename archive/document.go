package archive

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/hupe1980/pcstgo/graph"
	"github.com/hupe1980/pcstgo/model"
)

// document is the codec-encoded payload of an archive.
type document struct {
	Pruning     string   `json:"pruning"`
	NumClusters int      `json:"num_clusters"`
	Root        *keyDoc  `json:"root,omitempty"`
	Stats       statsDoc `json:"stats"`
	Rows        []rowDoc `json:"rows"`
}

type statsDoc struct {
	Nodes         int `json:"nodes"`
	Edges         int `json:"edges"`
	PrizesApplied int `json:"prizes_applied"`
	PrizesSkipped int `json:"prizes_skipped"`
}

type rowDoc struct {
	Seq    int     `json:"seq"`
	Edge   keyDoc  `json:"edge"`
	Source keyDoc  `json:"source"`
	Target keyDoc  `json:"target"`
	Cost   float64 `json:"cost"`
}

// keyDoc serializes a model.Key. Integer kinds render as decimal text;
// bytes are base64 so the document stays valid UTF-8 regardless of content.
type keyDoc struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func keyToDoc(k model.Key) keyDoc {
	switch k.Kind() {
	case model.KeyKindBytes:
		text, _ := k.Text()
		return keyDoc{Kind: "bytes", Value: base64.StdEncoding.EncodeToString([]byte(text))}
	case model.KeyKindInt64:
		return keyDoc{Kind: "int64", Value: k.Canonical()}
	case model.KeyKindUint64:
		return keyDoc{Kind: "uint64", Value: k.Canonical()}
	default:
		return keyDoc{Kind: "string", Value: k.Canonical()}
	}
}

func (d keyDoc) key() (model.Key, error) {
	switch d.Kind {
	case "int64":
		v, err := strconv.ParseInt(d.Value, 10, 64)
		if err != nil {
			return model.Key{}, fmt.Errorf("invalid int64 key %q", d.Value)
		}
		return model.Int64Key(v), nil
	case "uint64":
		v, err := strconv.ParseUint(d.Value, 10, 64)
		if err != nil {
			return model.Key{}, fmt.Errorf("invalid uint64 key %q", d.Value)
		}
		return model.Uint64Key(v), nil
	case "string":
		return model.StringKey(d.Value), nil
	case "bytes":
		b, err := base64.StdEncoding.DecodeString(d.Value)
		if err != nil {
			return model.Key{}, fmt.Errorf("invalid bytes key: %w", err)
		}
		return model.BytesKey(b), nil
	default:
		return model.Key{}, fmt.Errorf("unknown key kind %q", d.Kind)
	}
}

func (a *Archive) document() document {
	doc := document{
		Pruning:     a.Pruning,
		NumClusters: a.NumClusters,
		Stats: statsDoc{
			Nodes:         a.Stats.Nodes,
			Edges:         a.Stats.Edges,
			PrizesApplied: a.Stats.PrizesApplied,
			PrizesSkipped: a.Stats.PrizesSkipped,
		},
		Rows: make([]rowDoc, len(a.Rows)),
	}
	if a.Root.Valid() {
		kd := keyToDoc(a.Root)
		doc.Root = &kd
	}
	for i, row := range a.Rows {
		doc.Rows[i] = rowDoc{
			Seq:    row.Seq,
			Edge:   keyToDoc(row.Edge),
			Source: keyToDoc(row.Source),
			Target: keyToDoc(row.Target),
			Cost:   row.Cost,
		}
	}
	return doc
}

func (d document) archive() (*Archive, error) {
	a := &Archive{
		Pruning:     d.Pruning,
		NumClusters: d.NumClusters,
		Stats: graph.Stats{
			Nodes:         d.Stats.Nodes,
			Edges:         d.Stats.Edges,
			PrizesApplied: d.Stats.PrizesApplied,
			PrizesSkipped: d.Stats.PrizesSkipped,
		},
		Rows: make([]model.ResultRow, len(d.Rows)),
	}
	if d.Root != nil {
		root, err := d.Root.key()
		if err != nil {
			return nil, err
		}
		a.Root = root
	}
	for i, row := range d.Rows {
		edge, err := row.Edge.key()
		if err != nil {
			return nil, err
		}
		source, err := row.Source.key()
		if err != nil {
			return nil, err
		}
		target, err := row.Target.key()
		if err != nil {
			return nil, err
		}
		a.Rows[i] = model.ResultRow{
			Seq:    row.Seq,
			Edge:   edge,
			Source: source,
			Target: target,
			Cost:   row.Cost,
		}
	}
	return a, nil
}
