// Package report encodes experiment results as protobuf Struct messages and
// writes them as JSON or binary wire format.
//
// Undefined metrics are encoded as null rather than dropped, so a reader can tell
// "not computed" from "undefined for this data".
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jtbricker/mlexp/gridsearch"
	"github.com/jtbricker/mlexp/model"
	"github.com/jtbricker/mlexp/summary"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects the output encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatBinary:
		return "binary"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "json", "binary" or "pb", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "binary", "pb":
		return FormatBinary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Sweep encodes metric scores as {name: value}.
func Sweep(scores map[string]float64) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(scores))
	for name, v := range scores {
		fields[name] = number(v)
	}
	return &structpb.Struct{Fields: fields}
}

// Summaries encodes fold summaries as {"metrics": [{name, mean, std, n, missing}, ...]}.
func Summaries(ss []summary.Summary) *structpb.Struct {
	list := make([]*structpb.Value, len(ss))
	for i, s := range ss {
		list[i] = structpb.NewStructValue(summaryStruct(s))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"metrics": structpb.NewListValue(&structpb.ListValue{Values: list}),
	}}
}

// Grid encodes a search result: the refit scorer, every candidate in grid order
// with its fold summaries, the best candidate and the validation scores.
func Grid(r *gridsearch.Result) *structpb.Struct {
	candidates := make([]*structpb.Value, len(r.Candidates))
	for i, c := range r.Candidates {
		candidates[i] = structpb.NewStructValue(candidateStruct(c))
	}
	fields := map[string]*structpb.Value{
		"refit":      structpb.NewStringValue(r.Refit),
		"best":       structpb.NewStructValue(candidateStruct(r.Best)),
		"candidates": structpb.NewListValue(&structpb.ListValue{Values: candidates}),
	}
	if r.Validation != nil {
		fields["validation"] = structpb.NewStructValue(Sweep(r.Validation))
	}
	return &structpb.Struct{Fields: fields}
}

// Write encodes msg to w in the given format. JSON output is indented and ends
// with a newline.
func Write(w io.Writer, msg proto.Message, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		data, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
		data = append(data, '\n')
	case FormatBinary:
		data, err = proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("encoding %s report: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a report previously produced by Write.
func Read(r io.Reader, f Format) (*structpb.Struct, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var s structpb.Struct
	switch f {
	case FormatJSON:
		err = protojson.Unmarshal(data, &s)
	case FormatBinary:
		err = proto.Unmarshal(data, &s)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s report: %w", f, err)
	}
	return &s, nil
}

func summaryStruct(s summary.Summary) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":    structpb.NewStringValue(s.Name),
		"mean":    number(s.Mean),
		"std":     number(s.Std),
		"n":       structpb.NewNumberValue(float64(s.N)),
		"missing": structpb.NewNumberValue(float64(s.Missing)),
	}}
}

func candidateStruct(c gridsearch.Candidate) *structpb.Struct {
	metrics := make([]*structpb.Value, 0, len(c.Scores))
	for _, s := range summary.Summarize(c.Scores) {
		metrics = append(metrics, structpb.NewStructValue(summaryStruct(s)))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"params":  structpb.NewStructValue(params(c.Params)),
		"rank":    structpb.NewNumberValue(float64(c.Rank)),
		"mean":    number(c.Mean),
		"std":     number(c.Std),
		"metrics": structpb.NewListValue(&structpb.ListValue{Values: metrics}),
	}}
}

func params(p model.Params) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(p))
	for k, v := range p {
		fields[k] = number(v)
	}
	return &structpb.Struct{Fields: fields}
}

// number maps NaN to null. Infinities are not produced by any metric.
func number(v float64) *structpb.Value {
	if math.IsNaN(v) {
		return structpb.NewNullValue()
	}
	return structpb.NewNumberValue(v)
}
