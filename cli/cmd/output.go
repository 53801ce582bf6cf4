package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/calc/cli/cmd/repl"
)

// defaultIndent is the number of spaces used to indent YAML documents.
const defaultIndent = 2

// Output formats of the eval command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func outputFormats() []string { return []string{outputText, outputJSON, outputYAML} }

// number is a float64 that encodes ±Inf and NaN as JSON strings.
type number float64

// MarshalJSON implements json.Marshaler.
func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.AppendQuote(nil, fmt.Sprint(f)), nil
	}

	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler. YAML has native
// spellings for the non-finite values.
func (n number) MarshalYAML() (any, error) { return float64(n), nil }

// Record is the evaluation of one input line.
type Record struct {
	Source string  `json:"source,omitempty" yaml:"source,omitempty"`
	Line   int     `json:"line"             yaml:"line"`
	Input  string  `json:"input"            yaml:"input"`
	Value  *number `json:"value,omitempty"  yaml:"value,omitempty"`
	Absent bool    `json:"absent,omitempty" yaml:"absent,omitempty"`
	Error  string  `json:"error,omitempty"  yaml:"error,omitempty"`
	Index  *int    `json:"index,omitempty"  yaml:"index,omitempty"`

	reply string
}

// newRecord converts the outcome of line n of src into a Record.
func newRecord(src string, n int, out repl.Outcome) Record {
	rec := Record{
		Source: src,
		Line:   n,
		Input:  out.Input,
		reply:  out.Reply(),
	}

	switch {
	case out.Result.IsError():
		pos := out.Result.Position()
		rec.Error = out.Result.Message()
		rec.Index = &pos

	case out.Err != nil:
		rec.Error = out.Err.Error()

	case out.Absent():
		rec.Absent = true

	default:
		v := number(out.Value)
		rec.Value = &v
	}

	return rec
}

// Failed reports whether the line could not be parsed or evaluated.
func (r Record) Failed() bool { return r.Error != "" }

// recordWriter writes a stream of records in one output format.
type recordWriter interface {
	Write(ctx context.Context, rec Record) error
}

func newRecordWriter(format string, w io.Writer) (recordWriter, error) {
	switch format {
	case outputText, "":
		return textWriter{w: w}, nil
	case outputJSON:
		return jsonWriter{enc: json.NewEncoder(w)}, nil
	case outputYAML:
		return yamlWriter{w: w}, nil
	default:
		return nil, ErrOutput.With(
			slog.String("format", format),
			slog.Any("formats", outputFormats()),
		)
	}
}

// textWriter prints the REPL reply of each line. Absent lines print nothing.
type textWriter struct{ w io.Writer }

func (t textWriter) Write(_ context.Context, rec Record) error {
	if rec.Absent {
		return nil
	}

	if _, err := fmt.Fprintln(t.w, rec.reply); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// jsonWriter prints one JSON object per line.
type jsonWriter struct{ enc *json.Encoder }

func (j jsonWriter) Write(_ context.Context, rec Record) error {
	if err := j.enc.Encode(rec); err != nil {
		return ErrJSONMarshal.Wrap(err).With(slog.Int("line", rec.Line))
	}

	return nil
}

// yamlWriter prints each record as an item of one YAML sequence.
type yamlWriter struct{ w io.Writer }

func (y yamlWriter) Write(ctx context.Context, rec Record) error {
	data, err := yaml.MarshalContext(ctx, []Record{rec}, yaml.Indent(defaultIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err).With(slog.Int("line", rec.Line))
	}

	if _, err := y.w.Write(data); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
