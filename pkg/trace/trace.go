// Package trace loads instruction execution traces and summarizes them.
// A trace is a table with a "pc" and a "word" column; every word is decoded
// so malformed traces surface immediately.
package trace

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/rasm/pkg/rv32"
)

var (
	ErrEmptyTrace        = errors.New("empty trace")
	ErrMissingColumn     = errors.New("missing trace column")
	ErrBadRecord         = errors.New("bad trace record")
	ErrUnsupportedFormat = errors.New("unsupported trace format")
)

// Entry is one executed instruction: where it ran, its raw word, and the
// decoded form.
type Entry struct {
	PC    uint32
	Word  uint32
	Instr rv32.Instruction
}

// Load reads a trace file, dispatching on the file extension (.csv, .json
// or .parquet), and decodes every record.
func Load(path string) ([]Entry, error) {
	var (
		df  *dataframe.DataFrame
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		df, err = LoadCSV(path)
	case ".json":
		df, err = LoadJSON(path)
	case ".parquet":
		df, err = LoadParquet(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return Entries(df)
}

// Entries extracts and decodes the pc/word columns of a loaded trace.
func Entries(df *dataframe.DataFrame) ([]Entry, error) {
	pcCol, err := findColumn(df, "pc")
	if err != nil {
		return nil, err
	}
	wordCol, err := findColumn(df, "word")
	if err != nil {
		return nil, err
	}

	n := df.NRows()
	if n == 0 {
		return nil, ErrEmptyTrace
	}

	entries := make([]Entry, 0, n)
	for row := 0; row < n; row++ {
		pc, err := uint32At(df.Series[pcCol].Value(row))
		if err != nil {
			return nil, fmt.Errorf("row %d: pc: %w", row, err)
		}
		word, err := uint32At(df.Series[wordCol].Value(row))
		if err != nil {
			return nil, fmt.Errorf("row %d: word: %w", row, err)
		}
		instr, err := rv32.Decode(word)
		if err != nil {
			return nil, fmt.Errorf("row %d (pc %#08x): %w", row, pc, err)
		}
		entries = append(entries, Entry{PC: pc, Word: word, Instr: instr})
	}
	return entries, nil
}

func findColumn(df *dataframe.DataFrame, name string) (int, error) {
	for i, s := range df.Series {
		if strings.EqualFold(s.Name(), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
}

// uint32At normalizes a cell value. Type inference may deliver integers,
// floats, or hex strings depending on the source format.
func uint32At(v interface{}) (uint32, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: empty cell", ErrBadRecord)
	case int64:
		if x < 0 || x > math.MaxUint32 {
			return 0, fmt.Errorf("%w: %d does not fit 32 bits", ErrBadRecord, x)
		}
		return uint32(x), nil
	case float64:
		if x != math.Trunc(x) || x < 0 || x > math.MaxUint32 {
			return 0, fmt.Errorf("%w: %v is not a 32-bit value", ErrBadRecord, x)
		}
		return uint32(x), nil
	case string:
		u, err := strconv.ParseUint(x, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadRecord, x)
		}
		return uint32(u), nil
	default:
		return 0, fmt.Errorf("%w: unsupported cell type %T", ErrBadRecord, v)
	}
}
