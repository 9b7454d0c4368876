package trace

import (
	"errors"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/rasm/internal/testutil"
	"github.com/akhildatla/rasm/pkg/rv32"
)

func TestLoad_CSV(t *testing.T) {
	path := testutil.TempFile(t, testutil.SampleTraceCSV(), ".csv")

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	if entries[0].PC != 0 || entries[0].Word != 0x02A10093 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[0].Instr.Mnemonic() != rv32.ADDI {
		t.Errorf("entry 0 decoded as %s, want addi", entries[0].Instr)
	}
	if entries[3].PC != 12 || entries[3].Instr.Mnemonic() != rv32.ECALL {
		t.Errorf("entry 3 = %+v", entries[3])
	}
}

func TestLoad_JSON(t *testing.T) {
	path := testutil.TempFile(t, testutil.SampleTraceJSON(), ".json")

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if entries[1].Word != 0x003100B3 || entries[1].Instr.Mnemonic() != rv32.ADD {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	if _, err := Load("trace.xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadParquet_MissingFile(t *testing.T) {
	if _, err := LoadParquet("/nonexistent/trace.parquet"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEntries_MissingColumn(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesInt64("pc", nil, int64(0), int64(4)),
	)
	if _, err := Entries(df); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestEntries_BadWord(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesInt64("pc", nil, int64(0)),
		dataframe.NewSeriesInt64("word", nil, int64(0)),
	)
	if _, err := Entries(df); !errors.Is(err, rv32.ErrUnknownOpcode) {
		t.Errorf("expected ErrUnknownOpcode, got %v", err)
	}
}

func TestEntries_BadCell(t *testing.T) {
	df := dataframe.NewDataFrame(
		dataframe.NewSeriesString("pc", nil, "zero"),
		dataframe.NewSeriesString("word", nil, "0x00000073"),
	)
	if _, err := Entries(df); !errors.Is(err, ErrBadRecord) {
		t.Errorf("expected ErrBadRecord, got %v", err)
	}
}

func TestMix(t *testing.T) {
	path := testutil.TempFile(t, testutil.SampleTraceCSV(), ".csv")
	entries, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	df, err := Mix(entries)
	if err != nil {
		t.Fatalf("Mix failed: %v", err)
	}
	if df.NRows() != 3 {
		t.Fatalf("got %d rows, want 3", df.NRows())
	}

	// add appears twice and leads; addi and ecall tie at one and order
	// alphabetically.
	wantNames := []string{"add", "addi", "ecall"}
	wantCounts := []int64{2, 1, 1}
	for row := 0; row < 3; row++ {
		name := df.Series[0].Value(row).(string)
		count := df.Series[1].Value(row).(int64)
		share := df.Series[2].Value(row).(float64)

		if name != wantNames[row] {
			t.Errorf("row %d mnemonic = %s, want %s", row, name, wantNames[row])
		}
		if count != wantCounts[row] {
			t.Errorf("row %d count = %d, want %d", row, count, wantCounts[row])
		}
		if want := float64(wantCounts[row]) / 4; share != want {
			t.Errorf("row %d share = %v, want %v", row, share, want)
		}
	}
}

func TestMix_Empty(t *testing.T) {
	if _, err := Mix(nil); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
}
