package trace

import (
	"sort"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Mix tallies a trace into an instruction-mix DataFrame with mnemonic,
// count, and share columns, most frequent first. Ties break on mnemonic
// spelling so the output is deterministic.
func Mix(entries []Entry) (*dataframe.DataFrame, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTrace
	}

	counts := make(map[string]int64)
	for _, e := range entries {
		counts[e.Instr.Mnemonic().String()]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	total := float64(len(entries))
	mnemonics := make([]interface{}, len(names))
	tallies := make([]interface{}, len(names))
	shares := make([]interface{}, len(names))
	for i, name := range names {
		mnemonics[i] = name
		tallies[i] = counts[name]
		shares[i] = float64(counts[name]) / total
	}

	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("mnemonic", nil, mnemonics...),
		dataframe.NewSeriesInt64("count", nil, tallies...),
		dataframe.NewSeriesFloat64("share", nil, shares...),
	), nil
}
