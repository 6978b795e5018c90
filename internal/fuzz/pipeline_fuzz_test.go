package fuzztests

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"workbook/internal/driver"
	"workbook/internal/scan"
	"workbook/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	pipeline := driver.New(driver.DefaultOptions())
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		stderr := string(input)

		lines := scan.Scan(stderr)
		if n := strings.Count(stderr, "\n") + 1; len(lines) > n {
			t.Fatalf("scan produced %d lines for %d input lines", len(lines), n)
		}

		records, markers := pipeline.Parse(stderr)
		if err := testkit.CheckInvariants(stderr, records, markers); err != nil {
			t.Fatalf("invariants: %v", err)
		}

		again, againMarkers := pipeline.Parse(stderr)
		if !cmp.Equal(records, again) || !cmp.Equal(markers, againMarkers) {
			t.Fatalf("pipeline is not idempotent for %q", stderr)
		}
	})
}
