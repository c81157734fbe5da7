package report_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/coherence"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/report"
)

var _ = Describe("PrintBanner", func() {
	It("echoes all six configuration parameters and the named protocol", func() {
		var buf strings.Builder
		report.PrintBanner(&buf, report.Config{
			CacheSizeBytes: 1024,
			Associativity:  2,
			BlockSizeBytes: 16,
			NumProcessors:  4,
			Protocol:       coherence.MESI,
			TraceFile:      "trace.txt",
		})
		out := buf.String()
		Expect(out).To(ContainSubstring("1024"))
		Expect(out).To(ContainSubstring("MESI"))
		Expect(out).To(ContainSubstring("trace.txt"))
	})
})

var _ = Describe("PrintCache", func() {
	It("renders exactly twelve numbered lines under the results header", func() {
		var buf strings.Builder
		report.PrintCache(&buf, 0, cache.Counters{Reads: 4, Writes: 1, ReadMisses: 2})
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(13))
		Expect(lines[0]).To(ContainSubstring("Cache 0"))
		Expect(lines[5]).To(ContainSubstring("40.00%"))
	})

	It("does not crash and reports a zero miss rate with no accesses", func() {
		var buf strings.Builder
		report.PrintCache(&buf, 1, cache.Counters{})
		Expect(buf.String()).To(ContainSubstring("0.00%"))
	})
})
