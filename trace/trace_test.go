package trace_test

import (
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/coherence"
	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/trace"
)

func readAll(input string) ([]trace.Record, error) {
	r := trace.NewReader(strings.NewReader(input))
	var records []trace.Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

var _ = Describe("Reader", func() {
	It("parses READ and WRITE records with unprefixed hex addresses", func() {
		records, err := readAll("0 r 100\n1 w 200\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0]).To(Equal(trace.Record{ProcID: 0, Op: coherence.Read, Addr: 0x100}))
		Expect(records[1]).To(Equal(trace.Record{ProcID: 1, Op: coherence.Write, Addr: 0x200}))
	})

	It("treats any non-r op token as WRITE", func() {
		records, err := readAll("0 x 10\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].Op).To(Equal(coherence.Write))
	})

	It("skips blank lines", func() {
		records, err := readAll("0 r 10\n\n1 r 20\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
	})

	It("accepts a 0x-prefixed address", func() {
		records, err := readAll("0 r 0x1f\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].Addr).To(Equal(uint64(0x1f)))
	})

	It("reports a parse error on a malformed line without returning a record", func() {
		_, err := readAll("0 r zz\n")
		Expect(err).To(HaveOccurred())
		var parseErr *trace.ParseError
		Expect(err).To(BeAssignableToTypeOf(parseErr))
	})

	It("reports EOF with no trailing newline", func() {
		records, err := readAll("0 r 10")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
	})
})
