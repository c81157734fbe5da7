package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fenggang233/Cache-Coherence-Protocol-Simulator/cache"
)

var _ = Describe("Geometry", func() {
	It("should derive sets and bit widths for a simple power-of-two layout", func() {
		g, err := cache.NewGeometry(1024, 16, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.NumSets).To(Equal(32))
		Expect(g.BlockOffsetBits).To(Equal(uint(4)))
		Expect(g.IndexBits).To(Equal(uint(5)))
	})

	It("should reject a non-power-of-two cache size", func() {
		_, err := cache.NewGeometry(1000, 16, 2)
		Expect(err).To(HaveOccurred())
		var cfgErr *cache.ConfigError
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
	})

	It("should reject a non-power-of-two block size", func() {
		_, err := cache.NewGeometry(1024, 17, 2)
		Expect(err).To(HaveOccurred())
	})

	It("should reject an associativity that does not split the cache into whole sets", func() {
		_, err := cache.NewGeometry(1024, 16, 3)
		Expect(err).To(HaveOccurred())
	})

	It("should keep the index bits inside the tag", func() {
		g, err := cache.NewGeometry(1024, 16, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Tag(0x100)).To(Equal(uint64(0x100) >> 4))
		Expect(g.Index(0x100)).To(Equal(int((uint64(0x100) >> 4) % 32)))
	})
})

var _ = Describe("Cache", func() {
	var (
		geometry cache.Geometry
		c        *cache.Cache
	)

	BeforeEach(func() {
		var err error
		geometry, err = cache.NewGeometry(1024, 16, 2)
		Expect(err).NotTo(HaveOccurred())
		c = cache.New(geometry)
	})

	It("should miss on a cold cache", func() {
		Expect(c.FindLine(0x100)).To(BeNil())
	})

	It("should find a line once it is filled", func() {
		victim := c.FindVictim(0x100)
		victim.Tag = geometry.Tag(0x100)
		victim.State = cache.Shared
		c.UpdateLRU(victim)

		found := c.FindLine(0x100)
		Expect(found).NotTo(BeNil())
		Expect(found.State).To(Equal(cache.Shared))
	})

	It("should prefer an invalid line as the victim", func() {
		v1 := c.FindVictim(0x100)
		v1.Tag = geometry.Tag(0x100)
		v1.State = cache.Shared
		c.UpdateLRU(v1)

		v2 := c.FindVictim(0x500) // same set, different tag
		Expect(v2.Valid()).To(BeFalse())
	})

	It("should evict the least recently used valid line once the set is full", func() {
		// set 0 addresses within this 32-set geometry
		addrs := []uint64{0x0000, 0x0200}
		var lines []*cache.Line
		for _, a := range addrs {
			v := c.FindVictim(a)
			v.Tag = geometry.Tag(a)
			v.State = cache.Shared
			c.UpdateLRU(v)
			lines = append(lines, v)
		}

		// touch addrs[0] again so addrs[1] becomes LRU
		c.UpdateLRU(lines[0])

		victim := c.FindVictim(0x0400) // same set, third distinct tag
		Expect(victim).To(Equal(lines[1]))
	})

	It("should not mutate the line when only identifying a victim", func() {
		before := c.FindVictim(0x100)
		beforeCopy := *before
		_ = c.FindVictim(0x100)
		Expect(*before).To(Equal(beforeCopy))
	})
})

var _ = Describe("Counters", func() {
	It("should report a zero miss rate with no accesses", func() {
		var c cache.Counters
		Expect(c.MissRate()).To(Equal(0.0))
	})

	It("should compute the percentage miss rate", func() {
		c := cache.Counters{Reads: 3, Writes: 1, ReadMisses: 1, WriteMisses: 1}
		Expect(c.MissRate()).To(BeNumerically("~", 50.0, 0.001))
	})
})
