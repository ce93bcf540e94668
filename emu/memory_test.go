package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ducksim/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory(16)
	})

	It("should store and retrieve words", func() {
		Expect(mem.Put(-99, 3)).To(Succeed())

		value, err := mem.Get(3)

		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(int32(-99)))
	})

	It("should reject negative addresses", func() {
		_, err := mem.Get(-1)
		Expect(err).To(MatchError(emu.ErrAddressOutOfRange))

		Expect(mem.Put(0, -1)).To(MatchError(emu.ErrAddressOutOfRange))
	})

	It("should reject addresses beyond the configured size", func() {
		_, err := mem.Get(16)
		Expect(err).To(MatchError(emu.ErrAddressOutOfRange))

		Expect(mem.Put(0, 16)).To(MatchError(emu.ErrAddressOutOfRange))
	})

	Describe("LoadProgram", func() {
		It("should copy words from the start address", func() {
			Expect(mem.LoadProgram(4, []int32{7, 8, 9})).To(Succeed())

			for i, want := range []int32{7, 8, 9} {
				value, err := mem.Get(int32(4 + i))
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal(want))
			}
		})

		It("should fail when the program does not fit", func() {
			err := mem.LoadProgram(15, []int32{1, 2})

			Expect(err).To(MatchError(emu.ErrAddressOutOfRange))
		})
	})
})
