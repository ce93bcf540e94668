package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ducksim/emu"
)

var _ = Describe("RegFile", func() {
	var rf *emu.RegFile

	BeforeEach(func() {
		rf = emu.NewRegFile()
	})

	It("should initialize every register to zero", func() {
		for i := uint8(0); i < emu.NumRegs; i++ {
			Expect(rf.Reg(i).Get()).To(Equal(int32(0)))
		}
	})

	Describe("the zero register", func() {
		It("should read zero after any sequence of writes", func() {
			r0 := rf.Reg(emu.ZeroReg)

			r0.Put(42)
			r0.Put(-1)
			r0.Put(1 << 30)

			Expect(r0.Get()).To(Equal(int32(0)))
		})
	})

	Describe("general-purpose registers", func() {
		It("should return exactly what was stored", func() {
			for i := uint8(1); i < emu.NumRegs; i++ {
				r := rf.Reg(i)

				r.Put(int32(i) * -7)

				Expect(r.Get()).To(Equal(int32(i) * -7))
			}
		})
	})

	Describe("the program counter", func() {
		It("should be register 15", func() {
			rf.PC().Put(123)

			Expect(rf.Reg(emu.PCReg).Get()).To(Equal(int32(123)))
		})
	})
})
