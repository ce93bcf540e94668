package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ducksim/emu"
	"github.com/sarchlab/ducksim/insts"
)

var _ = Describe("ALU", func() {
	var alu *emu.ALU

	BeforeEach(func() {
		alu = emu.NewALU()
	})

	Describe("arithmetic", func() {
		It("should add", func() {
			value, flag, err := alu.Execute(insts.OpADD, 2, 3)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(5)))
			Expect(flag).To(Equal(insts.CondP))
		})

		It("should subtract", func() {
			value, flag, err := alu.Execute(insts.OpSUB, 2, 3)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(-1)))
			Expect(flag).To(Equal(insts.CondM))
		})

		It("should multiply", func() {
			value, flag, err := alu.Execute(insts.OpMUL, -4, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(-20)))
			Expect(flag).To(Equal(insts.CondM))
		})

		It("should divide rounding toward negative infinity", func() {
			value, _, err := alu.Execute(insts.OpDIV, -7, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(-4)))

			value, _, err = alu.Execute(insts.OpDIV, 7, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(3)))
		})
	})

	Describe("flag derivation", func() {
		It("should classify zero, negative, and positive results", func() {
			cases := []struct {
				in1, in2 int32
				flag     insts.CondFlag
			}{
				{3, -3, insts.CondZ},
				{-1, -2, insts.CondM},
				{1, 2, insts.CondP},
			}
			for _, c := range cases {
				_, flag, err := alu.Execute(insts.OpADD, c.in1, c.in2)

				Expect(err).NotTo(HaveOccurred())
				Expect(flag).To(Equal(c.flag))
			}
		})

		It("should derive flags for address arithmetic too", func() {
			_, flag, err := alu.Execute(insts.OpLOAD, 10, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(flag).To(Equal(insts.CondP))

			_, flag, err = alu.Execute(insts.OpSTORE, 0, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(flag).To(Equal(insts.CondZ))
		})
	})

	Describe("division by zero", func() {
		It("should yield (0, V) and no error, whatever the dividend", func() {
			for _, x := range []int32{0, 1, -1, 1 << 30, -(1 << 30)} {
				value, flag, err := alu.Execute(insts.OpDIV, x, 0)

				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal(int32(0)))
				Expect(flag).To(Equal(insts.CondV))
			}
		})
	})

	Describe("address computation", func() {
		It("should compute in1 + in2 for LOAD and STORE", func() {
			value, _, err := alu.Execute(insts.OpLOAD, 100, 8)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(108)))

			value, _, err = alu.Execute(insts.OpSTORE, 100, -8)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(92)))
		})
	})

	Describe("HALT", func() {
		It("should compute a fixed zero", func() {
			value, flag, err := alu.Execute(insts.OpHALT, 33, 44)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int32(0)))
			Expect(flag).To(Equal(insts.CondZ))
		})
	})

	Describe("unsupported operation", func() {
		It("should fail with ErrUnsupportedOp", func() {
			_, _, err := alu.Execute(insts.Op(200), 1, 2)

			Expect(err).To(MatchError(emu.ErrUnsupportedOp))
		})
	})
})
