package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ducksim/insts"
)

var _ = Describe("CondFlag", func() {
	It("should match when the mask intersects the current flag", func() {
		Expect(insts.CondAlways.Matches(insts.CondZ)).To(BeTrue())
		Expect((insts.CondM | insts.CondZ).Matches(insts.CondZ)).To(BeTrue())
	})

	It("should not match a disjoint flag", func() {
		Expect(insts.CondP.Matches(insts.CondZ)).To(BeFalse())
		Expect(insts.CondNever.Matches(insts.CondAlways)).To(BeFalse())
	})

	It("should render flag names", func() {
		Expect(insts.CondZ.String()).To(Equal("Z"))
		Expect((insts.CondM | insts.CondZ).String()).To(Equal("MZ"))
		Expect(insts.CondAlways.String()).To(Equal("ALWAYS"))
		Expect(insts.CondNever.String()).To(Equal("NEVER"))
	})
})
