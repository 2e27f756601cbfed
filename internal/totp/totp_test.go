package totp_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal/totp"
)

func TestTOTP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TOTP Suite")
}

var _ = Describe("Verify", func() {
	var secret string

	// aligned to a 30-second step boundary so window arithmetic is exact
	genTime := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		var err error
		secret, _, err = totp.GenerateSecret("Timesheet System", "E001")
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with a code generated at time T and a window of 2 steps", func() {
		var code string

		BeforeEach(func() {
			var err error
			code, err = totp.GenerateCode(secret, genTime)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accepts the code at T", func() {
			Expect(totp.VerifyAt(secret, code, 2, genTime)).To(BeTrue())
		})

		It("accepts the code 60 seconds after T", func() {
			Expect(totp.VerifyAt(secret, code, 2, genTime.Add(60*time.Second))).To(BeTrue())
		})

		It("accepts the code 60 seconds before T", func() {
			Expect(totp.VerifyAt(secret, code, 2, genTime.Add(-60*time.Second))).To(BeTrue())
		})

		It("rejects the code 61 seconds before T", func() {
			Expect(totp.VerifyAt(secret, code, 2, genTime.Add(-61*time.Second))).To(BeFalse())
		})

		It("rejects the code three full steps after T", func() {
			Expect(totp.VerifyAt(secret, code, 2, genTime.Add(90*time.Second))).To(BeFalse())
		})
	})

	Context("with malformed input", func() {
		It("rejects a short code", func() {
			Expect(totp.VerifyAt(secret, "12345", 2, genTime)).To(BeFalse())
		})

		It("rejects a non-numeric code", func() {
			Expect(totp.VerifyAt(secret, "abcdef", 2, genTime)).To(BeFalse())
		})

		It("rejects an empty code", func() {
			Expect(totp.VerifyAt(secret, "", 2, genTime)).To(BeFalse())
		})
	})

	It("rejects a code generated from a different secret", func() {
		otherSecret, _, err := totp.GenerateSecret("Timesheet System", "E002")
		Expect(err).NotTo(HaveOccurred())

		code, err := totp.GenerateCode(otherSecret, genTime)
		Expect(err).NotTo(HaveOccurred())

		Expect(totp.VerifyAt(secret, code, 2, genTime)).To(BeFalse())
	})
})

var _ = Describe("GenerateSecret", func() {
	It("returns a secret and a scannable enrollment URL", func() {
		secret, url, err := totp.GenerateSecret("Timesheet System", "E001")
		Expect(err).NotTo(HaveOccurred())
		Expect(secret).NotTo(BeEmpty())
		Expect(url).To(HavePrefix("otpauth://totp/"))
	})
})

var _ = Describe("QRDataURL", func() {
	It("renders a PNG data URL", func() {
		_, url, err := totp.GenerateSecret("Timesheet System", "E001")
		Expect(err).NotTo(HaveOccurred())

		dataURL, err := totp.QRDataURL(url)
		Expect(err).NotTo(HaveOccurred())
		Expect(dataURL).To(HavePrefix("data:image/png;base64,"))
	})
})
