package install

import (
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PublishPath", func() {
	var savedPath string

	BeforeEach(func() {
		savedPath = os.Getenv("PATH")
	})

	AfterEach(func() {
		Expect(os.Setenv("PATH", savedPath)).To(Succeed())
	})

	It("rejects an empty path", func() {
		Expect(PublishPath("", "Linux")).To(MatchError("path cannot be null or empty"))
	})

	It("prepends the binary's directory with a colon on Linux", func() {
		Expect(PublishPath("/tools/oc-4.11/oc", "Linux")).To(Succeed())
		Expect(os.Getenv("PATH")).To(HavePrefix("/tools/oc-4.11:"))
		Expect(strings.TrimPrefix(os.Getenv("PATH"), "/tools/oc-4.11:")).To(Equal(savedPath))
	})

	It("uses backslash and semicolon for a Windows agent", func() {
		Expect(PublishPath(`C:\tools\oc\oc.exe`, "Windows_NT")).To(Succeed())
		Expect(os.Getenv("PATH")).To(HavePrefix(`C:\tools\oc;`))
	})

	It("fails when no separator matches the agent OS", func() {
		Expect(PublishPath("oc", "Linux")).To(HaveOccurred())
	})
})
