package support

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DownloadFile", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("writes the body and leaves no temporary file behind", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("payload"))
		}))
		defer server.Close()

		dest := filepath.Join(dir, "oc.tar.gz")
		Expect(DownloadFile(context.Background(), server.URL, dest, "")).To(Succeed())

		content, err := os.ReadFile(dest)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal("payload"))
		Expect(dest + ".tmp").ToNot(BeAnExistingFile())
	})

	It("fails on a non-2xx response without creating the file", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		dest := filepath.Join(dir, "oc.tar.gz")
		Expect(DownloadFile(context.Background(), server.URL, dest, "")).ToNot(Succeed())
		Expect(dest).ToNot(BeAnExistingFile())
	})

	It("rejects an unparsable proxy", func() {
		dest := filepath.Join(dir, "oc.tar.gz")
		err := DownloadFile(context.Background(), "http://mirror.example/oc.tar.gz", dest, "http://bad proxy")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Reachable", func() {
	It("is true for a URL answering the HEAD probe", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodHead))
		}))
		defer server.Close()

		Expect(Reachable(context.Background(), server.URL, "")).To(BeTrue())
	})

	It("is false for a non-OK answer", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		Expect(Reachable(context.Background(), server.URL, "")).To(BeFalse())
	})

	It("is false when the host is unreachable", func() {
		Expect(Reachable(context.Background(), "http://127.0.0.1:1/oc.tar.gz", "")).To(BeFalse())
	})
})
