package clients

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"oc-setup-task/pkg/api"
)

func releaseArchive(execName string) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	content := "#!/bin/sh\nexit 0\n"
	Expect(tw.WriteHeader(&tar.Header{Name: execName, Mode: 0755, Size: int64(len(content))})).To(Succeed())
	_, err := tw.Write([]byte(content))
	Expect(err).ToNot(HaveOccurred())
	Expect(tw.Close()).To(Succeed())
	Expect(gz.Close()).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("InstallFromMirror", func() {
	ctx := context.Background()
	oc := &cli{Name: "oc"}
	var savedPath, dir string

	BeforeEach(func() {
		savedPath = os.Getenv("PATH")
		dir = GinkgoT().TempDir()
		api.Values.Set(api.DownloadDir, dir)
		api.Values.Set(api.AgentOS, "Linux")
	})

	AfterEach(func() {
		Expect(os.Setenv("PATH", savedPath)).To(Succeed())
		api.Values.Set(api.DownloadDir, "")
		api.Values.Set(api.AgentOS, api.DefaultAgentOS())
	})

	It("fails for an unresolvable latest URL", func() {
		api.Values.Set(api.AgentOS, "SunOS")
		_, err := InstallFromMirror("", false)(ctx, oc)
		Expect(err).To(MatchError("Unable to determine latest oc download URL"))
	})

	It("fails for an unsupported major version", func() {
		_, err := InstallFromMirror("5.1.0", false)(ctx, oc)
		Expect(err).To(MatchError("Unable to determine oc download URL."))
	})

	It("installs from a direct URL and publishes PATH", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(releaseArchive("oc"))
		}))
		defer server.Close()

		path, err := InstallFromMirror(server.URL+"/oc.tar.gz", false)(ctx, oc)
		Expect(err).ToNot(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, "oc")))
		Expect(os.Getenv("PATH")).To(HavePrefix(dir + ":"))
	})

	It("fails when extraction yields no oc binary", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(releaseArchive("not-oc"))
		}))
		defer server.Close()

		_, err := InstallFromMirror(server.URL+"/oc.tar.gz", false)(ctx, oc)
		Expect(err).To(MatchError("Unable to download or extract oc binary."))
	})
})

var _ = Describe("InstallFromURL", func() {
	It("downloads the archive behind the explicit URL", func() {
		dir := GinkgoT().TempDir()
		api.Values.Set(api.DownloadDir, dir)
		api.Values.Set(api.AgentOS, "Linux")
		savedPath := os.Getenv("PATH")
		defer func() {
			Expect(os.Setenv("PATH", savedPath)).To(Succeed())
			api.Values.Set(api.DownloadDir, "")
			api.Values.Set(api.AgentOS, api.DefaultAgentOS())
		}()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(releaseArchive("oc"))
		}))
		defer server.Close()

		path, err := InstallFromURL(server.URL+"/oc.tar.gz")(context.Background(), &cli{Name: "oc"})
		Expect(err).ToNot(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, "oc")))
	})
})

var _ = Describe("PreferredSetupStrategy", func() {
	It("defaults to the local binary", func() {
		api.Values.Set(api.OcSetupStrategy, "local")
		defer api.Values.Set(api.OcSetupStrategy, "local")
		Expect(PreferredSetupStrategy()).ToNot(BeNil())
	})
})
