package ocsetup

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"oc-setup-task/pkg/clients"
	"oc-setup-task/pkg/kubernetes"
	"oc-setup-task/pkg/support"
	"oc-setup-task/test/testsupport"
)

var _ = Describe("ConfigMap patching through oc", Ordered, func() {
	var project *kubernetes.ProjectPrerequisite
	var oc = clients.NewOc()

	BeforeAll(func() {
		if os.Getenv("KUBECONFIG") == "" {
			Skip("no cluster configured, set KUBECONFIG to run the e2e suite")
		}

		project = kubernetes.NewTestProject("", false)
		Expect(testsupport.InstallPrerequisites(oc, project)).To(Succeed())
		DeferCleanup(func() {
			Expect(testsupport.DestroyPrerequisites()).To(Succeed())
		})

		_, err := kubernetes.GetClient().CoreV1().ConfigMaps(project.Namespace).Create(
			testsupport.TestContext,
			&corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{Name: "settings"},
				Data:       map[string]string{"flavor": "plain"},
			},
			metav1.CreateOptions{})
		Expect(err).ToNot(HaveOccurred())
	})

	It("applies the generated patch command", func() {
		Expect(os.Setenv("OCSETUP_E2E_MOTD", "hello agents")).To(Succeed())
		DeferCleanup(func() { _ = os.Unsetenv("OCSETUP_E2E_MOTD") })

		command := kubernetes.BuildPatchCommand(
			"settings", `-flavor vanilla -motd "${OCSETUP_E2E_MOTD}"`, project.Namespace, support.Environ())

		cmd, err := oc.CommandLine(testsupport.TestContext, command)
		Expect(err).ToNot(HaveOccurred())
		Expect(cmd.Run()).To(Succeed())

		cm, err := kubernetes.GetClient().CoreV1().ConfigMaps(project.Namespace).Get(
			testsupport.TestContext, "settings", metav1.GetOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(cm.Data).To(HaveKeyWithValue("flavor", "vanilla"))
		Expect(cm.Data).To(HaveKeyWithValue("motd", "hello agents"))
	})

	It("applies the same patch through the API", func() {
		Expect(kubernetes.PatchConfigMapData(testsupport.TestContext, project.Namespace, "settings",
			map[string]string{"channel": "stable"})).To(Succeed())

		cm, err := kubernetes.GetClient().CoreV1().ConfigMaps(project.Namespace).Get(
			testsupport.TestContext, "settings", metav1.GetOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(cm.Data).To(HaveKeyWithValue("channel", "stable"))
	})
})
