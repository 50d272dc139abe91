package testsupport

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"oc-setup-task/pkg/api"
)

var (
	TestContext       context.Context
	TestTimeoutMedium = 5 * time.Minute
)

var installedStack []api.Prerequisite = make([]api.Prerequisite, 0)

func init() {
	TestContext = context.TODO()

	logrus.SetFormatter(&logrus.TextFormatter{
		SortingFunc: func(s []string) {
			l := len(s)
			if l < 1 {
				return
			}

			i := slices.Index(s, "m")
			if i < 0 {
				return
			}

			s[l-1], s[i] = s[i], s[l-1]
		},
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "t",
			logrus.FieldKeyLevel: "l",
			logrus.FieldKeyMsg:   "m",
		},
		DisableQuote: true,
	})
}

func InstallPrerequisites(prerequisite ...api.Prerequisite) error {
	for _, p := range prerequisite {
		err := p.Setup(TestContext)
		if err != nil {
			return err
		}
		installedStack = append(installedStack, p)
	}
	return nil
}

func DestroyPrerequisites() error {
	var errors []error
	for i := len(installedStack) - 1; i >= 0; i-- {
		err := installedStack[i].Destroy(TestContext)
		if err != nil {
			logrus.Warn(err)
			errors = append(errors, err)
		}
	}
	installedStack = installedStack[:0]
	if len(errors) != 0 {
		return fmt.Errorf("can't destroy all prerequisites %s", errors)
	}
	return nil
}
