package kubernetes

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProjectPrerequisite creates a throwaway project for an end-to-end run
// and removes it afterwards, unless the caller wants to keep it.
type ProjectPrerequisite struct {
	Namespace string
	keep      bool
}

func NewTestProject(namespace string, keep bool) *ProjectPrerequisite {
	if namespace == "" {
		namespace = "oc-setup-" + uuid.New().String()
	}
	return &ProjectPrerequisite{
		Namespace: namespace,
		keep:      keep,
	}
}

func (p *ProjectPrerequisite) Setup(ctx context.Context) error {
	logrus.Info("Creating new project ", p.Namespace)
	return GetClient().CreateProject(ctx, p.Namespace)
}

func (p *ProjectPrerequisite) Destroy(ctx context.Context) error {
	if p.keep {
		return nil
	}
	logrus.Info("Destroying project ", p.Namespace)
	return GetClient().DeleteProject(ctx, p.Namespace)
}
