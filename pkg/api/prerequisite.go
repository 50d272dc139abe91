package api

import (
	"context"
)

// Prerequisite is anything the task has to set up on the agent before the
// pipeline step can run, and tear down afterwards.
type Prerequisite interface {
	Setup(ctx context.Context) error
	Destroy(ctx context.Context) error
}
