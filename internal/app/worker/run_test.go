package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"

	designactivities "github.com/Apurer/garment-studio/internal/platform/temporal/activities/designs"
	designworkflows "github.com/Apurer/garment-studio/internal/platform/temporal/workflows/designs"
)

type recordingRegistrar struct {
	workflows  []string
	activities []string
}

func (r *recordingRegistrar) RegisterWorkflowWithOptions(_ interface{}, options workflow.RegisterOptions) {
	r.workflows = append(r.workflows, options.Name)
}

func (r *recordingRegistrar) RegisterActivityWithOptions(_ interface{}, options activity.RegisterOptions) {
	r.activities = append(r.activities, options.Name)
}

func TestRegister_UsesStableNames(t *testing.T) {
	r := &recordingRegistrar{}
	Register(r, designactivities.NewActivities(nil))

	assert.Equal(t, []string{designworkflows.GenerationWorkflowName}, r.workflows)
	assert.Equal(t, []string{designactivities.GenerateArtworkActivityName}, r.activities)
}
