package workflows

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
	designworkflows "github.com/Apurer/garment-studio/internal/platform/temporal/workflows/designs"
)

type fakeRun struct {
	client.WorkflowRun
	result *ports.GenerationResult
	err    error
}

func (r fakeRun) Get(_ context.Context, valuePtr interface{}) error {
	if r.err != nil {
		return r.err
	}
	*(valuePtr.(*ports.GenerationResult)) = *r.result
	return nil
}

type fakeStarter struct {
	options  client.StartWorkflowOptions
	workflow interface{}
	input    designworkflows.GenerationWorkflowInput
	run      fakeRun
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.options = options
	f.workflow = workflow
	f.input = args[0].(designworkflows.GenerationWorkflowInput)
	return f.run, nil
}

func TestTemporalGenerator_RunsWorkflow(t *testing.T) {
	starter := &fakeStarter{run: fakeRun{result: &ports.GenerationResult{ImageURL: "https://img.example.com/a.png"}}}
	gen := &TemporalGenerator{client: starter, taskQueue: designworkflows.GenerationTaskQueue}
	req := domain.GenerationRequest{Mode: domain.GenerationModeDesign, PromptText: "cat"}

	result, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "https://img.example.com/a.png", result.ImageURL)
	require.Equal(t, designworkflows.GenerationTaskQueue, starter.options.TaskQueue)
	require.Contains(t, starter.options.ID, "design-generation-design-")
	require.Equal(t, designworkflows.GenerationWorkflowName, starter.workflow)
	require.Equal(t, req, starter.input.Request)
}

func TestTemporalGenerator_RecoversFailureReason(t *testing.T) {
	appErr := temporal.NewNonRetryableApplicationError("status 402", string(ports.FailurePaymentRequired), nil, http.StatusPaymentRequired)
	starter := &fakeStarter{run: fakeRun{err: appErr}}
	gen := &TemporalGenerator{client: starter, taskQueue: designworkflows.GenerationTaskQueue}

	_, err := gen.Generate(context.Background(), domain.GenerationRequest{Mode: domain.GenerationModeDesign, PromptText: "cat"})
	var failure *ports.GenerationFailure
	require.True(t, errors.As(err, &failure))
	require.Equal(t, ports.FailurePaymentRequired, failure.Reason)
	require.Equal(t, http.StatusPaymentRequired, failure.StatusCode)
}
