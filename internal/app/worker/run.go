package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/garment-studio/internal/app/api"
	platformobservability "github.com/Apurer/garment-studio/internal/platform/observability"
	designactivities "github.com/Apurer/garment-studio/internal/platform/temporal/activities/designs"
	designworkflows "github.com/Apurer/garment-studio/internal/platform/temporal/workflows/designs"
)

const serviceName = "garment-studio-worker"

// Registrar is the subset of worker.Worker used to register generation code.
type Registrar interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register binds the generation workflow and activity under their stable names.
func Register(r Registrar, acts *designactivities.Activities) {
	r.RegisterWorkflowWithOptions(designworkflows.GenerationWorkflow, workflow.RegisterOptions{Name: designworkflows.GenerationWorkflowName})
	r.RegisterActivityWithOptions(acts.GenerateArtwork, activity.RegisterOptions{Name: designactivities.GenerateArtworkActivityName})
}

// Run polls the design generation task queue until interrupted.
func Run(ctx context.Context) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, api.ObservabilityConfig(cfg, serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	generator, err := api.NewHTTPGenerator(cfg)
	if err != nil {
		return fmt.Errorf("worker requires IMAGEGEN_BASE_URL: %w", err)
	}
	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, designworkflows.GenerationTaskQueue, worker.Options{})
	Register(w, designactivities.NewActivities(generator))

	logger.Info("worker listening", slog.String("taskQueue", designworkflows.GenerationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	interrupt := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interrupt)
	}()
	if err := w.Run(interrupt); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
