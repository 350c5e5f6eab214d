// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/HollaG/youtube-screenshot-server/pkg/pipeline"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
	"github.com/HollaG/youtube-screenshot-server/pkg/workspace"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// RequestTimeout bounds one whole pipeline run. This is the escape
	// valve for the fetch stage's unbounded timeout retries.
	RequestTimeout time.Duration

	// KeepWorkspace preserves job directories for debugging.
	KeepWorkspace bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 10 * time.Minute,
	}
}

// Request describes one accepted pipeline execution.
type Request struct {
	// Identity is the quota-tracking key (the caller's network address).
	Identity string
	// SourceURL is the opaque video locator.
	SourceURL string
	// Timestamps in caller order; fractional seconds allowed.
	Timestamps []float64
	// Crops maps a timestamp's canonical string form to its override.
	Crops map[string]pipeline.CropSpec
}

// Result is the produced deliverable plus descriptive details.
type Result struct {
	Archive       []byte
	VideoID       string
	Title         string
	FrameCount    int
	Size          pipeline.Dimension
	FetchAttempts int
}

// Orchestrator drives the capture pipeline: quota → workspace → fetch →
// probe → extract → crop → compose → pack. It holds no retry logic of its
// own; any stage failure aborts the run, deletes the workspace and refunds
// the soft-consumed quota.
type Orchestrator struct {
	fetchStage   pipeline.Stage[pipeline.FetchInput, pipeline.FetchResult]
	probeStage   pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	cropStage    pipeline.Stage[pipeline.CropInput, pipeline.CropResult]
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	packStage    pipeline.Stage[pipeline.PackInput, pipeline.PackResult]

	source     ports.VideoSource
	quota      ports.QuotaStore
	workspaces *workspace.Manager
	sink       ports.DebugSink
	logger     ports.Logger
	config     Config
}

// New creates a new Orchestrator.
func New(
	fetchStage pipeline.Stage[pipeline.FetchInput, pipeline.FetchResult],
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	cropStage pipeline.Stage[pipeline.CropInput, pipeline.CropResult],
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult],
	packStage pipeline.Stage[pipeline.PackInput, pipeline.PackResult],
	source ports.VideoSource,
	quota ports.QuotaStore,
	workspaces *workspace.Manager,
	sink ports.DebugSink,
	logger ports.Logger,
	config Config,
) *Orchestrator {
	return &Orchestrator{
		fetchStage:   fetchStage,
		probeStage:   probeStage,
		extractStage: extractStage,
		cropStage:    cropStage,
		composeStage: composeStage,
		packStage:    packStage,
		source:       source,
		quota:        quota,
		workspaces:   workspaces,
		sink:         sink,
		logger:       logger,
		config:       config,
	}
}

// Run executes the complete pipeline for one request.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	timestamps, crops, err := normalizeRequest(req)
	if err != nil {
		return Result{}, err
	}

	// Quota is consumed softly: refunded on any failure, finalized only
	// once the deliverable exists.
	state, err := o.quota.Consume(req.Identity)
	if err != nil {
		return Result{}, fmt.Errorf("quota store: %w", err)
	}
	if !state.Allowed {
		return Result{}, &pipeline.QuotaExceededError{ResetTime: state.ResetTime}
	}

	committed := false
	defer func() {
		if !committed {
			if err := o.quota.Refund(req.Identity); err != nil {
				o.logger.Error(l10n.F("Failed to refund quota for %s: %s", req.Identity, err))
			}
		}
	}()

	if o.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.RequestTimeout)
		defer cancel()
	}

	o.logger.Info(l10n.F("Starting pipeline for %s (%d timestamps)", req.SourceURL, len(timestamps)))

	// Source metadata: the title labels the document and the canonical ID
	// names the workspace.
	meta, err := o.source.ResolveMeta(ctx, req.SourceURL)
	if err != nil {
		o.logger.Error(l10n.F("Failed to resolve source metadata: %s", err))
		return Result{}, &pipeline.RetrievalError{Err: err}
	}
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(meta, "", "  "); err == nil {
			o.sink.SaveVideoMetaJSON(data)
		}
	}

	ws, err := o.workspaces.Acquire(meta.ID)
	if err != nil {
		return Result{}, fmt.Errorf("acquire workspace: %w", err)
	}
	defer func() {
		if err := o.workspaces.Release(ws, o.config.KeepWorkspace); err != nil {
			o.logger.Warn(l10n.F("Failed to clean workspace %s: %s", ws.Dir, err))
		}
	}()

	// 1. Retrieve the source video.
	fetched, err := o.fetchStage.Execute(ctx, pipeline.FetchInput{
		SourceURL: req.SourceURL,
		DestPath:  ws.VideoPath(),
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to retrieve source: %s", err))
		return Result{}, err
	}

	// 2. Resolve the true source resolution.
	probed, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{VideoPath: fetched.Path})
	if err != nil {
		o.logger.Error(l10n.F("Failed to resolve metadata: %s", err))
		return Result{}, err
	}
	o.logger.Info(l10n.F("Source resolution %dx%d (%s)", probed.Size.Width, probed.Size.Height, probed.Source))

	// 3. Extract one frame per timestamp, strictly in order.
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{
		VideoPath:  fetched.Path,
		Timestamps: timestamps,
		OutputDir:  ws.FramesDir(),
		Size:       probed.Size,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to extract frames: %s", err))
		return Result{}, err
	}

	// 4. Crop each frame to its computed rectangle.
	cropped, err := o.cropStage.Execute(ctx, pipeline.CropInput{
		Frames:    extracted.Frames,
		Specs:     crops,
		OutputDir: ws.FramesDir(),
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to crop frames: %s", err))
		return Result{}, err
	}

	// 5. Compose and render the document.
	composed, err := o.composeStage.Execute(ctx, pipeline.ComposeInput{
		Frames:       cropped.Frames,
		Title:        meta.Title,
		WorkspaceDir: ws.Dir,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to compose document: %s", err))
		return Result{}, err
	}

	// 6. Pack the deliverable.
	packed, err := o.packStage.Execute(ctx, pipeline.PackInput{
		Frames: cropped.Frames,
		PDF:    composed.PDF,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to pack deliverable: %s", err))
		return Result{}, err
	}

	if err := o.quota.Commit(req.Identity); err != nil {
		o.logger.Warn(l10n.F("Failed to commit quota for %s: %s", req.Identity, err))
	}
	committed = true

	o.logger.Info(l10n.F("Pipeline completed: %d frames, %d bytes", len(cropped.Frames), len(packed.Archive)))

	return Result{
		Archive:       packed.Archive,
		VideoID:       meta.ID,
		Title:         meta.Title,
		FrameCount:    len(cropped.Frames),
		Size:          probed.Size,
		FetchAttempts: fetched.Attempts,
	}, nil
}

// normalizeRequest validates the request before any I/O and normalizes
// timestamps and crop keys to canonical form.
func normalizeRequest(req Request) ([]float64, map[string]pipeline.CropSpec, error) {
	if req.SourceURL == "" {
		return nil, nil, fmt.Errorf("%w: source url required", pipeline.ErrInvalidRequest)
	}
	if len(req.Timestamps) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one timestamp required", pipeline.ErrInvalidRequest)
	}

	seen := make(map[string]bool, len(req.Timestamps))
	timestamps := make([]float64, 0, len(req.Timestamps))
	for _, t := range req.Timestamps {
		if t < 0 {
			return nil, nil, fmt.Errorf("%w: negative timestamp %v", pipeline.ErrInvalidRequest, t)
		}
		norm := pipeline.NormalizeTimestamp(t)
		key := pipeline.TimestampKey(norm)
		if seen[key] {
			continue
		}
		seen[key] = true
		timestamps = append(timestamps, norm)
	}

	crops := make(map[string]pipeline.CropSpec, len(req.Crops))
	for key, spec := range req.Crops {
		norm, ok := normalizeCropKey(key)
		if !ok || !seen[norm] {
			return nil, nil, fmt.Errorf("%w: crop for unknown timestamp %q", pipeline.ErrInvalidRequest, key)
		}
		if err := validateCropSpec(spec); err != nil {
			return nil, nil, fmt.Errorf("%w: crop for %q: %v", pipeline.ErrInvalidRequest, key, err)
		}
		crops[norm] = spec
	}

	return timestamps, crops, nil
}

func normalizeCropKey(key string) (string, bool) {
	t, err := strconv.ParseFloat(key, 64)
	if err != nil || t < 0 {
		return "", false
	}
	return pipeline.TimestampKey(pipeline.NormalizeTimestamp(t)), true
}

func validateCropSpec(spec pipeline.CropSpec) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"left", spec.Left},
		{"leftOffset", spec.LeftOffset},
		{"bottom", spec.Bottom},
		{"bottomOffset", spec.BottomOffset},
	} {
		if v.value < 0 || v.value > 100 {
			return fmt.Errorf("%s=%v outside [0,100]", v.name, v.value)
		}
	}
	if spec.Left+(100-spec.LeftOffset) > 100 {
		return fmt.Errorf("horizontal insets overlap")
	}
	if spec.Bottom+(100-spec.BottomOffset) > 100 {
		return fmt.Errorf("vertical insets overlap")
	}
	return nil
}
