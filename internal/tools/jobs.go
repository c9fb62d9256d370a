package tools

import (
	"context"
	"fmt"

	"github.com/huntboard/huntboard/internal/schema"
)

// Instruction strings below are part of each tool's contract with the
// model and must be reproduced verbatim.
const (
	jobContextInstruction = "Using the application above, produce a JSON object with \"job_id\" (copied exactly), \"next_step\" (one sentence), and \"talking_points\" (array of strings, at most five). Return only JSON."

	pipelineSummaryInstruction = "Using the pipeline above, produce a JSON object with a \"stages\" array. Each element must have \"stage\" (copy the stage name exactly), \"count\" (integer), and \"advice\" (one sentence). Return only JSON."

	sourceURLsInstruction = "Compare the candidate posting against the URLs above. Produce a JSON object with \"duplicate\" (boolean) and \"matched_url\" (the matching URL, or an empty string). Return only JSON."
)

// JobContextTool returns the full tracked state of one application.
type JobContextTool struct {
	jobs schema.JobSource
}

func NewJobContextTool(jobs schema.JobSource) *JobContextTool {
	return &JobContextTool{jobs: jobs}
}

func (t *JobContextTool) Name() string { return "job_context" }
func (t *JobContextTool) Description() string {
	return "Get the full tracked state of one job application."
}

func (t *JobContextTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	jobID := argString(args, "job_id", "")
	if jobID == "" {
		return nil, fmt.Errorf("job_id is required")
	}

	job, err := t.jobs.JobSnapshot(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"job_id":      jobID,
		"job":         job,
		"instruction": jobContextInstruction,
	}, nil
}

// PipelineSummaryTool summarises the whole application pipeline.
type PipelineSummaryTool struct {
	jobs schema.JobSource
}

func NewPipelineSummaryTool(jobs schema.JobSource) *PipelineSummaryTool {
	return &PipelineSummaryTool{jobs: jobs}
}

func (t *PipelineSummaryTool) Name() string { return "pipeline_summary" }
func (t *PipelineSummaryTool) Description() string {
	return "Get a summary of the whole application pipeline grouped by stage."
}

func (t *PipelineSummaryTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	summary, err := t.jobs.PipelineSummary(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"pipeline":    summary,
		"instruction": pipelineSummaryInstruction,
	}, nil
}

// SourceURLsTool returns the posting URLs of every tracked job so the
// model can flag duplicates before a new job is added.
type SourceURLsTool struct {
	jobs schema.JobSource
}

func NewSourceURLsTool(jobs schema.JobSource) *SourceURLsTool {
	return &SourceURLsTool{jobs: jobs}
}

func (t *SourceURLsTool) Name() string { return "source_urls" }
func (t *SourceURLsTool) Description() string {
	return "Get the posting URLs of every tracked job, for duplicate detection."
}

func (t *SourceURLsTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	urls, err := t.jobs.ExistingSourceURLs(ctx)
	if err != nil {
		return nil, err
	}
	if urls == nil {
		urls = []string{}
	}

	return map[string]any{
		"urls":        urls,
		"instruction": sourceURLsInstruction,
	}, nil
}
