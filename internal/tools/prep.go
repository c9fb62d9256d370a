package tools

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/huntboard/huntboard/internal/schema"
)

const interviewPrepInstruction = "Using the application, contacts, and resume above, produce a JSON object with \"questions\" (array of likely interview questions, at most ten), \"stories\" (array of objects each with \"prompt\" and \"bullet_id\" referencing a resume bullet), and \"asks\" (array of questions the candidate should ask). Return only JSON."

// InterviewPrepTool gathers everything relevant to an upcoming interview:
// the application itself, the contacts tied to it, and the resume. The
// three reads are independent so they run concurrently.
type InterviewPrepTool struct {
	jobs     schema.JobSource
	contacts schema.ContactSource
	resume   schema.ResumeSource
}

func NewInterviewPrepTool(jobs schema.JobSource, contacts schema.ContactSource, resume schema.ResumeSource) *InterviewPrepTool {
	return &InterviewPrepTool{jobs: jobs, contacts: contacts, resume: resume}
}

func (t *InterviewPrepTool) Name() string { return "interview_prep" }
func (t *InterviewPrepTool) Description() string {
	return "Gather the application, its contacts, and the resume for interview preparation."
}

func (t *InterviewPrepTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	jobID := argString(args, "job_id", "")
	if jobID == "" {
		return nil, fmt.Errorf("job_id is required")
	}

	var (
		job      map[string]any
		contacts []map[string]any
		resume   map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = t.jobs.JobSnapshot(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = t.contacts.ContactsForJob(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = t.resume.ResumeSnapshot(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if contacts == nil {
		contacts = []map[string]any{}
	}

	return map[string]any{
		"job_id":      jobID,
		"job":         job,
		"contacts":    contacts,
		"resume":      resume,
		"instruction": interviewPrepInstruction,
	}, nil
}
