package tools

import (
	"context"

	"github.com/huntboard/huntboard/internal/schema"
)

// dailyTasksInstruction is part of the tool's contract with the model and
// must be reproduced verbatim: the model is steered by its exact wording.
const dailyTasksInstruction = "Using the tasks above, produce a JSON object with a \"tasks\" array. Each element must have \"id\" (copy the task id exactly), \"priority\" (one of \"high\", \"medium\", \"low\"), and \"suggestion\" (one actionable sentence). Order the array by priority, high first. Return only JSON."

// DailyTasksTool surfaces today's follow-up and application tasks.
type DailyTasksTool struct {
	tasks schema.TaskSource
}

func NewDailyTasksTool(tasks schema.TaskSource) *DailyTasksTool {
	return &DailyTasksTool{tasks: tasks}
}

func (t *DailyTasksTool) Name() string { return "daily_tasks" }
func (t *DailyTasksTool) Description() string {
	return "Get today's follow-up and application tasks, including overdue items."
}

func (t *DailyTasksTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	includeCompleted := argBool(args, "include_completed", false)

	tasks, err := t.tasks.DailyTaskContext(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"tasks":             tasks,
		"include_completed": includeCompleted,
		"instruction":       dailyTasksInstruction,
	}, nil
}
