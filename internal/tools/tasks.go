package tools

import (
	"context"
	"fmt"

	"github.com/nebulus/blackbox/internal/scheduler"
)

// ScheduleTaskTool creates or replaces a recurring report job.
type ScheduleTaskTool struct {
	engine *scheduler.Engine
}

// ScheduleTaskArgs represents the arguments for the schedule_task tool.
type ScheduleTaskArgs struct {
	Title      string   `json:"title"`                // Report title, also the job key
	Prompt     string   `json:"prompt"`               // Instruction sent to the LLM on each fire
	Schedule   string   `json:"schedule"`             // 5-field cron expression
	Recipients []string `json:"recipients,omitempty"` // Email addresses for delivery
}

// NewScheduleTaskTool creates a ScheduleTaskTool over the engine.
func NewScheduleTaskTool(engine *scheduler.Engine) *ScheduleTaskTool {
	return &ScheduleTaskTool{engine: engine}
}

// Name returns the tool name.
func (t *ScheduleTaskTool) Name() string {
	return "schedule_task"
}

// Description returns a description of what the tool does.
func (t *ScheduleTaskTool) Description() string {
	return "Schedule a recurring report: the prompt is sent to the LLM on the given cron schedule and the result is emailed. Scheduling an existing title replaces that task."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ScheduleTaskTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Title of the task, used as the report subject.",
			},
			"prompt": map[string]interface{}{
				"type":        "string",
				"description": "The prompt to send to the LLM on each run.",
			},
			"schedule": map[string]interface{}{
				"type":        "string",
				"description": "Standard 5-part cron expression, e.g. '0 8 * * *'.",
			},
			"recipients": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Email addresses to deliver the report to.",
			},
		},
		"required": []string{"title", "prompt", "schedule"},
	}
}

// Execute schedules the task and returns the confirmation text.
func (t *ScheduleTaskTool) Execute(_ context.Context, args string) (string, error) {
	var taskArgs ScheduleTaskArgs
	if err := ParseArgs(args, &taskArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}

	_, message, err := t.engine.Schedule(taskArgs.Title, taskArgs.Prompt, taskArgs.Schedule, taskArgs.Recipients)
	if err != nil {
		return "", err
	}
	return message, nil
}

// ListTasksTool lists the scheduled report jobs as plain text.
type ListTasksTool struct {
	engine *scheduler.Engine
}

// NewListTasksTool creates a ListTasksTool over the engine.
func NewListTasksTool(engine *scheduler.Engine) *ListTasksTool {
	return &ListTasksTool{engine: engine}
}

// Name returns the tool name.
func (t *ListTasksTool) Name() string {
	return "list_tasks"
}

// Description returns a description of what the tool does.
func (t *ListTasksTool) Description() string {
	return "List all scheduled report tasks with their IDs, schedules and next run times."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ListTasksTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

// Execute returns the task list, or the empty-store marker.
func (t *ListTasksTool) Execute(_ context.Context, _ string) (string, error) {
	return t.engine.Describe()
}

// DeleteTaskTool removes a scheduled report job by ID.
type DeleteTaskTool struct {
	engine *scheduler.Engine
}

// DeleteTaskArgs represents the arguments for the delete_task tool.
type DeleteTaskArgs struct {
	ID string `json:"id"` // Job ID as shown by list_tasks
}

// NewDeleteTaskTool creates a DeleteTaskTool over the engine.
func NewDeleteTaskTool(engine *scheduler.Engine) *DeleteTaskTool {
	return &DeleteTaskTool{engine: engine}
}

// Name returns the tool name.
func (t *DeleteTaskTool) Name() string {
	return "delete_task"
}

// Description returns a description of what the tool does.
func (t *DeleteTaskTool) Description() string {
	return "Delete a scheduled report task by its job ID."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *DeleteTaskTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "string",
				"description": "The job ID to delete.",
			},
		},
		"required": []string{"id"},
	}
}

// Execute deletes the task and returns the confirmation text.
func (t *DeleteTaskTool) Execute(_ context.Context, args string) (string, error) {
	var taskArgs DeleteTaskArgs
	if err := ParseArgs(args, &taskArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if taskArgs.ID == "" {
		return "", fmt.Errorf("id is required")
	}

	message, err := t.engine.Delete(taskArgs.ID)
	if err != nil {
		return "", err
	}
	return message, nil
}

// RunTaskTool triggers one immediate execution of a scheduled job.
type RunTaskTool struct {
	engine *scheduler.Engine
}

// NewRunTaskTool creates a RunTaskTool over the engine.
func NewRunTaskTool(engine *scheduler.Engine) *RunTaskTool {
	return &RunTaskTool{engine: engine}
}

// Name returns the tool name.
func (t *RunTaskTool) Name() string {
	return "run_task"
}

// Description returns a description of what the tool does.
func (t *RunTaskTool) Description() string {
	return "Run a scheduled report task immediately, outside its schedule."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *RunTaskTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "string",
				"description": "The job ID to run.",
			},
		},
		"required": []string{"id"},
	}
}

// Execute triggers the run and returns the confirmation text.
func (t *RunTaskTool) Execute(ctx context.Context, args string) (string, error) {
	var taskArgs DeleteTaskArgs
	if err := ParseArgs(args, &taskArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if taskArgs.ID == "" {
		return "", fmt.Errorf("id is required")
	}

	return t.engine.RunNow(ctx, taskArgs.ID)
}
