package backlink

import (
	"context"

	"github-asana-bridge/pkg/asana"
	"github-asana-bridge/pkg/github"
)

type UseCase interface {
	// ProcessEvent finds task references the event added and syncs each of
	// them to the tracker. Remote failures are reported, never returned.
	ProcessEvent(ctx context.Context, input ProcessEventInput) (ProcessEventOutput, error)
}

// TaskTracker is the subset of the Asana client the bridge calls.
type TaskTracker interface {
	AddComment(ctx context.Context, taskGID, htmlText string) (*asana.Story, error)
	AddProject(ctx context.Context, taskGID string, req asana.AddProjectRequest) error
}

// SourcePlatform is the subset of the GitHub client the bridge calls.
type SourcePlatform interface {
	AddReaction(ctx context.Context, target, content string) (*github.Reaction, error)
}
