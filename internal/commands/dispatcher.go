package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"taskdeck/internal/logger"
	"taskdeck/internal/projects"
	"taskdeck/pkg/decktypes"
)

// Dispatcher routes a parsed command to its handler. It resolves the
// target project (mention, then current project), enforces the edit
// check for mutating commands, hands the handler a request to stage
// mutations on, and commits them with a single store save.
type Dispatcher struct {
	registry *Registry
	projects *projects.Resolver
	store    decktypes.ProjectStore
	now      func() time.Time
	log      *log.Logger
}

// NewDispatcher wires a dispatcher over the given registry, project
// resolver, and store.
func NewDispatcher(registry *Registry, resolver *projects.Resolver, store decktypes.ProjectStore) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		projects: resolver,
		store:    store,
		now:      time.Now,
		log:      logger.NewStyledLogger("dispatch"),
	}
}

// Dispatch executes one parsed command for the session and returns its
// outcome. Resolution and permission failures become error outcomes; a
// project lookup that needs a selection becomes a prompt outcome
// carrying the candidate list.
func (d *Dispatcher) Dispatch(ctx context.Context, session *decktypes.Session, cmd decktypes.ParsedCommand) decktypes.Outcome {
	handler, ok := d.registry.Get(cmd.Type)
	if !ok {
		// Parsing only accepts enumerated types, so this is a wiring
		// bug, not user error.
		return decktypes.ErrorOutcomef("command %q has no registered handler", cmd.Type)
	}

	logger.CommandExecution(string(cmd.Type), cmd.Args, cmd.Flags)

	req := &decktypes.Request{
		Ctx:     ctx,
		Session: session,
		Store:   d.store,
		Cache:   d.projects.Cache(),
	}

	if handler.NeedsProject() {
		res, err := d.resolveProject(ctx, session, cmd, handler.Mutates())
		if err != nil {
			return decktypes.ErrorOutcome(err)
		}
		if res.NeedsSelection {
			return decktypes.Outcome{
				Status:  decktypes.StatusPrompt,
				Message: "which project? mention one with @Name or /switch project",
				Payload: res.Candidates,
			}
		}
		req.Project = res.Project
	}

	outcome := handler.Execute(cmd, req)

	if req.CommitRequested() && !outcome.IsError() && req.Project != nil {
		req.Project.UpdatedAt = d.now()
		if err := d.store.Save(ctx, req.Project); err != nil {
			d.log.Error("commit failed", "command", string(cmd.Type), "project", req.Project.ID, "error", err)
			return decktypes.ErrorOutcome(fmt.Errorf("saving %q: %w", req.Project.Name, err))
		}
	}

	return outcome
}

func (d *Dispatcher) resolveProject(ctx context.Context, session *decktypes.Session, cmd decktypes.ParsedCommand, mutates bool) (projects.Resolution, error) {
	if mutates {
		return d.projects.ResolveWithEditCheck(ctx, session.UserID, cmd.ProjectMention, session.CurrentProjectID)
	}
	return d.projects.Resolve(ctx, session.UserID, cmd.ProjectMention, session.CurrentProjectID)
}
