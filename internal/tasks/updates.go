package tasks

import (
	"fmt"

	"tubelist/internal/links"
	"tubelist/internal/models"
)

// Phase identifies the stage of the build pipeline an update belongs to.
type Phase int

const (
	PhaseCreate Phase = iota
	PhaseAdd
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCreate:
		return "create"
	case PhaseAdd:
		return "add"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressUpdate is emitted by the build engine as the pipeline advances.
// Step and Total are only meaningful during PhaseAdd.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
	Data    any
}

func creatingPlaylistUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseCreate,
		Message: fmt.Sprintf("Creating playlist %q", title),
	}
}

func playlistCreatedUpdate(playlist *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseCreate,
		Message: fmt.Sprintf("Created playlist %q (%s)", playlist.Title, playlist.ID),
		Data:    playlist,
	}
}

func addVideoUpdate(step, total int, id links.VideoID) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseAdd,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding video %s (%d/%d)", id, step, total),
	}
}

func buildDoneUpdate(result *BuildResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseDone,
		Message: fmt.Sprintf("Added %d out of %d videos", result.Added, result.Attempted),
		Data:    result,
	}
}
