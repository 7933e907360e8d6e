package viewer

import "github.com/PabloPavan/snipdeck/internal/snippets"

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// State is one of Loading, Ready or Failed.
type State interface {
	Phase() Phase
	isState()
}

type Loading struct{}

type Ready struct {
	Snippet  *snippets.Snippet
	Selected snippets.Version
}

// Failed is terminal for a Controller.
type Failed struct {
	Err error
}

func (Loading) Phase() Phase { return PhaseLoading }
func (Ready) Phase() Phase   { return PhaseReady }
func (Failed) Phase() Phase  { return PhaseError }

func (Loading) isState() {}
func (Ready) isState()   {}
func (Failed) isState()  {}
