package driver

// Stage identifies the step a file is in.
type Stage uint8

const (
	StageNone Stage = iota
	StageLoad
	StageLex
	StageParse
	StageCache
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageCache:
		return "cache"
	default:
		return ""
	}
}

// Status is the state of a file within its stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Event reports progress of one file, or of the whole run when File is empty.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink receives events. ParseDir calls it from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}
