package tasklist

// Level classifies a Notice.
type Level int

const (
	// LevelNone marks an operation that did nothing, such as a rejected draft.
	LevelNone Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "none"
	}
}

// Notice is the single user-facing outcome of a controller operation.
type Notice struct {
	Level   Level
	TaskID  string
	Message string
}

// Failed reports whether the operation ended in an error.
func (n Notice) Failed() bool {
	return n.Level == LevelError
}
