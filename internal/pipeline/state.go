package pipeline

// State is a stage of a pipeline run. A run moves strictly forward through
// the stages and ends in Done or Failed.
type State int

const (
	Idle State = iota
	Validating
	NativeBuilding
	Rendering
	Compiling
	RevealingOutput
	Done
	Failed
)

var stateNames = map[State]string{
	Idle:            "Idle",
	Validating:      "Validating",
	NativeBuilding:  "NativeBuilding",
	Rendering:       "Rendering",
	Compiling:       "Compiling",
	RevealingOutput: "RevealingOutput",
	Done:            "Done",
	Failed:          "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "Unknown"
}

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
