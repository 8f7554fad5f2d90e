package pipeline

// Keywords names the reserved document keys the Document Adapter and Node
// Builder recognize. Defaults match spec.md §4/§6; callers (the CLI's
// keyword-override flags) may replace any subset before building a tree.
type Keywords struct {
	Series         string
	Parallel       string
	Run            string
	Task           string
	Name           string
	ContinueOnFail string
	Env            string
	Display        string
	CaptureStdout  string
	CaptureStderr  string
}

// DefaultKeywords returns the system's built-in keyword set.
func DefaultKeywords() Keywords {
	return Keywords{
		Series:         "series",
		Parallel:       "parallel",
		Run:            "run",
		Task:           "task",
		Name:           "name",
		ContinueOnFail: "continue_on_fail",
		Env:            "env",
		Display:        "display",
		CaptureStdout:  "capture_stdout",
		CaptureStderr:  "capture_stderr",
	}
}
