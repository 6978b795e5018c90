package driver

// CompilationResult is what the execution service returns for a submission.
type CompilationResult struct {
	Success  bool   `json:"success"`
	Output   string `json:"output"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// PistonStage is one stage (compile or run) of a Piston execute response.
type PistonStage struct {
	Stdout string  `json:"stdout"`
	Stderr string  `json:"stderr"`
	Code   int     `json:"code"`
	Signal *string `json:"signal"`
	Output string  `json:"output"`
}

// PistonResponse is the raw body of a Piston v2 /execute call.
type PistonResponse struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Run      PistonStage  `json:"run"`
	Compile  *PistonStage `json:"compile,omitempty"`
}

// FromPiston reduces a raw execute response to a CompilationResult. A failed
// compile stage wins over the run stage; stderr falls back to the combined
// output stream when the compiler wrote nothing to stderr.
func FromPiston(resp PistonResponse) CompilationResult {
	if c := resp.Compile; c != nil && c.Code != 0 {
		return CompilationResult{
			Success:  false,
			Output:   c.Stdout,
			Stderr:   firstNonEmpty(c.Stderr, c.Output),
			ExitCode: c.Code,
		}
	}
	return CompilationResult{
		Success:  resp.Run.Code == 0,
		Output:   firstNonEmpty(resp.Run.Stdout, resp.Run.Output),
		Stderr:   resp.Run.Stderr,
		ExitCode: resp.Run.Code,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
