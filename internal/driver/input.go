package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// InputKind selects how raw input bytes are interpreted.
type InputKind uint8

const (
	// InputAuto sniffs JSON shape and falls back to raw stderr text.
	InputAuto InputKind = iota
	// InputResult is a CompilationResult JSON object.
	InputResult
	// InputPiston is a raw Piston execute response.
	InputPiston
	// InputRaw is compiler stderr text; the submission is treated as failed
	// when it contains anything.
	InputRaw
)

func (k InputKind) String() string {
	switch k {
	case InputAuto:
		return "auto"
	case InputResult:
		return "result"
	case InputPiston:
		return "piston"
	case InputRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseInputKind converts a flag value to an InputKind.
func ParseInputKind(s string) (InputKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return InputAuto, nil
	case "result":
		return InputResult, nil
	case "piston":
		return InputPiston, nil
	case "raw", "stderr":
		return InputRaw, nil
	default:
		return InputAuto, fmt.Errorf("invalid input kind: %q (expected: auto|result|piston|raw)", s)
	}
}

// Decode turns input bytes into a CompilationResult.
func Decode(data []byte, kind InputKind) (CompilationResult, error) {
	switch kind {
	case InputRaw:
		return rawResult(string(data)), nil
	case InputResult:
		var res CompilationResult
		if err := json.Unmarshal(data, &res); err != nil {
			return CompilationResult{}, fmt.Errorf("failed to decode compilation result: %w", err)
		}
		return res, nil
	case InputPiston:
		var resp PistonResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return CompilationResult{}, fmt.Errorf("failed to decode piston response: %w", err)
		}
		return FromPiston(resp), nil
	case InputAuto:
		return decodeAuto(data), nil
	default:
		return CompilationResult{}, fmt.Errorf("unknown input kind: %v", kind)
	}
}

func decodeAuto(data []byte) CompilationResult {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return rawResult(string(data))
	}
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &shape); err != nil {
		return rawResult(string(data))
	}
	if _, ok := shape["run"]; ok {
		if res, err := Decode(trimmed, InputPiston); err == nil {
			return res
		}
	}
	if _, ok := shape["stderr"]; ok {
		if res, err := Decode(trimmed, InputResult); err == nil {
			return res
		}
	}
	return rawResult(string(data))
}

func rawResult(stderr string) CompilationResult {
	failed := strings.TrimSpace(stderr) != ""
	res := CompilationResult{Success: !failed, Stderr: stderr}
	if failed {
		res.ExitCode = 1
	}
	return res
}
