package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutputFormatter prints command results as JSON, bare IDs (quiet) or text
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Humanizer is implemented by results that know their human-readable form
type Humanizer interface {
	Human() string
}

// Identified results print only their item ID in quiet mode
type Identified interface {
	GetID() int
}

// Failure is a failed command as the user sees it. Code is one of the
// identifiers returned by Classify; ExitCode is the process exit status.
type Failure struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	ExitCode   int    `json:"exit_code"`
}

// envelope is the JSON shape of every command result
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   *Failure `json:"error,omitempty"`
}

// Success prints a command result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if item, ok := data.(Identified); ok {
			fmt.Println(item.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(envelope{Success: true, Data: data})
	}

	if h, ok := data.(Humanizer); ok {
		fmt.Println(h.Human())
		return nil
	}
	fmt.Printf("%+v\n", data)
	return nil
}

// Report prints a failure. JSON goes to stdout so scripts read one stream;
// quiet and text output go to stderr.
func (f *OutputFormatter) Report(fail Failure) error {
	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(envelope{Error: &fail})
	}

	if f.Quiet {
		_, err := fmt.Fprintf(os.Stderr, "%s: %s\n", fail.Code, fail.Message)
		return err
	}

	fmt.Fprintf(os.Stderr, "✗ %s\n", fail.Message)
	if fail.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", fail.Suggestion)
	}
	return nil
}
