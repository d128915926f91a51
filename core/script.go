package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/motionlens/schema"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of interactions.
//
//	events:
//	  - kind: activity
//	    activity: run
//	  - kind: brush
//	    brush: {x0: 100, x1: 400}
type Script struct {
	Events []schema.Event `yaml:"events"`
}

// ReadScript decodes a replay script. Unknown keys and event kinds are errors.
func ReadScript(r io.Reader) (Script, error) {
	var script Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return script, errors.New("replay script is empty")
		}
		return script, fmt.Errorf("failed to parse replay script: %w", err)
	}
	for i, ev := range script.Events {
		if _, ok := schema.ValidEventKinds[ev.Kind]; !ok {
			return script, fmt.Errorf("event %d: unsupported kind %q", i+1, ev.Kind)
		}
	}
	return script, nil
}

// LoadScript reads a replay script from path.
func LoadScript(path string) (Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to open replay script: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadScript(file)
}

// Replay dispatches every event of the script in order. Rejected events are
// recorded and do not stop the replay.
func (s *Session) Replay(script Script) []schema.EventResult {
	results := make([]schema.EventResult, 0, len(script.Events))
	for _, ev := range script.Events {
		results = append(results, s.Dispatch(ev))
	}
	return results
}
