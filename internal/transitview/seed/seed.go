package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/citytransit-view/internal/common/logger"
	"github.com/citytransit-view/pkg/transit/models"
	"gopkg.in/yaml.v3"
)

// Document is the seed data loaded once at startup
type Document struct {
	Vehicles []models.Vehicle `yaml:"vehicles"`
	Stops    []models.Stop    `yaml:"stops"`
}

// ValidationError names the seed record that failed validation
type ValidationError struct {
	Kind   string // "vehicle", "stop" or "arrival"
	Index  int
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid seed %s[%d] %q: %s", e.Kind, e.Index, e.ID, e.Reason)
}

// Validate checks every record and returns the first problem found as a
// *ValidationError
func (d Document) Validate() error {
	seen := make(map[string]int, len(d.Vehicles))
	for i, v := range d.Vehicles {
		fail := func(reason string, args ...interface{}) error {
			return &ValidationError{Kind: "vehicle", Index: i, ID: v.ID, Reason: fmt.Sprintf(reason, args...)}
		}
		switch {
		case strings.TrimSpace(v.ID) == "":
			return fail("id is required")
		case strings.TrimSpace(v.Route) == "":
			return fail("route is required")
		case !v.Status.Valid():
			return fail("unknown status %q", v.Status)
		case !v.Occupancy.Valid():
			return fail("unknown occupancy %q", v.Occupancy)
		case v.ArrivalMinutes < 0:
			return fail("arrival minutes cannot be negative")
		case v.DelayMinutes < 0:
			return fail("delay minutes cannot be negative")
		case !v.Position.Valid():
			return fail("position %v is out of range", v.Position)
		}
		if first, dup := seen[v.ID]; dup {
			return fail("duplicate id, first seen at index %d", first)
		}
		seen[v.ID] = i
	}

	stopIDs := make(map[string]int, len(d.Stops))
	for i, s := range d.Stops {
		fail := func(reason string, args ...interface{}) error {
			return &ValidationError{Kind: "stop", Index: i, ID: s.ID, Reason: fmt.Sprintf(reason, args...)}
		}
		switch {
		case strings.TrimSpace(s.ID) == "":
			return fail("id is required")
		case strings.TrimSpace(s.Name) == "":
			return fail("name is required")
		case !s.Position.Valid():
			return fail("position %v is out of range", s.Position)
		}
		if first, dup := stopIDs[s.ID]; dup {
			return fail("duplicate id, first seen at index %d", first)
		}
		stopIDs[s.ID] = i

		for j, a := range s.Arrivals {
			id := fmt.Sprintf("%s/%s", s.ID, a.Route)
			switch {
			case a.Route == "":
				return &ValidationError{Kind: "arrival", Index: j, ID: id, Reason: "route is required"}
			case !s.Serves(a.Route):
				return &ValidationError{Kind: "arrival", Index: j, ID: id, Reason: "route is not served by the stop"}
			case a.EstimatedMinutes < 0:
				return &ValidationError{Kind: "arrival", Index: j, ID: id, Reason: "estimated minutes cannot be negative"}
			case a.DelayMinutes < 0:
				return &ValidationError{Kind: "arrival", Index: j, ID: id, Reason: "delay minutes cannot be negative"}
			}
		}
	}

	return nil
}

// Parse decodes a YAML seed document and validates it. Unknown fields are
// rejected so typos surface at startup.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("decoding seed document: empty document")
		}
		return Document{}, fmt.Errorf("decoding seed document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Load returns the seed document named by source: the built-in sample when
// source is empty, a remote document for http(s) URLs, a local file otherwise.
func Load(ctx context.Context, source string, log logger.Logger) (Document, error) {
	if source == "" {
		log.Info("Using built-in sample seed data")
		doc := Sample()
		return doc, doc.Validate()
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = NewHTTPFetcher(log).Fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return Document{}, fmt.Errorf("reading seed source %s: %w", source, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("seed source %s: %w", source, err)
	}

	log.Info("Seed data loaded", "source", source, "vehicles", len(doc.Vehicles), "stops", len(doc.Stops))
	return doc, nil
}
