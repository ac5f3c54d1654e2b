package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownContentType = errors.New("unknown content type")
	ErrMalformedPayload   = errors.New("malformed payload")
)

// Payload is the type-shaped body of a revision. Each content type has its
// own variant so fields of one type never leak into another.
type Payload interface {
	ContentType() ContentType
	// Normalize returns a copy with surrounding whitespace trimmed and empty
	// list entries dropped.
	Normalize() Payload
	isPayload()
}

// NewsPayload is the body of a NEWS item
type NewsPayload struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

func (NewsPayload) ContentType() ContentType { return ContentTypeNews }
func (NewsPayload) isPayload()               {}

func (p NewsPayload) Normalize() Payload {
	return NewsPayload{
		Title:   strings.TrimSpace(p.Title),
		Summary: strings.TrimSpace(p.Summary),
		Body:    strings.TrimSpace(p.Body),
	}
}

// PolicyPayload is the body of a POLICY item
type PolicyPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (PolicyPayload) ContentType() ContentType { return ContentTypePolicy }
func (PolicyPayload) isPayload()               {}

func (p PolicyPayload) Normalize() Payload {
	return PolicyPayload{
		Title: strings.TrimSpace(p.Title),
		Body:  strings.TrimSpace(p.Body),
	}
}

// ServicePayload is the body of a SERVICE item. Steps keep their order.
type ServicePayload struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

func (ServicePayload) ContentType() ContentType { return ContentTypeService }
func (ServicePayload) isPayload()               {}

func (p ServicePayload) Normalize() Payload {
	steps := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}
	return ServicePayload{
		Title: strings.TrimSpace(p.Title),
		Steps: steps,
	}
}

// DefaultPayload returns the empty payload revision #1 starts with
func DefaultPayload(t ContentType) (Payload, error) {
	switch t {
	case ContentTypeNews:
		return NewsPayload{}, nil
	case ContentTypePolicy:
		return PolicyPayload{}, nil
	case ContentTypeService:
		return ServicePayload{Steps: []string{}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, t)
}

// DecodePayload parses raw JSON into the variant for t. Fields that belong
// to another content type are rejected.
func DecodePayload(t ContentType, raw []byte) (Payload, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: empty", ErrMalformedPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	switch t {
	case ContentTypeNews:
		var p NewsPayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return p, nil
	case ContentTypePolicy:
		var p PolicyPayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return p, nil
	case ContentTypeService:
		var p ServicePayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if p.Steps == nil {
			p.Steps = []string{}
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, t)
}

// EncodePayload serializes p for the revision data column
func EncodePayload(p Payload) (string, error) {
	if sp, ok := p.(ServicePayload); ok && sp.Steps == nil {
		sp.Steps = []string{}
		p = sp
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PayloadTitle returns the title of any payload variant
func PayloadTitle(p Payload) string {
	switch v := p.(type) {
	case NewsPayload:
		return v.Title
	case PolicyPayload:
		return v.Title
	case ServicePayload:
		return v.Title
	}
	return ""
}

// PayloadText returns the searchable body text of any payload variant
func PayloadText(p Payload) string {
	switch v := p.(type) {
	case NewsPayload:
		return strings.TrimSpace(v.Summary + "\n" + v.Body)
	case PolicyPayload:
		return v.Body
	case ServicePayload:
		return strings.Join(v.Steps, "\n")
	}
	return ""
}
