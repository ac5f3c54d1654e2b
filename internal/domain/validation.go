package domain

import (
	"fmt"
	"strings"
)

// Violation messages shown to editors
const (
	MsgTitleRequired    = "Title is required"
	MsgSummaryRequired  = "Summary is required"
	MsgBodyRequired     = "Body is required"
	MsgStepRequired     = "At least 1 step is required"
	MsgFeedbackRequired = "Feedback message is required"
)

// Validate returns every required-field violation of p for intent.
// Only forward intents (submit, approve, publish) are checked; drafts may be
// incomplete. An empty result means valid.
func Validate(t ContentType, p Payload, intent Intent) []string {
	if !intent.RequiresValidation() {
		return nil
	}
	return RequiredFieldViolations(t, p)
}

// RequiredFieldViolations applies the rule set of content type t to p
func RequiredFieldViolations(t ContentType, p Payload) []string {
	if p == nil {
		empty, err := DefaultPayload(t)
		if err != nil {
			return []string{err.Error()}
		}
		p = empty
	}
	if p.ContentType() != t {
		return []string{fmt.Sprintf("Payload does not match content type %s", t)}
	}

	var errs []string
	switch v := p.(type) {
	case NewsPayload:
		errs = requireText(errs, v.Title, MsgTitleRequired)
		errs = requireText(errs, v.Summary, MsgSummaryRequired)
		errs = requireText(errs, v.Body, MsgBodyRequired)
	case PolicyPayload:
		errs = requireText(errs, v.Title, MsgTitleRequired)
		errs = requireText(errs, v.Body, MsgBodyRequired)
	case ServicePayload:
		errs = requireText(errs, v.Title, MsgTitleRequired)
		if !hasNonBlank(v.Steps) {
			errs = append(errs, MsgStepRequired)
		}
	}
	return errs
}

func requireText(errs []string, value, msg string) []string {
	if strings.TrimSpace(value) == "" {
		return append(errs, msg)
	}
	return errs
}

func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
