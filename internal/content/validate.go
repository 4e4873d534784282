package content

import (
	"fmt"
	"strings"

	"github.com/spigell/fqhc-resume/internal/catalog"
)

// ValidationError reports every issue found while validating content blocks.
type ValidationError struct {
	Issues []catalog.Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("content validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []catalog.Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, catalog.Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
