package cli

import (
	"fmt"
	"strings"

	"github.com/OpenQS/speed/internal/model"
)

// IssueView is a validation issue as printed by the CLI.
type IssueView struct {
	Path    string     `json:"path"`
	Code    string     `json:"code"`
	Kind    model.Kind `json:"kind,omitempty"`
	Message string     `json:"message"`
}

func (v IssueView) String() string {
	if v.Path == "" {
		return fmt.Sprintf("[%s] %s", v.Code, v.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Code, v.Path, v.Message)
}

func issueViews(errs model.Errors) []IssueView {
	views := make([]IssueView, len(errs))
	for i, issue := range errs {
		views[i] = IssueView{
			Path:    issue.Path,
			Code:    issue.Kind.Code(),
			Kind:    issue.Kind,
			Message: issue.Message,
		}
	}
	return views
}

func writeIssues(b *strings.Builder, issues []IssueView) {
	for _, issue := range issues {
		fmt.Fprintf(b, "  %s\n", issue)
	}
}
