package groups

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/smzarrabimmp/cms"
)

// Storage caps both columns at VARCHAR(255).
const maxFieldLength = 255

var handlePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// validateGroup records every failed check on the group so one save
// attempt surfaces all of its field errors at once.
func validateGroup(group *cms.Group) {
	switch {
	case strings.TrimSpace(group.Name) == "":
		group.AddError("name", "name cannot be blank")
	case utf8.RuneCountInString(group.Name) > maxFieldLength:
		group.AddError("name", fmt.Sprintf("name cannot be longer than %d characters", maxFieldLength))
	}

	switch {
	case strings.TrimSpace(group.Handle) == "":
		group.AddError("handle", "handle cannot be blank")
	case utf8.RuneCountInString(group.Handle) > maxFieldLength:
		group.AddError("handle", fmt.Sprintf("handle cannot be longer than %d characters", maxFieldLength))
	case !handlePattern.MatchString(group.Handle):
		group.AddError("handle", "handle must start with a letter and contain only letters, numbers, and underscores")
	}
}
