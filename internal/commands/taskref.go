package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task id from args. Accepted forms: "12" and "#12".
// Extra arguments are rejected.
func ParseTaskRef(args []string) (int64, error) {
	return parseID(args, ErrTaskRefRequired, "task")
}

// ErrPersonRefRequired indicates no person id was provided.
var ErrPersonRefRequired = errors.New("person id required")

// ParsePersonRef parses a person id from args.
func ParsePersonRef(args []string) (int64, error) {
	return parseID(args, ErrPersonRefRequired, "person")
}

func parseID(args []string, required error, kind string) (int64, error) {
	if len(args) == 0 {
		return 0, required
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	if ref == "" || !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid %s reference: %s", kind, args[0])
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s reference: %s", kind, args[0])
	}
	return id, nil
}

// isAllDigits returns true if s contains only ASCII digits.
func isAllDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
