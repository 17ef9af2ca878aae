package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructural marks input data that cannot be processed without
	// corrupting aggregates: empty canonical keys, missing CSV columns.
	ErrStructural = errors.New("structural error")
	// ErrEnvironment marks missing directories, unwritable outputs, and
	// other conditions outside the data itself.
	ErrEnvironment = errors.New("environment error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap tags err with a marker and component/operation context so the CLI
// boundary can classify it with errors.Is. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrEnvironment
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsStructural reports whether err carries the structural marker.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
