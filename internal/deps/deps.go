// Package deps reports availability of the external tools the installer
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool the installer relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults lists the installer's external collaborators: the build
// toolchain, the service manager, and the process-signal tools.
func Defaults() []Requirement {
	return []Requirement{
		{
			Name:        "cargo",
			Command:     "cargo",
			Description: "Required to build the daemon from source",
		},
		{
			Name:        "systemctl",
			Command:     "systemctl",
			Description: "Required to manage the daemon's user unit",
		},
		{
			Name:        "pkill",
			Command:     "pkill",
			Description: "Required to terminate running daemon processes",
		},
		{
			Name:        "pgrep",
			Command:     "pgrep",
			Description: "Required to probe daemon liveness",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
