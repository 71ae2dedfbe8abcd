package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// writeTranscript persists the execution transcript: workspace name,
// generation timestamp, then for each task in execution order its id
// followed by its output. Filename is
// "<workspace>_<iso-timestamp-with-separators-scrubbed>.txt" under dir,
// created if missing.
func writeTranscript(dir string, ws *types.Workspace, executionOrder []string, outputs map[string]string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("orchestrator: create output dir %s: %w", dir, err)
	}

	now := time.Now().UTC()
	stamp := scrubTimestamp(now)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", sanitizeForFilename(ws.Name), stamp))

	var b strings.Builder
	fmt.Fprintf(&b, "Workspace: %s\n", ws.Name)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(time.RFC3339))
	for _, taskID := range executionOrder {
		fmt.Fprintf(&b, "%s\n%s\n\n", taskID, outputs[taskID])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("orchestrator: write transcript %s: %w", path, err)
	}
	return path, nil
}

// scrubTimestamp renders t as an ISO-8601-ish string with every separator
// character (':', '.', '+') replaced by '-' so it is safe as a filename
// component on every target OS.
func scrubTimestamp(t time.Time) string {
	iso := t.Format(time.RFC3339Nano)
	replacer := strings.NewReplacer(":", "-", ".", "-", "+", "-")
	return replacer.Replace(iso)
}

// sanitizeForFilename strips path separators from name so an
// attacker-controlled workspace name can never escape the output
// directory.
func sanitizeForFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	sanitized := replacer.Replace(name)
	if sanitized == "" {
		return "workspace"
	}
	return sanitized
}
