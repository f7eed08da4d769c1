package sfcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/mmrzaf/sfseed/internal/domain"
)

// Runner executes one external command and returns its stdout. Swappable in
// tests; the default shells out.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%s %v: %w: %s", name, args, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Client wraps the platform CLI. It owns no network access itself; the `sf`
// binary is the org boundary.
type Client struct {
	bin    string
	org    string
	runner Runner
}

func NewClient(bin, org string) *Client {
	if bin == "" {
		bin = "sf"
	}
	return &Client{bin: bin, org: org, runner: execRunner}
}

// Org reports the org alias the client targets, if any.
func (c *Client) Org() string {
	return c.org
}

// WithRunner replaces the command runner (tests).
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

// Describe fetches an object's describe metadata. The raw payload is
// returned alongside the parsed form so callers can persist the snapshot.
func (c *Client) Describe(ctx context.Context, object string) (*domain.DescribeMetadata, []byte, error) {
	args := []string{"sobject", "describe", "--sobject", object}
	if c.org != "" {
		args = append(args, "-o", c.org)
	}

	raw, err := c.runner(ctx, "", c.bin, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("describe %s: %w", object, err)
	}

	var meta domain.DescribeMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil, fmt.Errorf("describe %s: invalid payload: %w", object, err)
	}
	return &meta, raw, nil
}

// ImportError carries the parsed failure payload of a bulk import, including
// the CLI's suggested remediation commands.
type ImportError struct {
	ExitCode int
	Message  string
	Actions  []string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("bulk import failed (exit %d): %s", e.ExitCode, e.Message)
}

type bulkResponse struct {
	Status   int      `json:"status"`
	Message  string   `json:"message"`
	ExitCode int      `json:"exitCode"`
	Actions  []string `json:"actions"`
	Result   struct {
		JobID string `json:"jobId"`
	} `json:"result"`
}

// BulkImport starts a bulk insert from the CSV and waits for the CLI to
// report completion. Returns the job ID, or an *ImportError whose Actions
// the caller may re-execute.
func (c *Client) BulkImport(ctx context.Context, object, csvPath, lineEnding string, waitMinutes int) (string, error) {
	args := []string{
		"data", "import", "bulk",
		"--sobject", object,
		"--file", csvPath,
		"--line-ending", lineEnding,
		"--wait", strconv.Itoa(waitMinutes),
		"--json",
	}
	if c.org != "" {
		args = append(args, "-o", c.org)
	}

	raw, runErr := c.runner(ctx, "", c.bin, args...)

	var resp bulkResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		if runErr != nil {
			return "", fmt.Errorf("bulk import %s: %w", object, runErr)
		}
		return "", fmt.Errorf("bulk import %s: invalid payload: %w", object, err)
	}

	if runErr != nil || resp.Result.JobID == "" {
		code := resp.ExitCode
		if code == 0 {
			code = 1
		}
		return "", &ImportError{
			ExitCode: code,
			Message:  resp.Message,
			Actions:  resp.Actions,
		}
	}

	return resp.Result.JobID, nil
}

// BulkResults downloads the result files for a completed job into dir.
func (c *Client) BulkResults(ctx context.Context, jobID, dir string) error {
	args := []string{"data", "bulk", "results", "--job-id", jobID}
	if c.org != "" {
		args = append(args, "-o", c.org)
	}
	if _, err := c.runner(ctx, dir, c.bin, args...); err != nil {
		return fmt.Errorf("bulk results %s: %w", jobID, err)
	}
	return nil
}

// RunActions executes remediation commands suggested by a failed import,
// working in dir so any result files land there. Each action's output is
// returned keyed by the command string; individual failures do not stop the
// remaining actions.
func (c *Client) RunActions(ctx context.Context, actions []string, dir string) map[string]string {
	out := make(map[string]string, len(actions))
	for _, action := range actions {
		cmdStr, ok := ExtractCommand(action)
		if !ok {
			continue
		}
		parts := SplitCommand(cmdStr)
		if len(parts) == 0 {
			continue
		}
		stdout, err := c.runner(ctx, dir, parts[0], parts[1:]...)
		if err != nil {
			out[cmdStr] = err.Error()
			continue
		}
		out[cmdStr] = string(stdout)
	}
	return out
}
