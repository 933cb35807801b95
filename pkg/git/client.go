// Package git shells out to the git binary to version collection files.
package git

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Client wraps git command execution for one working directory.
// Callers serialize access; the store holds its file lock while committing.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir: workDir,
		Logger:  logger,
	}
}

// IsInstalled checks if git is available in the PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsRepo reports whether WorkDir is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Init initializes a new git repository. Re-running on an existing one is harmless.
func (c *Client) Init() error {
	_, err := c.Run("init")
	return err
}

// Add adds files to the stage.
func (c *Client) Add(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := c.Run(args...)
	return err
}

// Commit records changes. With files, only those paths are committed and
// anything else already staged is left alone.
func (c *Client) Commit(msg string, files ...string) error {
	args := []string{"commit", "-m", msg}
	if len(files) > 0 {
		args = append(args, "--")
		args = append(args, files...)
	}
	_, err := c.Run(args...)
	return err
}

// Status returns the porcelain status of the repo, or of the given paths.
func (c *Client) Status(files ...string) (string, error) {
	args := []string{"status", "--porcelain"}
	if len(files) > 0 {
		args = append(args, "--")
		args = append(args, files...)
	}
	return c.Run(args...)
}
