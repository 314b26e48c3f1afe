package support

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

const commandTimeout = 30 * time.Second

// gs separates variable-length AI values in GS1 element strings. Feature
// files cannot contain the raw control character, so steps accept the
// <GS> placeholder instead.
const gs = "\x1d"

// expandPlaceholders substitutes test placeholders in a command or value.
func (testCtx *TestContext) expandPlaceholders(s string) string {
	s = strings.ReplaceAll(s, "<GS>", gs)
	s = strings.ReplaceAll(s, "{TMPDIR}", testCtx.TempDir)
	return s
}

// splitCommand splits a command line into arguments, honoring single quotes
// so barcodes with spaces or bracket characters survive intact.
func splitCommand(command string) []string {
	var args []string
	var current strings.Builder
	inQuote := false

	for _, r := range command {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// iRunCommand executes a CLI command and records its outcome.
func (testCtx *TestContext) iRunCommand(command string) error {
	command = testCtx.expandPlaceholders(command)
	args := splitCommand(command)
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}

	binary := args[0]
	if binary == "gs1scan" {
		if envBin := os.Getenv("GS1SCAN_TEST_BIN"); envBin != "" {
			binary = envBin
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args[1:]...) //nolint:gosec // G204: command assembled from feature files under our control
	cmd.Dir = testCtx.TempDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)
	if testCtx.StdinData != "" {
		cmd.Stdin = strings.NewReader(testCtx.StdinData)
		testCtx.StdinData = ""
	}

	start := time.Now()
	output, err := cmd.CombinedOutput()
	testCtx.LastDuration = time.Since(start)

	testCtx.LastCommand = command
	testCtx.LastOutput = string(output)
	testCtx.LastError = err
	if cmd.ProcessState != nil {
		testCtx.LastExitCode = cmd.ProcessState.ExitCode()
	} else {
		testCtx.LastExitCode = -1
	}

	return nil
}

// stdinContains stages data for the next command's standard input.
func (testCtx *TestContext) stdinContains(data *godog.DocString) error {
	testCtx.StdinData = testCtx.expandPlaceholders(data.Content) + "\n"
	return nil
}

// theCommandShouldSucceed asserts a zero exit code.
func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("command %q failed with exit code %d: %s",
			testCtx.LastCommand, testCtx.LastExitCode, testCtx.LastOutput)
	}
	return nil
}

// theCommandShouldFail asserts a non-zero exit code.
func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command %q succeeded but was expected to fail: %s",
			testCtx.LastCommand, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldContain asserts the combined output contains text.
func (testCtx *TestContext) theOutputShouldContain(text string) error {
	text = testCtx.expandPlaceholders(text)
	if !strings.Contains(testCtx.LastOutput, text) {
		return fmt.Errorf("output does not contain %q:\n%s", text, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldNotContain asserts the combined output omits text.
func (testCtx *TestContext) theOutputShouldNotContain(text string) error {
	text = testCtx.expandPlaceholders(text)
	if strings.Contains(testCtx.LastOutput, text) {
		return fmt.Errorf("output unexpectedly contains %q:\n%s", text, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldBeValidJSON asserts the output parses as JSON.
func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	var v interface{}
	if err := json.Unmarshal([]byte(testCtx.LastOutput), &v); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\n%s", err, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldBeValidCSV asserts the output parses as CSV.
func (testCtx *TestContext) theOutputShouldBeValidCSV() error {
	r := csv.NewReader(strings.NewReader(testCtx.LastOutput))
	if _, err := r.ReadAll(); err != nil {
		return fmt.Errorf("output is not valid CSV: %w\n%s", err, testCtx.LastOutput)
	}
	return nil
}

// theErrorShouldMention asserts the failure output names a cause.
func (testCtx *TestContext) theErrorShouldMention(text string) error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command succeeded; no error to inspect")
	}
	return testCtx.theOutputShouldContain(text)
}

// theFileShouldExist asserts a file exists, resolving placeholders.
func (testCtx *TestContext) theFileShouldExist(path string) error {
	path = testCtx.expandPlaceholders(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file %s does not exist: %w", path, err)
	}
	return nil
}

// theFileShouldContain asserts a file holds the given text.
func (testCtx *TestContext) theFileShouldContain(path, text string) error {
	path = testCtx.expandPlaceholders(path)
	data, err := os.ReadFile(path) //nolint:gosec // G304: test-controlled path
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !strings.Contains(string(data), testCtx.expandPlaceholders(text)) {
		return fmt.Errorf("file %s does not contain %q:\n%s", path, text, string(data))
	}
	return nil
}

// aFileWithContent writes a scenario fixture file into the temp dir.
func (testCtx *TestContext) aFileWithContent(name string, content *godog.DocString) error {
	path := filepath.Join(testCtx.TempDir, name)
	if err := os.WriteFile(path, []byte(testCtx.expandPlaceholders(content.Content)), 0o600); err != nil {
		return fmt.Errorf("writing fixture file: %w", err)
	}
	testCtx.CreatedFiles = append(testCtx.CreatedFiles, path)
	return nil
}

// RegisterCommonSteps wires the CLI step definitions.
func (testCtx *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I run "([^"]*)"$`, testCtx.iRunCommand)
	sc.Step(`^stdin contains:$`, testCtx.stdinContains)
	sc.Step(`^a catalogue file "([^"]*)" with content:$`, testCtx.aFileWithContent)
	sc.Step(`^a scan file "([^"]*)" with content:$`, testCtx.aFileWithContent)

	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)

	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
	sc.Step(`^the output should be valid CSV$`, testCtx.theOutputShouldBeValidCSV)
	sc.Step(`^the error should mention "([^"]*)"$`, testCtx.theErrorShouldMention)

	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, testCtx.theFileShouldContain)
}
