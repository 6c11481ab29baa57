package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `
rules:
  - package: com.instagram.android
    usageLimitMinutes: 60
    schedules:
      - type: lock
        timeRanges:
          - {startHour: 9, endHour: 17, days: [1, 2, 3, 4, 5]}
      - type: unlock
        timeRanges:
          - {startHour: 12, endHour: 13, days: [1, 2, 3, 4, 5]}
  - package: com.reddit.frontpage
    schedules:
      - type: lock
        timeRanges:
          - {startHour: 22, endHour: 7, days: [5]}
`

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	path := writeRules(t, sampleRules)

	out, err := run(t, "eval", "--rules", path, "--at", "2025-08-05T10:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "com.instagram.android: locked (schedule 09:00-17:00 [1 2 3 4 5])")
	assert.Contains(t, out, "com.reddit.frontpage: open (none)")

	out, err = run(t, "eval", "--rules", path, "--package", "com.instagram.android", "--at", "2025-08-05T12:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "open (unlock_window 12:00-13:00")

	out, err = run(t, "eval", "--rules", path, "-p", "com.instagram.android", "--at", "2025-08-09 10:00:00", "--used", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "locked (usage_limit)")
}

func TestEvalTimeZone(t *testing.T) {
	path := writeRules(t, sampleRules)

	// 07:00 UTC is 09:00 in Berlin in August
	out, err := run(t, "eval", "--rules", path, "-p", "com.instagram.android", "--at", "2025-08-05T07:00:00Z", "--tz", "Europe/Berlin")
	require.NoError(t, err)
	assert.Contains(t, out, "locked (schedule")
}

func TestEvalErrors(t *testing.T) {
	path := writeRules(t, sampleRules)

	_, err := run(t, "eval", "--rules", path, "-p", "com.unknown")
	assert.ErrorContains(t, err, "no rule for package")

	_, err = run(t, "eval", "--rules", path, "--at", "someday")
	assert.ErrorContains(t, err, "cannot parse time")

	_, err = run(t, "eval", "--rules", path, "--tz", "Mars/Olympus")
	assert.ErrorContains(t, err, "unknown time zone")

	_, err = run(t, "eval", "--rules", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "--rules", writeRules(t, sampleRules))
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 rules\n", out)

	_, err = run(t, "validate", "--rules", writeRules(t, `
rules:
  - package: com.tiktok
    schedules:
      - type: lock
        timeRanges:
          - {startHour: 25, endHour: 7}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 0 (com.tiktok)")
	assert.Contains(t, err.Error(), "start hour 25")
}

func TestNext(t *testing.T) {
	path := writeRules(t, sampleRules)

	out, err := run(t, "next", "--rules", path, "--at", "2025-08-05T10:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "com.instagram.android: unlocks at 2025-08-05T12:00:00Z")
	assert.Contains(t, out, "com.reddit.frontpage: locks at 2025-08-08T22:00:00Z")
}
