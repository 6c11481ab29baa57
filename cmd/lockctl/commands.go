package main

import (
	"FocusLock/lockwindow"
	"FocusLock/models"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dromara/carbon/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	Rules []models.AppRule `yaml:"rules"`
}

func loadRules(path string) ([]models.AppRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Rules, nil
}

// selectRules returns the rule of packageName, or every rule when it is empty.
func selectRules(rules []models.AppRule, packageName string) ([]models.AppRule, error) {
	if packageName == "" {
		return rules, nil
	}
	for _, rule := range rules {
		if rule.PackageName == packageName {
			return []models.AppRule{rule}, nil
		}
	}
	return nil, fmt.Errorf("no rule for package %q", packageName)
}

// parseInstant accepts RFC 3339 or any layout carbon understands, read in tz.
func parseInstant(raw, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown time zone %q", tz)
	}
	if raw == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	c := carbon.Parse(raw, tz)
	if c.IsInvalid() {
		return time.Time{}, fmt.Errorf("cannot parse time %q", raw)
	}
	return c.StdTime(), nil
}

func describe(d lockwindow.Decision) string {
	state := "open"
	if d.Locked {
		state = "locked"
	}
	if d.Range != nil {
		return fmt.Sprintf("%s (%s %s)", state, d.Reason, d.Range)
	}
	return fmt.Sprintf("%s (%s)", state, d.Reason)
}

func newRootCmd() *cobra.Command {
	var rulesPath, packageName, at, tz string
	var usedToday int

	rootCmd := &cobra.Command{
		Use:           "lockctl",
		Short:         "Evaluate FocusLock app rules offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "rules.yaml", "YAML file with a top-level rules list")
	rootCmd.PersistentFlags().StringVarP(&packageName, "package", "p", "", "only this package")
	rootCmd.PersistentFlags().StringVar(&at, "at", "", "instant to evaluate, default now")
	rootCmd.PersistentFlags().StringVar(&tz, "tz", "UTC", "time zone the rules are read in")

	// command for evaluating rules at one instant
	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Print whether each app is locked",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			rules, err = selectRules(rules, packageName)
			if err != nil {
				return err
			}
			instant, err := parseInstant(at, tz)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rule := range rules {
				if cmd.Flags().Changed("used") {
					rule.UsageTodayMinutes = usedToday
				}
				fmt.Fprintf(out, "%s: %s\n", rule.PackageName, describe(lockwindow.Evaluate(rule, instant)))
			}
			return nil
		},
	}
	evalCmd.Flags().IntVar(&usedToday, "used", 0, "minutes used today, overrides the file")

	// command for checking a rules file
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every rule for mistakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			return validateRules(cmd.OutOrStdout(), rules)
		},
	}

	// command for the next lock or unlock
	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Print when each app next changes state",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			rules, err = selectRules(rules, packageName)
			if err != nil {
				return err
			}
			instant, err := parseInstant(at, tz)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rule := range rules {
				next, ok := lockwindow.NextTransition(rule, instant)
				if !ok {
					fmt.Fprintf(out, "%s: no change within a week\n", rule.PackageName)
					continue
				}
				state := "unlocks"
				if lockwindow.Evaluate(rule, next).Locked {
					state = "locks"
				}
				fmt.Fprintf(out, "%s: %s at %s\n", rule.PackageName, state, next.In(instant.Location()).Format(time.RFC3339))
			}
			return nil
		},
	}

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(nextCmd)

	return rootCmd
}

func validateRules(out io.Writer, rules []models.AppRule) error {
	var errs []error
	for i, rule := range rules {
		if err := lockwindow.Validate(rule); err != nil {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i, rule.PackageName, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	fmt.Fprintf(out, "ok: %d rules\n", len(rules))
	return nil
}
