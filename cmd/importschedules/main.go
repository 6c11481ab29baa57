// Command importschedules loads app schedules from a CSV file into the
// database, replacing the stored schedules of every app it mentions.
//
//	device,package,type,start,end,days
//	pixel-8,com.instagram.android,lock,09:00,17:00,1 2 3 4 5
package main

import (
	"FocusLock/config"
	"FocusLock/lockwindow"
	"FocusLock/models"
	"FocusLock/repositories/impl"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type appKey struct {
	device      string
	packageName string
}

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, using environment variables")
	}
	csvPath := flag.String("file", "schedules.csv", "CSV file to import")
	dryRun := flag.Bool("dry-run", false, "parse and validate only")
	flag.Parse()

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open CSV file")
	}
	defer file.Close()

	parsed, rowErrs := parseScheduleCSV(file)
	for _, err := range rowErrs {
		log.Warn().Err(err).Msg("row skipped")
	}
	if *dryRun {
		log.Info().Int("apps", len(parsed)).Int("skipped", len(rowErrs)).Msg("dry run finished")
		return
	}

	db, err := config.InitDatabase(databaseFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	deviceRepo := impl.NewDeviceRepository(db)
	scheduleRepo := impl.NewScheduleRepository(db)

	count := 0
	for _, key := range sortedKeys(parsed) {
		device, err := deviceRepo.FindByName(key.device)
		if err != nil {
			log.Warn().Err(err).Str("device", key.device).Msg("unknown device")
			continue
		}
		schedule := models.AppSchedule{DeviceID: device.ID, PackageName: key.packageName, Schedules: parsed[key]}
		if err := scheduleRepo.Save(&schedule); err != nil {
			log.Error().Err(err).Str("device", key.device).Str("package", key.packageName).Msg("save failed")
			continue
		}
		count++
	}

	log.Info().Int("imported", count).Int("skipped_rows", len(rowErrs)).Msg("import finished")
}

func databaseFromEnv() config.DatabaseConfig {
	getenv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return config.DatabaseConfig{
		Host:     getenv("DB_HOST", "127.0.0.1"),
		User:     getenv("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getenv("DB_NAME", "focuslock"),
		Port:     getenv("DB_PORT", "5432"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
		TimeZone: getenv("DB_TIMEZONE", "UTC"),
	}
}

// parseScheduleCSV groups rows by device and app. A bad row is reported and
// skipped; an app whose rows do not validate is dropped entirely.
func parseScheduleCSV(r io.Reader) (map[appKey][]models.Schedule, []error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 6

	result := make(map[appKey][]models.Schedule)
	var errs []error
	line := 0
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		// header
		if line == 1 && strings.EqualFold(record[0], "device") {
			continue
		}

		key := appKey{device: strings.TrimSpace(record[0]), packageName: strings.TrimSpace(record[1])}
		if key.device == "" || key.packageName == "" {
			errs = append(errs, fmt.Errorf("line %d: device and package are required", line))
			continue
		}
		days, err := parseDays(record[5])
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		tr, err := lockwindow.NewTimeRange(record[3], record[4], days...)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		typ := models.ScheduleType(strings.ToLower(strings.TrimSpace(record[2])))
		result[key] = addRange(result[key], typ, tr)
	}

	for key, schedules := range result {
		if err := lockwindow.ValidateSchedules(schedules); err != nil {
			errs = append(errs, fmt.Errorf("%s on %s: %w", key.packageName, key.device, err))
			delete(result, key)
		}
	}
	return result, errs
}

func addRange(schedules []models.Schedule, typ models.ScheduleType, tr models.TimeRange) []models.Schedule {
	for i := range schedules {
		if schedules[i].Type == typ {
			schedules[i].TimeRanges = append(schedules[i].TimeRanges, tr)
			return schedules
		}
	}
	return append(schedules, models.Schedule{Type: typ, TimeRanges: []models.TimeRange{tr}})
}

// parseDays accepts days separated by spaces or semicolons.
func parseDays(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ';' })
	days := make([]int, 0, len(fields))
	for _, f := range fields {
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q", f)
		}
		days = append(days, d)
	}
	return days, nil
}

func sortedKeys(m map[appKey][]models.Schedule) []appKey {
	keys := make([]appKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].device != keys[j].device {
			return keys[i].device < keys[j].device
		}
		return keys[i].packageName < keys[j].packageName
	})
	return keys
}
