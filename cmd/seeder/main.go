// cmd/seeder/main.go
package main

import (
	"encoding/csv"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Writes a sample raw export for local runs: duplicate emails, mixed
// yes/no spellings, missing titles and broken LinkedIn URLs included, so
// every cleaner branch gets exercised.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	path := "participants.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	rows := [][]string{
		{"email", "name", "Job Title", "has_joined_event", "What is your LinkedIn profile?"},
		{"arushi@example.com", "Arushi Gupta", "", "No", "https://www.linkedin.com/in/arushi"},
		{"brian.o@example.com", "Brian Otieno", "Data Engineer", "Yes", "https://linkedin.com/in/brian-otieno"},
		{"BRIAN.O@example.com", "Brian Otieno", "Data Engineer", "Yes", "https://linkedin.com/in/brian-otieno"},
		{"carol@example.com", "Carol", "Product Manager", "yes", "linkedin.com/carol"},
		{"dave@example.com", "Dave Kim", "Unemployed", "no", ""},
		{"", "No Email", "Designer", "Yes", "https://www.linkedin.com/in/noemail"},
		{"erin@example.com", "", "QA Analyst", "TRUE", "https://www.linkedin.com/in/erin"},
		{"felix@example.com", "Felix Wanjiru", "DevOps Engineer", "1", "https://www.linkedin.com/in/felix"},
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to create sample file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		log.Fatal().Err(err).Msg("failed to write sample rows")
	}

	log.Info().Str("path", path).Int("rows", len(rows)-1).Msg("✅ sample participants seeded")
}
