package seed

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/conorfennell/nyx/internal/domain"
)

// File is one fixture document.
type File struct {
	Users  []UserFixture  `yaml:"users"`
	Events []EventFixture `yaml:"events"`
}

type UserFixture struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"nome"`
	LastName  string `yaml:"cognome"`
	BirthDate string `yaml:"data_nascita"`
}

type EventFixture struct {
	Title        string               `yaml:"titolo"`
	Description  string               `yaml:"descrizione"`
	Date         string               `yaml:"data_evento"`
	Organizer    string               `yaml:"organizzatore"`
	Capacity     int                  `yaml:"capienza"`
	Image        string               `yaml:"immagine"` // relative to the fixture file
	Participants []ParticipantFixture `yaml:"partecipanti"`
}

type ParticipantFixture struct {
	FirstName string `yaml:"nome"`
	LastName  string `yaml:"cognome"`
	BirthDate string `yaml:"data_nascita"`
}

// ParseFile reads a fixture document from the given path.
func ParseFile(path string) (File, error) {
	file, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes a fixture document. An empty document yields no fixtures.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return File{}, err
	}
	return f, nil
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q is not a YYYY-MM-DD date", field, s)
	}
	return d, nil
}
