package canned

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMood es la celda usada cuando no hay mood o el mood no tiene frases propias.
const DefaultMood = "default"

//go:embed phrases.yaml
var phrasesYAML []byte

// Table: especie -> mood -> frases.
type Table struct {
	cells map[string]map[string][]string
	intn  func(n int) int
}

// Default carga la tabla embebida. Panic si el YAML embebido es inválido (error de build).
func Default() *Table {
	t, err := Parse(phrasesYAML)
	if err != nil {
		panic(fmt.Sprintf("canned: embedded phrases: %v", err))
	}
	return t
}

// Parse lee una tabla YAML con forma {species: {mood: [frases]}}.
// Cada especie debe tener celda "default".
func Parse(b []byte) (*Table, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("canned: parse yaml: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("canned: empty table")
	}

	cells := make(map[string]map[string][]string, len(raw))
	for species, moods := range raw {
		species = strings.ToLower(strings.TrimSpace(species))
		m := make(map[string][]string, len(moods))
		for mood, phrases := range moods {
			clean := make([]string, 0, len(phrases))
			for _, p := range phrases {
				if p = strings.TrimSpace(p); p != "" {
					clean = append(clean, p)
				}
			}
			if len(clean) > 0 {
				m[strings.ToLower(strings.TrimSpace(mood))] = clean
			}
		}
		if len(m[DefaultMood]) == 0 {
			return nil, fmt.Errorf("canned: species %q has no %q phrases", species, DefaultMood)
		}
		cells[species] = m
	}
	return &Table{cells: cells, intn: rand.IntN}, nil
}

// WithRand fija la fuente aleatoria (tests).
func (t *Table) WithRand(intn func(n int) int) *Table {
	cp := *t
	cp.intn = intn
	return &cp
}

// Phrases devuelve la celda efectiva para (species, mood).
// Especie desconocida cae en "other"; mood desconocido cae en "default".
func (t *Table) Phrases(species, mood string) []string {
	moods, ok := t.cells[strings.ToLower(species)]
	if !ok {
		moods, ok = t.cells["other"]
		if !ok {
			return nil
		}
	}
	if p, ok := moods[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return p
	}
	return moods[DefaultMood]
}

// Pick elige una frase uniformemente al azar.
func (t *Table) Pick(species, mood string) (string, bool) {
	p := t.Phrases(species, mood)
	if len(p) == 0 {
		return "", false
	}
	return p[t.intn(len(p))], true
}

// Species lista las especies de la tabla, ordenadas.
func (t *Table) Species() []string {
	out := make([]string, 0, len(t.cells))
	for s := range t.cells {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Moods lista los moods con frases propias de una especie (vacío si no existe).
func (t *Table) Moods(species string) []string {
	moods := t.cells[strings.ToLower(strings.TrimSpace(species))]
	out := make([]string, 0, len(moods))
	for m := range moods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
