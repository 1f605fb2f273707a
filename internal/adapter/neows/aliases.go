package neows

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// Alias maps a common name to a NeoWs id.
type Alias struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// AliasTable resolves common object names to catalog ids.
type AliasTable struct {
	byName map[string]string
	list   []Alias
}

type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() *AliasTable {
	t, err := ParseAliases(aliasesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded aliases.yaml: %v", err))
	}
	return t
}

// ParseAliases reads an alias table from YAML of the form
// "aliases: {name: id}".
func ParseAliases(data []byte) (*AliasTable, error) {
	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse aliases: %w", err)
	}

	t := &AliasTable{byName: make(map[string]string, len(f.Aliases))}
	for name, id := range f.Aliases {
		key := NormalizeName(name)
		if key == "" || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("parse aliases: empty name or id in entry %q", name)
		}
		t.byName[key] = strings.TrimSpace(id)
		t.list = append(t.list, Alias{Name: name, ID: strings.TrimSpace(id)})
	}
	sort.Slice(t.list, func(i, j int) bool { return t.list[i].Name < t.list[j].Name })
	return t, nil
}

// Lookup returns the id registered for name after normalization.
func (t *AliasTable) Lookup(name string) (string, bool) {
	id, ok := t.byName[NormalizeName(name)]
	return id, ok
}

// List returns the aliases sorted by name.
func (t *AliasTable) List() []Alias {
	out := make([]Alias, len(t.list))
	copy(out, t.list)
	return out
}

// NormalizeName lowercases s, strips diacritics, drops everything except
// ASCII letters, digits and spaces, and collapses runs of whitespace.
func NormalizeName(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
